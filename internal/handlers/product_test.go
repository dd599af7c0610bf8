package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/storefront-banners/internal/errs"
)

type stubPricingService struct {
	productID string
	discount  float64
	err       error
}

func (s *stubPricingService) SyncProductDiscount(_ context.Context, productID string, discount float64) error {
	s.productID = productID
	s.discount = discount
	return s.err
}

func TestSyncDiscount_OK(t *testing.T) {
	svc := &stubPricingService{}
	resp := &stubResponseHandler{}
	h := NewProductHandlers(&Deps{ResponseHandler: resp, PricingSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/products/p1/discount-sync", strings.NewReader(`{"discountPercent":20}`))
	req = withChiParam(req, "productId", "p1")
	rr := httptest.NewRecorder()
	h.SyncDiscount(rr, req)

	if svc.productID != "p1" || svc.discount != 20 {
		t.Fatalf("unexpected call: %+v", svc)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess with 200, got status=%d", resp.writeSuccessStatus)
	}
}

func TestSyncDiscount_OutOfRange(t *testing.T) {
	svc := &stubPricingService{}
	resp := &stubResponseHandler{}
	h := NewProductHandlers(&Deps{ResponseHandler: resp, PricingSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/products/p1/discount-sync", strings.NewReader(`{"discountPercent":150}`))
	req = withChiParam(req, "productId", "p1")
	rr := httptest.NewRecorder()
	h.SyncDiscount(rr, req)

	var ve *errs.ValidationError
	if !errors.As(resp.handleError, &ve) {
		t.Fatalf("expected ValidationError, got %v", resp.handleError)
	}
	if svc.productID != "" {
		t.Fatal("service must not be called on invalid input")
	}
}

func TestSyncDiscount_ProductNotFound(t *testing.T) {
	svc := &stubPricingService{err: errs.NewNotFoundError("product not found")}
	resp := &stubResponseHandler{}
	h := NewProductHandlers(&Deps{ResponseHandler: resp, PricingSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/products/x/discount-sync", strings.NewReader(`{"discountPercent":5}`))
	req = withChiParam(req, "productId", "x")
	rr := httptest.NewRecorder()
	h.SyncDiscount(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError to be called")
	}
}
