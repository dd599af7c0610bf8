package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/handlers"
	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/internal/response"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

type fakeBannerService struct {
	resolveCalls int
}

func (f *fakeBannerService) ResolveBanners(context.Context, time.Time) ([]dto.ResolvedBanner, error) {
	f.resolveCalls++
	return []dto.ResolvedBanner{}, nil
}
func (f *fakeBannerService) CreateBanner(context.Context, dto.BannerRequest, time.Time) (*models.Banner, error) {
	return &models.Banner{}, nil
}
func (f *fakeBannerService) ReplaceBanner(context.Context, string, dto.BannerRequest, time.Time) (*models.Banner, error) {
	return &models.Banner{}, nil
}
func (f *fakeBannerService) PatchBanner(context.Context, string, dto.BannerPatch, time.Time) (*models.Banner, error) {
	return &models.Banner{}, nil
}
func (f *fakeBannerService) GetBanner(context.Context, string) (*models.Banner, error) {
	return &models.Banner{}, nil
}
func (f *fakeBannerService) ListBanners(context.Context) ([]*models.Banner, error) { return nil, nil }
func (f *fakeBannerService) DeleteBanner(context.Context, string) error           { return nil }
func (f *fakeBannerService) ReorderBanners(context.Context, dto.ReorderBannersRequest) error {
	return nil
}
func (f *fakeBannerService) ValidateBanner(context.Context, dto.ValidateBannerRequest, time.Time) (dto.ValidateBannerResponse, error) {
	return dto.ValidateBannerResponse{Valid: true}, nil
}
func (f *fakeBannerService) PreviewCTALink(context.Context, dto.CTALinkRequest) (dto.CTALinkResponse, error) {
	return dto.CTALinkResponse{}, nil
}

type fakePricingService struct{}

func (fakePricingService) SyncProductDiscount(context.Context, string, float64) error { return nil }

func TestRoutes(t *testing.T) {
	log := logger.New("error", logger.NewTestHandler)
	svc := &fakeBannerService{}
	r := NewRouter(&handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		BannerSvc:       svc,
		PricingSvc:      fakePricingService{},
	})

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/home/banners", http.StatusOK},
		{http.MethodGet, "/banners", http.StatusOK},
		{http.MethodGet, "/banners/content-types", http.StatusOK},
		{http.MethodGet, "/banners/b1", http.StatusOK},
		{http.MethodDelete, "/banners/b1", http.StatusOK},
		{http.MethodPost, "/home/banners", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
	if svc.resolveCalls != 1 {
		t.Fatalf("expected one resolve call, got %d", svc.resolveCalls)
	}
}
