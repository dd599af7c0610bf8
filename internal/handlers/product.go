package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/response"
)

type pricingService interface {
	SyncProductDiscount(ctx context.Context, productID string, discount float64) error
}

type productHandlers struct {
	ResponseHandler response.ResponseHandler
	PricingSvc      pricingService
}

func NewProductHandlers(deps *Deps) *productHandlers {
	return &productHandlers{
		ResponseHandler: deps.ResponseHandler,
		PricingSvc:      deps.PricingSvc,
	}
}

func (h *productHandlers) ProductRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/{productId}/discount-sync", h.SyncDiscount)
	return r
}

func (h *productHandlers) SyncDiscount(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	var req dto.DiscountSyncRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.PricingSvc.SyncProductDiscount(r.Context(), productID, req.DiscountPercent); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
