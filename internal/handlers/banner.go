package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/internal/response"
)

type bannerService interface {
	ResolveBanners(ctx context.Context, now time.Time) ([]dto.ResolvedBanner, error)
	CreateBanner(ctx context.Context, req dto.BannerRequest, now time.Time) (*models.Banner, error)
	ReplaceBanner(ctx context.Context, id string, req dto.BannerRequest, now time.Time) (*models.Banner, error)
	PatchBanner(ctx context.Context, id string, patch dto.BannerPatch, now time.Time) (*models.Banner, error)
	GetBanner(ctx context.Context, id string) (*models.Banner, error)
	ListBanners(ctx context.Context) ([]*models.Banner, error)
	DeleteBanner(ctx context.Context, id string) error
	ReorderBanners(ctx context.Context, req dto.ReorderBannersRequest) error
	ValidateBanner(ctx context.Context, req dto.ValidateBannerRequest, now time.Time) (dto.ValidateBannerResponse, error)
	PreviewCTALink(ctx context.Context, req dto.CTALinkRequest) (dto.CTALinkResponse, error)
}

type bannerHandlers struct {
	ResponseHandler response.ResponseHandler
	BannerSvc       bannerService
	now             func() time.Time
}

func NewBannerHandlers(deps *Deps) *bannerHandlers {
	return &bannerHandlers{
		ResponseHandler: deps.ResponseHandler,
		BannerSvc:       deps.BannerSvc,
		now:             utcNow,
	}
}

func (h *bannerHandlers) BannerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListBanners)
	r.Post("/", h.CreateBanner)
	r.Put("/reorder", h.ReorderBanners) // must be before /{bannerId}
	r.Post("/validate", h.ValidateBanner)
	r.Post("/cta-link", h.PreviewCTALink)
	r.Get("/content-types", h.GetContentTypes)
	r.Get("/{bannerId}", h.GetBanner)
	r.Put("/{bannerId}", h.ReplaceBanner)
	r.Patch("/{bannerId}", h.PatchBanner)
	r.Delete("/{bannerId}", h.DeleteBanner)
	return r
}

// HomeBanners serves the storefront homepage banner set.
func (h *bannerHandlers) HomeBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.BannerSvc.ResolveBanners(r.Context(), h.now())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, banners)
}

func (h *bannerHandlers) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.BannerSvc.ListBanners(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, banners)
}

func (h *bannerHandlers) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req dto.BannerRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	banner, err := h.BannerSvc.CreateBanner(r.Context(), req, h.now())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, banner)
}

func (h *bannerHandlers) GetBanner(w http.ResponseWriter, r *http.Request) {
	banner, err := h.BannerSvc.GetBanner(r.Context(), chi.URLParam(r, "bannerId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, banner)
}

func (h *bannerHandlers) ReplaceBanner(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, "bannerId")
	var req dto.BannerRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	banner, err := h.BannerSvc.ReplaceBanner(r.Context(), bannerID, req, h.now())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, banner)
}

func (h *bannerHandlers) PatchBanner(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, "bannerId")
	var patch dto.BannerPatch
	if err := decodeBody(r, &patch); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	banner, err := h.BannerSvc.PatchBanner(r.Context(), bannerID, patch, h.now())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, banner)
}

func (h *bannerHandlers) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	if err := h.BannerSvc.DeleteBanner(r.Context(), chi.URLParam(r, "bannerId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *bannerHandlers) ReorderBanners(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderBannersRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.BannerSvc.ReorderBanners(r.Context(), req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *bannerHandlers) ValidateBanner(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateBannerRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	result, err := h.BannerSvc.ValidateBanner(r.Context(), req, h.now())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *bannerHandlers) PreviewCTALink(w http.ResponseWriter, r *http.Request) {
	var req dto.CTALinkRequest
	if err := decodeBody(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	link, err := h.BannerSvc.PreviewCTALink(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, link)
}

// GetContentTypes returns the hardcoded catalog of banner content types and their fields.
func (h *bannerHandlers) GetContentTypes(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, contentTypeCatalog)
}

type contentTypeEntry struct {
	Type          string         `json:"type"`
	Sources       []string       `json:"sources"`
	ContentFields map[string]any `json:"contentFields"`
}

var autoConfigOptions = map[string]any{
	"limit":          "positive integer (default 5)",
	"period":         []string{models.PeriodDay, models.PeriodWeek, models.PeriodMonth},
	"categoryFilter": "optional category id",
}

var contentTypeCatalog = []contentTypeEntry{
	{
		Type:    models.ContentCustom,
		Sources: []string{models.SourceManual},
		ContentFields: map[string]any{
			"title":       "optional",
			"subtitle":    "optional",
			"description": "optional",
			"ctaText":     "optional",
			"ctaLink":     "optional, no default",
		},
	},
	{
		Type:    models.ContentProduct,
		Sources: []string{models.SourceManual, models.SourceAuto},
		ContentFields: map[string]any{
			"product.productId":       "required to activate",
			"product.discountPercent": "optional 0-100, synced to the product's prices",
			"ctaLink":                 "optional (default /products/{slug})",
		},
	},
	{
		Type:    models.ContentCategory,
		Sources: []string{models.SourceManual, models.SourceAuto},
		ContentFields: map[string]any{
			"category.categoryId": "required to activate",
			"ctaLink":             "optional (default /category/{slug})",
		},
	},
	{
		Type:          models.ContentTrending,
		Sources:       []string{models.SourceAuto},
		ContentFields: map[string]any{"autoConfig": autoConfigOptions, "title": "optional override", "subtitle": "optional override"},
	},
	{
		Type:          models.ContentNewArrivals,
		Sources:       []string{models.SourceAuto},
		ContentFields: map[string]any{"autoConfig": autoConfigOptions, "title": "optional override", "subtitle": "optional override"},
	},
	{
		Type:    models.ContentOffer,
		Sources: []string{models.SourceManual, models.SourceAuto},
		ContentFields: map[string]any{
			"autoConfig":       autoConfigOptions,
			"offer.code":       "optional",
			"offer.validUntil": "optional, must not be in the past to activate",
		},
	},
}
