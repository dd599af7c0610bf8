package dto

import (
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/models"
)

// Auto config defaults
const (
	DefaultAutoLimit  = 5
	DefaultAutoPeriod = models.PeriodWeek
)

// EventProductViewed is the analytics event counted by the trending leaderboard.
const EventProductViewed = "product_viewed"

// --- Request types ---

// BannerRequest is the full document body for create and full update.
type BannerRequest struct {
	Name        string               `json:"name"`
	SourceType  string               `json:"sourceType" validate:"omitempty,oneof=manual auto"`
	ContentType string               `json:"contentType" validate:"required,oneof=custom product category trending new_arrivals offer"`
	Content     models.BannerContent `json:"content"`
	Image       *models.Image        `json:"image"`
	MobileImage *models.Image        `json:"mobileImage"`
	Order       int                  `json:"order"`
	IsActive    bool                 `json:"isActive"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
}

// BannerPatch carries only the fields a write changes. A nil field is left as stored.
// The Clear flags distinguish "remove the value" from "leave it".
type BannerPatch struct {
	Name           *string               `json:"name,omitempty"`
	SourceType     *string               `json:"sourceType,omitempty" validate:"omitempty,oneof=manual auto"`
	ContentType    *string               `json:"contentType,omitempty" validate:"omitempty,oneof=custom product category trending new_arrivals offer"`
	Content        *models.BannerContent `json:"content,omitempty"`
	Image          *models.Image         `json:"image,omitempty"`
	MobileImage    *models.Image         `json:"mobileImage,omitempty"`
	Order          *int                  `json:"order,omitempty"`
	IsActive       *bool                 `json:"isActive,omitempty"`
	StartDate      *time.Time            `json:"startDate,omitempty"`
	EndDate        *time.Time            `json:"endDate,omitempty"`
	ClearStartDate bool                  `json:"clearStartDate,omitempty"`
	ClearEndDate   bool                  `json:"clearEndDate,omitempty"`
	ClearImage     bool                  `json:"clearImage,omitempty"`
	ClearMobile    bool                  `json:"clearMobileImage,omitempty"`
}

// Activates reports whether the patch transitions a banner to active.
func (p BannerPatch) Activates() bool {
	return p.IsActive != nil && *p.IsActive
}

// Patch converts a full request into a patch where every field is present,
// so absent request fields replace stored values.
func (r BannerRequest) Patch() BannerPatch {
	name, src, ct := r.Name, r.SourceType, r.ContentType
	order, active := r.Order, r.IsActive
	content := r.Content
	return BannerPatch{
		Name:           &name,
		SourceType:     &src,
		ContentType:    &ct,
		Content:        &content,
		Image:          r.Image,
		MobileImage:    r.MobileImage,
		Order:          &order,
		IsActive:       &active,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		ClearStartDate: r.StartDate == nil,
		ClearEndDate:   r.EndDate == nil,
		ClearImage:     r.Image == nil,
		ClearMobile:    r.MobileImage == nil,
	}
}

type ReorderBannerItem struct {
	BannerID string `json:"bannerId" validate:"required"`
	Order    int    `json:"order"`
}

type ReorderBannersRequest struct {
	BannerOrder []ReorderBannerItem `json:"bannerOrder" validate:"required,min=1,dive"`
}

// ValidateBannerRequest runs the activation gate without writing. BannerID is optional;
// when set the patch is merged over the stored banner.
type ValidateBannerRequest struct {
	BannerID string      `json:"bannerId,omitempty"`
	Patch    BannerPatch `json:"patch"`
}

type ValidateBannerResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// CTALinkRequest is the live-preview selection from an editing UI.
type CTALinkRequest struct {
	ContentType string `json:"contentType" validate:"required,oneof=custom product category trending new_arrivals offer"`
	ProductID   string `json:"productId,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
}

type CTALinkResponse struct {
	CTALink string `json:"ctaLink"`
}

type DiscountSyncRequest struct {
	DiscountPercent float64 `json:"discountPercent" validate:"gte=0,lte=100"`
}

// --- Resolution ---

// CTASelection is the entity selection the CTA link is derived from.
// Unresolved references are nil.
type CTASelection struct {
	Product  *models.Product
	Category *models.CategoryContent
}

// ResolvedBanner is the ephemeral read-path view of a banner. Never persisted.
type ResolvedBanner struct {
	ID              string                  `json:"id"`
	SourceType      string                  `json:"sourceType"`
	ContentType     string                  `json:"contentType"`
	Title           string                  `json:"title"`
	Subtitle        string                  `json:"subtitle"`
	Description     string                  `json:"description,omitempty"`
	CTAText         string                  `json:"ctaText,omitempty"`
	CTALink         string                  `json:"ctaLink"`
	Image           *models.Image           `json:"image,omitempty"`
	MobileImage     *models.Image           `json:"mobileImage,omitempty"`
	Order           int                     `json:"order"`
	Product         *models.Product         `json:"product,omitempty"`
	Category        *models.CategoryContent `json:"category,omitempty"`
	Products        []models.Product        `json:"products,omitempty"`
	OfferCode       string                  `json:"offerCode,omitempty"`
	OfferValidUntil *time.Time              `json:"offerValidUntil,omitempty"`
}

// --- Store query types ---

// ProductQuery filters active-product listings. Zero values mean "no constraint".
type ProductQuery struct {
	CategoryID   string
	IDs          []string
	OnlyDiscount bool
	OrderBy      string // "createdAt" or "discount"; always descending
	Limit        int
}

// ProductViewCount is one row of the trending leaderboard.
type ProductViewCount struct {
	ProductID string `json:"productId"`
	Views     int    `json:"views"`
}
