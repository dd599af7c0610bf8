package models

import (
	"time"
)

type Product struct {
	ID         string    `firestore:"id" json:"id"`
	Name       string    `firestore:"name" json:"name"`
	Slug       string    `firestore:"slug" json:"slug"`
	CategoryID string    `firestore:"categoryId" json:"categoryId"`
	IsActive   bool      `firestore:"isActive" json:"isActive"`
	Images     []string  `firestore:"images,omitempty" json:"images,omitempty"`
	Prices     Prices    `firestore:"prices" json:"prices"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Prices are kept in lockstep with the discount of the banner advertising the product.
type Prices struct {
	Retail         float64 `firestore:"retail" json:"retail"`
	Discount       float64 `firestore:"discount" json:"discount"` // percent, 0-100
	EffectivePrice float64 `firestore:"effectivePrice" json:"effectivePrice"`
	Wholesale      float64 `firestore:"wholesale" json:"wholesale"`
}

type Category struct {
	ID        string    `firestore:"id" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Slug      string    `firestore:"slug" json:"slug"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
