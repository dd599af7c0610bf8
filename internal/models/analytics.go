package models

import "time"

// AnalyticsEvent is a single storefront tracking event.
type AnalyticsEvent struct {
	Type      string    `firestore:"type" json:"type"` // "product_viewed", ...
	ProductID string    `firestore:"productId" json:"productId"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
