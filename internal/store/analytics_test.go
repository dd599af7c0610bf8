package store

import (
	"context"
	"testing"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/models"
)

func TestRankViews(t *testing.T) {
	counts := map[string]int{"b": 3, "a": 3, "c": 7, "d": 1}

	got := rankViews(counts, 3)
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ProductID != id {
			t.Fatalf("row %d: expected %s, got %s", i, id, got[i].ProductID)
		}
	}

	if all := rankViews(counts, 0); len(all) != 4 {
		t.Fatalf("expected all rows for limit 0, got %d", len(all))
	}
}

func TestTopViewedWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	clearCollection(t, client, "analytics_events")

	ctx := context.Background()
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	events := []models.AnalyticsEvent{
		{Type: dto.EventProductViewed, ProductID: "p1", CreatedAt: now.Add(-time.Hour)},
		{Type: dto.EventProductViewed, ProductID: "p1", CreatedAt: now.Add(-2 * time.Hour)},
		{Type: dto.EventProductViewed, ProductID: "p2", CreatedAt: now.Add(-time.Hour)},
		{Type: dto.EventProductViewed, ProductID: "p2", CreatedAt: now.AddDate(0, 0, -10)},
		{Type: dto.EventProductViewed, ProductID: "p2", CreatedAt: now.AddDate(0, 0, -10)},
		{Type: "add_to_cart", ProductID: "p3", CreatedAt: now},
	}
	for _, e := range events {
		if _, _, err := client.Collection("analytics_events").Add(ctx, e); err != nil {
			t.Fatalf("seed event error: %v", err)
		}
	}

	s := NewAnalyticsStore(client)
	since := now.AddDate(0, 0, -7)
	week, err := s.TopViewed(ctx, &since, 5)
	if err != nil {
		t.Fatalf("top viewed error: %v", err)
	}
	if len(week) != 2 || week[0].ProductID != "p1" || week[0].Views != 2 {
		t.Fatalf("unexpected weekly board: %+v", week)
	}

	all, err := s.TopViewed(ctx, nil, 5)
	if err != nil {
		t.Fatalf("top viewed error: %v", err)
	}
	if len(all) != 2 || all[0].ProductID != "p2" || all[0].Views != 3 {
		t.Fatalf("unexpected all-time board: %+v", all)
	}
}
