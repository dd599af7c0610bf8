package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
)

type fakeViewCounter struct {
	rows  []dto.ProductViewCount
	err   error
	calls int
}

func (f *fakeViewCounter) TopViewed(_ context.Context, _ *time.Time, _ int) ([]dto.ProductViewCount, error) {
	f.calls++
	return f.rows, f.err
}

type fakeLeaderboard struct {
	entries map[string][]dto.ProductViewCount
	getErr  error
	setErr  error
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{entries: map[string][]dto.ProductViewCount{}}
}

func (f *fakeLeaderboard) Get(_ context.Context, key string) ([]dto.ProductViewCount, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	rows, ok := f.entries[key]
	return rows, ok, nil
}

func (f *fakeLeaderboard) Set(_ context.Context, key string, rows []dto.ProductViewCount) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = rows
	return nil
}

func TestCachedViewCounter_MissThenHit(t *testing.T) {
	next := &fakeViewCounter{rows: []dto.ProductViewCount{{ProductID: "p1", Views: 4}}}
	c := NewCachedViewCounter(next, newFakeLeaderboard())
	since := time.Date(2025, time.March, 1, 10, 0, 30, 0, time.UTC)

	for i := 0; i < 2; i++ {
		rows, err := c.TopViewed(context.Background(), &since, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].ProductID != "p1" {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected 1 store call, got %d", next.calls)
	}
}

func TestCachedViewCounter_SameMinuteSharesEntry(t *testing.T) {
	next := &fakeViewCounter{rows: []dto.ProductViewCount{{ProductID: "p1", Views: 1}}}
	c := NewCachedViewCounter(next, newFakeLeaderboard())
	a := time.Date(2025, time.March, 1, 10, 0, 5, 0, time.UTC)
	b := a.Add(40 * time.Second)

	_, _ = c.TopViewed(context.Background(), &a, 5)
	_, _ = c.TopViewed(context.Background(), &b, 5)
	if next.calls != 1 {
		t.Fatalf("expected shared cache entry, got %d store calls", next.calls)
	}
}

func TestCachedViewCounter_CacheErrorFallsThrough(t *testing.T) {
	next := &fakeViewCounter{rows: []dto.ProductViewCount{{ProductID: "p2", Views: 9}}}
	lb := newFakeLeaderboard()
	lb.getErr = errors.New("connection refused")
	lb.setErr = errors.New("connection refused")
	c := NewCachedViewCounter(next, lb)

	rows, err := c.TopViewed(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].ProductID != "p2" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestCachedViewCounter_StoreErrorReturned(t *testing.T) {
	next := &fakeViewCounter{err: errors.New("firestore down")}
	c := NewCachedViewCounter(next, newFakeLeaderboard())

	if _, err := c.TopViewed(context.Background(), nil, 5); err == nil {
		t.Fatal("expected error")
	}
}

func TestLeaderboardKey(t *testing.T) {
	if got := leaderboardKey(nil, 5); got != "all:5" {
		t.Fatalf("expected all:5, got %s", got)
	}
	since := time.Date(2025, time.March, 1, 10, 0, 59, 0, time.UTC)
	want := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC).Unix()
	if got := leaderboardKey(&since, 3); got != fmt.Sprintf("%d:3", want) {
		t.Fatalf("unexpected key %s", got)
	}
}
