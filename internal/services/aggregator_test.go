package services

import (
	"testing"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/pkg/helpers"
)

func manualBanner(id string, order int, created time.Time) *models.Banner {
	return &models.Banner{
		ID:          id,
		Name:        id,
		SourceType:  models.SourceManual,
		ContentType: models.ContentCustom,
		Image:       &models.Image{URL: "https://cdn/" + id + ".jpg"},
		Order:       order,
		IsActive:    true,
		CreatedAt:   created,
	}
}

func ids(t *testing.T, f *bannerFixture) []string {
	t.Helper()
	out, err := f.svc.ResolveBanners(helpers.TestCtx(), testNow)
	if err != nil {
		t.Fatalf("ResolveBanners error: %v", err)
	}
	got := make([]string, len(out))
	for i, b := range out {
		got[i] = b.ID
	}
	return got
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolveBanners_ExpiresStaleBanners(t *testing.T) {
	expired := manualBanner("old", 0, testNow)
	expired.EndDate = helpers.Ptr(testNow.Add(-time.Second))
	f := newBannerFixture(expired, manualBanner("live", 1, testNow))

	if got := ids(t, f); !equalIDs(got, []string{"live"}) {
		t.Fatalf("unexpected banners: %v", got)
	}
	if f.store.banners["old"].IsActive {
		t.Fatal("expected expired banner deactivated")
	}
	updated := f.store.banners["old"].UpdatedAt

	if got := ids(t, f); !equalIDs(got, []string{"live"}) {
		t.Fatalf("unexpected banners on second read: %v", got)
	}
	if !f.store.banners["old"].UpdatedAt.Equal(updated) {
		t.Fatal("second sweep must not touch an already expired banner")
	}
}

func TestResolveBanners_WindowBoundaries(t *testing.T) {
	startsNow := manualBanner("starts-now", 0, testNow)
	startsNow.StartDate = helpers.Ptr(testNow)
	startsLater := manualBanner("starts-later", 1, testNow)
	startsLater.StartDate = helpers.Ptr(testNow.Add(time.Second))
	endsNow := manualBanner("ends-now", 2, testNow)
	endsNow.EndDate = helpers.Ptr(testNow)
	inactive := manualBanner("inactive", 3, testNow)
	inactive.IsActive = false
	window := manualBanner("window", 4, testNow)
	window.StartDate = helpers.Ptr(testNow.Add(-time.Second))
	window.EndDate = helpers.Ptr(testNow.Add(time.Second))

	f := newBannerFixture(startsNow, startsLater, endsNow, inactive, window)

	if got := ids(t, f); !equalIDs(got, []string{"starts-now", "ends-now", "window"}) {
		t.Fatalf("unexpected banners: %v", got)
	}
	if !f.store.banners["starts-later"].IsActive {
		t.Fatal("future banners must stay active")
	}
}

func TestResolveBanners_OrderIsStable(t *testing.T) {
	f := newBannerFixture(
		manualBanner("second-created", 1, testNow.Add(-time.Hour)),
		manualBanner("first", 0, testNow),
		manualBanner("first-created", 1, testNow.Add(-2*time.Hour)),
	)

	want := []string{"first", "first-created", "second-created"}
	for i := 0; i < 3; i++ {
		if got := ids(t, f); !equalIDs(got, want) {
			t.Fatalf("read %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestResolveBanners_MergesAutoAndDropsEmpty(t *testing.T) {
	trending := &models.Banner{
		ID: "trending", SourceType: models.SourceAuto, ContentType: models.ContentTrending,
		IsActive: true, Order: 0, CreatedAt: testNow,
	}
	offer := &models.Banner{
		ID: "offer", SourceType: models.SourceAuto, ContentType: models.ContentOffer,
		IsActive: true, Order: 1, CreatedAt: testNow,
	}
	f := newBannerFixture(trending, offer, manualBanner("manual", 2, testNow))

	out, err := f.svc.ResolveBanners(helpers.TestCtx(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// no discounted products, so the offer banner resolves to nothing
	if len(out) != 2 || out[0].ID != "trending" || out[1].ID != "manual" {
		t.Fatalf("unexpected banners: %+v", out)
	}
	if out[0].CTALink != "/products?sort=trending" || len(out[0].Products) != 3 {
		t.Fatalf("unexpected trending banner: %+v", out[0])
	}
	if out[1].CTALink != "" {
		t.Fatalf("custom banners get no derived link, got %q", out[1].CTALink)
	}
}

func TestResolveBanners_ManualReferences(t *testing.T) {
	cat := manualBanner("cat", 0, testNow)
	cat.ContentType = models.ContentCategory
	cat.Content = models.BannerContent{Category: &models.CategoryContent{CategoryID: "c1"}}

	explicit := manualBanner("prod", 1, testNow)
	explicit.ContentType = models.ContentProduct
	explicit.Content = models.BannerContent{CTALink: "/landing/oak", Product: &models.ProductContent{ProductID: "pa"}}

	dangling := manualBanner("dangling", 2, testNow)
	dangling.ContentType = models.ContentProduct
	dangling.Content = models.BannerContent{Product: &models.ProductContent{ProductID: "gone"}}

	f := newBannerFixture(cat, explicit, dangling)
	out, err := f.svc.ResolveBanners(helpers.TestCtx(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 banners, got %d", len(out))
	}
	if out[0].CTALink != "/category/sofas" {
		t.Fatalf("expected /category/sofas, got %q", out[0].CTALink)
	}
	if out[1].CTALink != "/landing/oak" || out[1].Product == nil {
		t.Fatalf("explicit link must be kept, got %+v", out[1])
	}
	if out[2].CTALink != "/products" || out[2].Product != nil {
		t.Fatalf("unresolved product falls back to /products, got %+v", out[2])
	}
}

func TestResolveBanners_CapsResult(t *testing.T) {
	var banners []*models.Banner
	for i := 0; i < 12; i++ {
		banners = append(banners, manualBanner(string(rune('a'+i)), i, testNow))
	}
	f := newBannerFixture(banners...)

	if got := ids(t, f); len(got) != 10 || got[0] != "a" || got[9] != "j" {
		t.Fatalf("expected first 10 banners, got %v", got)
	}
}
