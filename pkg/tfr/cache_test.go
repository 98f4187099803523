package tfr

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"flightbag/pkg/config"
	"flightbag/pkg/geo"
	"flightbag/pkg/model"
)

// countingProvider wraps a TFR set and counts fetches; err, when set, makes
// every fetch fail.
type countingProvider struct {
	tfrs  []model.TFR
	calls int
	err   error
}

func (p *countingProvider) Fetch(ctx context.Context) ([]model.TFR, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make([]model.TFR, len(p.tfrs))
	copy(out, p.tfrs)
	return out, nil
}

func activeTFR(id string, lat, lon float64, radiusNM float64) model.TFR {
	now := time.Now()
	return model.TFR{
		NoticeID:    id,
		Type:        model.TFRHazard,
		EffectiveAt: now.Add(-time.Hour),
		ExpiresAt:   now.Add(time.Hour),
		Lat:         lat,
		Lon:         lon,
		RadiusNM:    &radiusNM,
	}
}

func testCache(p Provider, ttl time.Duration) *Cache {
	return New(p, config.TFRConfig{SnapshotTTL: config.Duration(ttl)})
}

func TestActiveTFRsFilters(t *testing.T) {
	now := time.Now()
	query := geo.Point(37.46, -122.11)

	near := activeTFR("4/0001", 37.46, -122.11, 3) // at the query point
	far := activeTFR("4/0002", 40.0, -100.0, 5)    // over 1000nm away
	expired := activeTFR("4/0003", 37.46, -122.11, 3)
	expired.EffectiveAt = now.Add(-4 * time.Hour)
	expired.ExpiresAt = now.Add(-2 * time.Hour)
	future := activeTFR("4/0004", 37.46, -122.11, 3)
	future.EffectiveAt = now.Add(2 * time.Hour)
	future.ExpiresAt = now.Add(4 * time.Hour)

	provider := &countingProvider{tfrs: []model.TFR{near, far, expired, future}}
	cache := testCache(provider, 30*time.Minute)

	got, err := cache.ActiveTFRs(context.Background(), query, 25)
	if err != nil {
		t.Fatalf("ActiveTFRs failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 restriction, got %d", len(got))
	}
	if got[0].NoticeID != "4/0001" {
		t.Errorf("expected 4/0001, got %s", got[0].NoticeID)
	}
}

func TestActiveTFRsRadiusReach(t *testing.T) {
	// Restriction centered roughly 30nm north of the query point.
	query := geo.Point(37.0, -122.0)
	tfr := activeTFR("4/0005", 37.5, -122.0, 10)
	dist := geo.DistanceNM(query, tfr.Point())

	provider := &countingProvider{tfrs: []model.TFR{tfr}}

	// Combined radius a hair past the center distance includes it. The
	// overlap test is boundary-inclusive, so a sliver of margin on either
	// side pins it down.
	const eps = 0.01
	cache := testCache(provider, 30*time.Minute)
	got, err := cache.ActiveTFRs(context.Background(), query, dist-10+eps)
	if err != nil {
		t.Fatalf("ActiveTFRs failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("restriction within combined radius should match (dist %.2fnm)", dist)
	}

	// Combined radius a hair short of the center distance excludes it.
	cache = testCache(provider, 30*time.Minute)
	got, err = cache.ActiveTFRs(context.Background(), query, dist-10-eps)
	if err != nil {
		t.Fatalf("ActiveTFRs failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("restriction beyond combined radius should not match (dist %.2fnm)", dist)
	}
}

func TestActiveTFRsNilRadius(t *testing.T) {
	point := activeTFR("4/0006", 37.46, -122.11, 0)
	point.RadiusNM = nil
	provider := &countingProvider{tfrs: []model.TFR{point}}
	cache := testCache(provider, 30*time.Minute)

	got, err := cache.ActiveTFRs(context.Background(), geo.Point(37.46, -122.11), 5)
	if err != nil {
		t.Fatalf("ActiveTFRs failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("point restriction at the query point should match, got %d", len(got))
	}
}

func TestActiveTFRsSnapshotTTL(t *testing.T) {
	query := geo.Point(37.46, -122.11)
	provider := &countingProvider{tfrs: []model.TFR{activeTFR("4/0007", 37.46, -122.11, 3)}}
	cache := testCache(provider, 30*time.Minute)
	ctx := context.Background()

	if _, err := cache.ActiveTFRs(ctx, query, 10); err != nil {
		t.Fatalf("first query failed: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", provider.calls)
	}

	// Within the TTL the snapshot is served as-is, even after the feed changes.
	provider.tfrs = []model.TFR{activeTFR("4/0008", 37.46, -122.11, 3)}
	got, err := cache.ActiveTFRs(ctx, query, 10)
	if err != nil {
		t.Fatalf("second query failed: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("fresh snapshot must not refetch, got %d calls", provider.calls)
	}
	if len(got) != 1 || got[0].NoticeID != "4/0007" {
		t.Errorf("expected cached snapshot, got %+v", got)
	}
}

func TestActiveTFRsRefreshReplaces(t *testing.T) {
	query := geo.Point(37.46, -122.11)
	provider := &countingProvider{tfrs: []model.TFR{activeTFR("4/0009", 37.46, -122.11, 3)}}
	// Nanosecond TTL: every query refreshes.
	cache := testCache(provider, time.Nanosecond)
	ctx := context.Background()

	if _, err := cache.ActiveTFRs(ctx, query, 10); err != nil {
		t.Fatalf("first query failed: %v", err)
	}

	provider.tfrs = []model.TFR{activeTFR("4/0010", 37.46, -122.11, 3)}
	got, err := cache.ActiveTFRs(ctx, query, 10)
	if err != nil {
		t.Fatalf("second query failed: %v", err)
	}
	if len(got) != 1 || got[0].NoticeID != "4/0010" {
		t.Errorf("refresh must replace the snapshot wholesale, got %+v", got)
	}
}

func TestActiveTFRsProviderFailure(t *testing.T) {
	query := geo.Point(37.46, -122.11)
	ctx := context.Background()

	t.Run("NoSnapshotErrors", func(t *testing.T) {
		provider := &countingProvider{err: fmt.Errorf("feed down")}
		cache := testCache(provider, 30*time.Minute)

		_, err := cache.ActiveTFRs(ctx, query, 10)
		if !errors.Is(err, ErrProviderUnavailable) {
			t.Errorf("expected ErrProviderUnavailable, got %v", err)
		}
	})

	t.Run("StaleSnapshotServed", func(t *testing.T) {
		provider := &countingProvider{tfrs: []model.TFR{activeTFR("4/0011", 37.46, -122.11, 3)}}
		cache := testCache(provider, time.Nanosecond)

		if _, err := cache.ActiveTFRs(ctx, query, 10); err != nil {
			t.Fatalf("prime failed: %v", err)
		}

		provider.err = fmt.Errorf("feed down")
		got, err := cache.ActiveTFRs(ctx, query, 10)
		if err != nil {
			t.Fatalf("stale snapshot should degrade, got %v", err)
		}
		if len(got) != 1 || got[0].NoticeID != "4/0011" {
			t.Errorf("expected previous snapshot, got %+v", got)
		}
	})
}

func TestStaticProviderCopies(t *testing.T) {
	orig := []model.TFR{activeTFR("4/0012", 37.0, -122.0, 3)}
	p := &StaticProvider{TFRs: orig}

	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	got[0].NoticeID = "mutated"
	if orig[0].NoticeID != "4/0012" {
		t.Error("Fetch must return a copy of the backing slice")
	}
}

func TestBootstrapActive(t *testing.T) {
	now := time.Now()
	var active int
	for _, tfr := range Bootstrap() {
		if tfr.Active(now) {
			active++
		}
	}
	if active == 0 {
		t.Error("bootstrap set should contain currently active restrictions")
	}
}
