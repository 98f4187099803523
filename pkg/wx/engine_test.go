package wx

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"flightbag/pkg/config"
	"flightbag/pkg/model"
)

// fakeProvider returns canned summaries and counts calls.
type fakeProvider struct {
	calls   int
	err     error
	rawText string
}

func (p *fakeProvider) Fetch(ctx context.Context, stationIDs []string) ([]*model.WeatherSummary, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make([]*model.WeatherSummary, 0, len(stationIDs))
	for _, id := range stationIDs {
		out = append(out, &model.WeatherSummary{
			StationID:  id,
			RawText:    p.rawText,
			Category:   model.CategoryVFR,
			ObservedAt: time.Now(),
		})
	}
	return out, nil
}

// memWeatherStore is an in-memory WeatherStore for engine tests.
type memWeatherStore struct {
	entries  map[string]*model.WeatherSummary
	puts     int
	replaced [][]*model.WeatherSummary
	getErr   error
}

func newMemWeatherStore() *memWeatherStore {
	return &memWeatherStore{entries: make(map[string]*model.WeatherSummary)}
}

func (s *memWeatherStore) GetCachedWeather(ctx context.Context, stationID string) (*model.WeatherSummary, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.entries[stationID], nil
}

func (s *memWeatherStore) PutWeather(ctx context.Context, w *model.WeatherSummary) error {
	s.puts++
	s.entries[w.StationID] = w
	return nil
}

func (s *memWeatherStore) StaleStationIDs(ctx context.Context, olderThan time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-olderThan)
	var ids []string
	for id, w := range s.entries {
		if w.FetchedAt.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *memWeatherStore) ClearWeatherCache(ctx context.Context) error {
	s.entries = make(map[string]*model.WeatherSummary)
	return nil
}

func (s *memWeatherStore) ReplaceWeatherCache(ctx context.Context, entries []*model.WeatherSummary) error {
	s.replaced = append(s.replaced, entries)
	s.entries = make(map[string]*model.WeatherSummary)
	for _, w := range entries {
		s.entries[w.StationID] = w
	}
	return nil
}

func newTestEngine(st *memWeatherStore, p Provider) *Engine {
	return NewEngine(st, p, config.WeatherConfig{
		FreshFor:   config.Duration(15 * time.Minute),
		StaleAfter: config.Duration(time.Hour),
	})
}

func TestFetchCurrentCachesFreshValue(t *testing.T) {
	st := newMemWeatherStore()
	provider := &fakeProvider{rawText: "KPAO 291753Z 32008KT 10SM"}
	engine := newTestEngine(st, provider)
	ctx := context.Background()

	w1, err := engine.FetchCurrent(ctx, "KPAO")
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.calls)
	}
	if st.puts != 1 {
		t.Errorf("expected 1 durable write-through, got %d", st.puts)
	}

	w2, err := engine.FetchCurrent(ctx, "KPAO")
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("fresh hit must not call provider, got %d calls", provider.calls)
	}
	if w1 != w2 {
		t.Error("fresh hit should return the cached summary")
	}
}

func TestFetchCurrentPromotesFreshDurable(t *testing.T) {
	st := newMemWeatherStore()
	st.entries["KPAO"] = &model.WeatherSummary{
		StationID: "KPAO",
		Category:  model.CategoryMVFR,
		FetchedAt: time.Now().Add(-5 * time.Minute),
	}
	provider := &fakeProvider{}
	engine := newTestEngine(st, provider)

	w, err := engine.FetchCurrent(context.Background(), "KPAO")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("fresh durable entry must not call provider, got %d calls", provider.calls)
	}
	if w.Category != model.CategoryMVFR {
		t.Errorf("expected durable entry, got %+v", w)
	}
}

func TestFetchCurrentProviderFailureFallsBack(t *testing.T) {
	st := newMemWeatherStore()
	stale := &model.WeatherSummary{
		StationID: "KPAO",
		Category:  model.CategoryIFR,
		FetchedAt: time.Now().Add(-2 * time.Hour),
	}
	st.entries["KPAO"] = stale
	provider := &fakeProvider{err: fmt.Errorf("connection refused")}
	engine := newTestEngine(st, provider)

	w, err := engine.FetchCurrent(context.Background(), "KPAO")
	if err != nil {
		t.Fatalf("stale fallback should not error: %v", err)
	}
	if w.Category != model.CategoryIFR {
		t.Errorf("expected stale durable entry, got %+v", w)
	}
}

func TestFetchCurrentNoCacheNoProvider(t *testing.T) {
	st := newMemWeatherStore()
	provider := &fakeProvider{err: fmt.Errorf("connection refused")}
	engine := newTestEngine(st, provider)

	_, err := engine.FetchCurrent(context.Background(), "KPAO")
	if err == nil {
		t.Fatal("expected error with no cached value anywhere")
	}
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchBatchAllOrNothing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		st := newMemWeatherStore()
		provider := &fakeProvider{}
		engine := newTestEngine(st, provider)

		got, err := engine.FetchBatch(ctx, []string{"KPAO", "KSQL", "KHAF"})
		if err != nil {
			t.Fatalf("batch failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 summaries, got %d", len(got))
		}
		if provider.calls != 1 {
			t.Errorf("expected one provider call for the batch, got %d", provider.calls)
		}
		if st.puts != 3 {
			t.Errorf("expected 3 write-throughs, got %d", st.puts)
		}
	})

	t.Run("FailureWithPartialCacheErrors", func(t *testing.T) {
		st := newMemWeatherStore()
		provider := &fakeProvider{}
		engine := newTestEngine(st, provider)

		if _, err := engine.FetchCurrent(ctx, "KPAO"); err != nil {
			t.Fatalf("prime failed: %v", err)
		}

		provider.err = fmt.Errorf("connection refused")
		_, err := engine.FetchBatch(ctx, []string{"KPAO", "KSQL"})
		if !errors.Is(err, ErrProviderUnavailable) {
			t.Errorf("partial cache must fail whole batch, got %v", err)
		}
	})

	t.Run("FailureWithFullCacheServes", func(t *testing.T) {
		st := newMemWeatherStore()
		provider := &fakeProvider{}
		engine := newTestEngine(st, provider)

		if _, err := engine.FetchBatch(ctx, []string{"KPAO", "KSQL"}); err != nil {
			t.Fatalf("prime failed: %v", err)
		}

		provider.err = fmt.Errorf("connection refused")
		got, err := engine.FetchBatch(ctx, []string{"KPAO", "KSQL"})
		if err != nil {
			t.Fatalf("fully cached batch should degrade, got %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 cached summaries, got %d", len(got))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		engine := newTestEngine(newMemWeatherStore(), &fakeProvider{})
		got, err := engine.FetchBatch(ctx, nil)
		if err != nil || got != nil {
			t.Errorf("empty batch = (%v, %v), want (nil, nil)", got, err)
		}
	})
}

func TestFetchAndStoreRetainsRawText(t *testing.T) {
	st := newMemWeatherStore()
	provider := &fakeProvider{rawText: "KPAO 291753Z 32008KT 10SM FEW200"}
	engine := newTestEngine(st, provider)
	ctx := context.Background()

	if _, err := engine.FetchCurrent(ctx, "KPAO"); err != nil {
		t.Fatalf("prime failed: %v", err)
	}

	// Age out the memory entry so the next call refetches, and make the
	// refresh come back without report text.
	prev := engine.memGet("KPAO")
	prev.FetchedAt = time.Now().Add(-20 * time.Minute)
	provider.rawText = ""

	w, err := engine.FetchCurrent(ctx, "KPAO")
	if err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if w.RawText != "KPAO 291753Z 32008KT 10SM FEW200" {
		t.Errorf("expected retained raw text, got %q", w.RawText)
	}
}

func TestPurgeStale(t *testing.T) {
	st := newMemWeatherStore()
	provider := &fakeProvider{}
	engine := newTestEngine(st, provider)
	ctx := context.Background()

	if _, err := engine.FetchBatch(ctx, []string{"KPAO", "KSQL"}); err != nil {
		t.Fatalf("prime failed: %v", err)
	}

	// Push one entry past the staleness threshold.
	engine.memGet("KSQL").FetchedAt = time.Now().Add(-2 * time.Hour)

	if err := engine.PurgeStale(ctx); err != nil {
		t.Fatalf("purge failed: %v", err)
	}

	if engine.memGet("KSQL") != nil {
		t.Error("stale entry should be evicted from memory")
	}
	if engine.memGet("KPAO") == nil {
		t.Error("fresh entry should survive the purge")
	}

	if len(st.replaced) != 1 {
		t.Fatalf("expected one durable rewrite, got %d", len(st.replaced))
	}
	kept := st.replaced[0]
	if len(kept) != 1 || kept[0].StationID != "KPAO" {
		t.Errorf("durable tier should hold exactly the fresh entries, got %+v", kept)
	}
}
