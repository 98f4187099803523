package tfr

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightbag/pkg/model"
	"flightbag/pkg/request"
)

// StaticProvider serves a fixed TFR set. It backs the bundled bootstrap
// data and stands in for a live feed in tests.
type StaticProvider struct {
	TFRs []model.TFR
}

func (p *StaticProvider) Fetch(ctx context.Context) ([]model.TFR, error) {
	out := make([]model.TFR, len(p.TFRs))
	copy(out, p.TFRs)
	return out, nil
}

// HTTPProvider fetches a JSON array of restrictions from a feed endpoint.
// The cache's refresh contract is provider-agnostic; this is the shape a
// future live feed plugs into.
type HTTPProvider struct {
	client *request.Client
	url    string
}

// NewHTTPProvider creates a provider for the given feed URL.
func NewHTTPProvider(client *request.Client, url string) *HTTPProvider {
	return &HTTPProvider{client: client, url: url}
}

type feedNotice struct {
	NoticeID    string    `json:"notice_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	EffectiveAt time.Time `json:"effective_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	RadiusNM    *float64  `json:"radius_nm"`
	FloorFt     int       `json:"floor_ft"`
	CeilingFt   int       `json:"ceiling_ft"`
}

func (p *HTTPProvider) Fetch(ctx context.Context) ([]model.TFR, error) {
	body, err := p.client.Get(ctx, p.url)
	if err != nil {
		return nil, fmt.Errorf("tfr fetch: %w", err)
	}

	var notices []feedNotice
	if err := json.Unmarshal(body, &notices); err != nil {
		return nil, fmt.Errorf("tfr parse: %w", err)
	}

	out := make([]model.TFR, 0, len(notices))
	for _, n := range notices {
		out = append(out, model.TFR{
			NoticeID:    n.NoticeID,
			Type:        model.TFRType(n.Type),
			Description: n.Description,
			EffectiveAt: n.EffectiveAt,
			ExpiresAt:   n.ExpiresAt,
			Lat:         n.Lat,
			Lon:         n.Lon,
			RadiusNM:    n.RadiusNM,
			FloorFt:     n.FloorFt,
			CeilingFt:   n.CeilingFt,
		})
	}
	return out, nil
}
