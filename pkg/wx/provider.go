package wx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flightbag/pkg/model"
	"flightbag/pkg/request"
)

// Provider fetches current station reports. A call either returns a report
// for every station the provider knows, or fails as a whole.
type Provider interface {
	Fetch(ctx context.Context, stationIDs []string) ([]*model.WeatherSummary, error)
}

// METARClient fetches METARs from an aviationweather.gov-shaped endpoint
// returning a JSON array of station reports.
type METARClient struct {
	client  *request.Client
	baseURL string
}

// NewMETARClient creates a provider client for the given endpoint.
func NewMETARClient(client *request.Client, baseURL string) *METARClient {
	return &METARClient{client: client, baseURL: baseURL}
}

// stationReport mirrors the provider payload. Numeric fields arrive as
// null/absent when unreported; wdir and visib carry sentinel strings
// ("VRB", "10+") next to plain numbers.
type stationReport struct {
	ICAOID     string       `json:"icaoId"`
	RawOb      string       `json:"rawOb"`
	Temp       *float64     `json:"temp"`
	Dewp       *float64     `json:"dewp"`
	Wdir       any          `json:"wdir"`
	Wspd       *int         `json:"wspd"`
	Wgst       *int         `json:"wgst"`
	Visib      any          `json:"visib"`
	Altim      *float64     `json:"altim"`
	Clouds     []CloudLayer `json:"clouds"`
	ReportTime string       `json:"reportTime"`
	ObsTime    string       `json:"obsTime"`
}

// Fetch retrieves and parses reports for the given stations in one call.
func (c *METARClient) Fetch(ctx context.Context, stationIDs []string) ([]*model.WeatherSummary, error) {
	if len(stationIDs) == 0 {
		return nil, nil
	}

	u := fmt.Sprintf("%s?ids=%s&format=json", c.baseURL, url.QueryEscape(strings.Join(stationIDs, ",")))
	body, err := c.client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("metar fetch: %w", err)
	}

	var reports []stationReport
	if err := json.Unmarshal(body, &reports); err != nil {
		return nil, fmt.Errorf("metar parse: %w", err)
	}

	summaries := make([]*model.WeatherSummary, 0, len(reports))
	for i := range reports {
		summaries = append(summaries, reports[i].toSummary())
	}
	return summaries, nil
}

func (r *stationReport) toSummary() *model.WeatherSummary {
	w := &model.WeatherSummary{
		StationID:    r.ICAOID,
		RawText:      r.RawOb,
		TemperatureC: r.Temp,
		DewpointC:    r.Dewp,
		WindSpeedKt:  r.Wspd,
		WindGustKt:   r.Wgst,
	}

	switch v := r.Wdir.(type) {
	case float64:
		dir := int(v)
		w.WindDirDeg = &dir
	case string:
		if strings.EqualFold(v, "VRB") {
			w.WindVariable = true
		}
	}

	switch v := r.Visib.(type) {
	case float64:
		vis := v
		w.VisibilitySM = &vis
	case string:
		// "10+" and friends: take the numeric part.
		if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "+"), 64); err == nil {
			vis := f
			w.VisibilitySM = &vis
		}
	}

	w.CeilingFt = DeriveCeiling(r.Clouds)
	w.Category = Classify(w.CeilingFt, w.VisibilitySM)

	ts := r.ObsTime
	if ts == "" {
		ts = r.ReportTime
	}
	w.ObservedAt = parseObsTime(ts)

	return w
}

// parseObsTime accepts ISO-8601 with or without sub-second precision, and
// the space-separated variant some mirrors emit. Unparseable input yields
// the zero time.
func parseObsTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
