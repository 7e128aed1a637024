package store

import "encoding/json"

// Metric decodes an Umami stats field that arrives either as a bare number
// or wrapped as {"value": n}. Anything else decodes to zero rather than
// failing the whole response.
type Metric struct {
	Value float64
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	var bare float64
	if err := json.Unmarshal(data, &bare); err == nil {
		m.Value = bare
		return nil
	}

	var wrapped struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Value != nil {
		m.Value = *wrapped.Value
		return nil
	}

	m.Value = 0
	return nil
}

// WebsiteStats is the websites/{id}/stats response body.
type WebsiteStats struct {
	Visitors  Metric `json:"visitors"`
	Visits    Metric `json:"visits"`
	TotalTime Metric `json:"totaltime"` // seconds
}

// ReportsPage is one page of the reports catalog listing. Entries stay raw
// so a single malformed report cannot sink the page.
type ReportsPage struct {
	Data     []json.RawMessage `json:"data"`
	Count    *int              `json:"count"`
	PageSize int               `json:"pageSize"`
}

// FunnelReport is a raw funnel report definition from the catalog.
type FunnelReport struct {
	ID         string           `json:"reportId"`
	Name       string           `json:"name"`
	Parameters FunnelParameters `json:"parameters"`
}

type FunnelParameters struct {
	Steps  []FunnelStep `json:"steps"`
	Window int          `json:"window"`
}

type FunnelStep struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// FunnelQuery carries the parameters for one funnel execution.
type FunnelQuery struct {
	Steps     []FunnelStep
	Window    int
	StartDate string
	EndDate   string
}

// FunnelRow is one step row of a funnel execution response.
type FunnelRow struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Visitors int    `json:"visitors"`
	Dropoff  int    `json:"dropoff"`
}
