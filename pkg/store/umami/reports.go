package umami

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/de-tools/umami-atlas/pkg/models/store"
)

// ListFunnelReports walks the paginated reports catalog and gathers every
// well-formed funnel report definition. Malformed entries are dropped, and
// a malformed page ends the walk with whatever was gathered so far; only a
// failed request fails the whole fetch.
func (c *Client) ListFunnelReports(ctx context.Context, websiteID string) ([]store.FunnelReport, error) {
	logger := zerolog.Ctx(ctx)

	var reports []store.FunnelReport
	page := 1
	for {
		query := url.Values{}
		query.Set("websiteId", websiteID)
		query.Set("type", "funnel")
		query.Set("page", strconv.Itoa(page))
		query.Set("pageSize", strconv.Itoa(reportsPageSize))

		raw, err := c.request(ctx, http.MethodGet, "reports", query, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrCatalogFetch, page, err)
		}

		var current store.ReportsPage
		if raw == nil || json.Unmarshal(raw, &current) != nil {
			break
		}
		if len(current.Data) == 0 {
			break
		}

		dropped := 0
		for _, item := range current.Data {
			var report store.FunnelReport
			if err := json.Unmarshal(item, &report); err != nil {
				dropped++
				continue
			}
			reports = append(reports, report)
		}
		if dropped > 0 {
			logger.Debug().
				Int("page", page).
				Int("dropped", dropped).
				Msg("dropped malformed report catalog entries")
		}

		pageSize := current.PageSize
		if pageSize <= 0 {
			pageSize = reportsPageSize
		}
		if current.Count != nil {
			if page*pageSize >= *current.Count {
				break
			}
		} else if len(current.Data) < reportsPageSize {
			break
		}

		page++
	}

	return reports, nil
}

type funnelRunRequest struct {
	WebsiteID  string          `json:"websiteId"`
	Type       string          `json:"type"`
	Filters    map[string]any  `json:"filters"`
	Parameters funnelRunParams `json:"parameters"`
}

type funnelRunParams struct {
	Steps     []store.FunnelStep `json:"steps"`
	Window    int                `json:"window"`
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
}

// RunFunnel replays a report's step definitions over a UTC window and
// returns the per-step rows. Rows that fail to decode become zero-valued
// placeholders so positions stay aligned with the step definitions.
func (c *Client) RunFunnel(ctx context.Context, websiteID string, q store.FunnelQuery) ([]store.FunnelRow, error) {
	body := funnelRunRequest{
		WebsiteID: websiteID,
		Type:      "funnel",
		Filters:   map[string]any{},
		Parameters: funnelRunParams{
			Steps:     q.Steps,
			Window:    q.Window,
			StartDate: q.StartDate,
			EndDate:   q.EndDate,
		},
	}

	raw, err := c.request(ctx, http.MethodPost, "reports/funnel", nil, body)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, fmt.Errorf("%w: funnel response is not an array", ErrUnexpectedResponseShape)
	}

	rows := make([]store.FunnelRow, len(items))
	for i, item := range items {
		var row store.FunnelRow
		if err := json.Unmarshal(item, &row); err != nil {
			zerolog.Ctx(ctx).Debug().Int("index", i).Msg("funnel row failed to decode, keeping zero values")
			continue
		}
		rows[i] = row
	}
	return rows, nil
}
