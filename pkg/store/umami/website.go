package umami

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/de-tools/umami-atlas/pkg/models/store"
)

// GetWebsiteStats fetches the aggregate visit metrics for the window, given
// as UTC epoch milliseconds. Missing or oddly shaped metric fields decode
// to zero instead of failing the call.
func (c *Client) GetWebsiteStats(ctx context.Context, websiteID string, startAt, endAt int64) (store.WebsiteStats, error) {
	query := url.Values{}
	query.Set("startAt", strconv.FormatInt(startAt, 10))
	query.Set("endAt", strconv.FormatInt(endAt, 10))

	raw, err := c.request(ctx, http.MethodGet, "websites/"+websiteID+"/stats", query, nil)
	if err != nil {
		return store.WebsiteStats{}, err
	}

	var stats store.WebsiteStats
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &stats); err != nil {
			return store.WebsiteStats{}, fmt.Errorf("failed to decode website stats: %w", err)
		}
	}
	return stats, nil
}
