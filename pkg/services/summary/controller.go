package summary

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/umami-atlas/pkg/adapters"
	"github.com/de-tools/umami-atlas/pkg/models/domain"
	"github.com/de-tools/umami-atlas/pkg/models/store"
	"github.com/de-tools/umami-atlas/pkg/services/funnel"
)

// Store is the slice of the Umami API the summary pipeline consumes.
type Store interface {
	GetWebsiteStats(ctx context.Context, websiteID string, startAt, endAt int64) (store.WebsiteStats, error)
	ListFunnelReports(ctx context.Context, websiteID string) ([]store.FunnelReport, error)
	RunFunnel(ctx context.Context, websiteID string, query store.FunnelQuery) ([]store.FunnelRow, error)
}

type Controller interface {
	BuildDailySummary(ctx context.Context, websiteID string, day domain.DayRange, requests []domain.FunnelRequest) (*domain.Summary, error)
	ListReportNames(ctx context.Context, websiteID string) ([]string, error)
}

func NewController(st Store) Controller {
	return &controller{
		store:  st,
		engine: funnel.NewEngine(st),
	}
}

type controller struct {
	store  Store
	engine *funnel.Engine
}

// BuildDailySummary fetches the day's basic metrics, then resolves and
// executes every requested funnel in order. Basic-metrics and catalog
// failures abort the run; individual funnel failures are recorded on
// their results.
func (c *controller) BuildDailySummary(
	ctx context.Context,
	websiteID string,
	day domain.DayRange,
	requests []domain.FunnelRequest,
) (*domain.Summary, error) {
	logger := zerolog.Ctx(ctx)

	stats, err := c.store.GetWebsiteStats(ctx, websiteID, day.StartAtMillis(), day.EndAtMillis())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch basic metrics: %w", err)
	}

	catalog, names, err := c.fetchCatalog(ctx, websiteID)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("website_id", websiteID).
		Str("day", day.DateString()).
		Int("reports", len(catalog)).
		Int("funnels", len(requests)).
		Msg("evaluating funnels")

	results := make([]domain.FunnelResult, 0, len(requests))
	for _, req := range requests {
		results = append(results, c.engine.Evaluate(ctx, websiteID, req, catalog, day))
	}

	return &domain.Summary{
		WebsiteID: websiteID,
		Range:     day,
		Basic: domain.BasicMetrics{
			Visitors:         int(stats.Visitors.Value),
			Visits:           int(stats.Visits.Value),
			TotalTimeSeconds: stats.TotalTime.Value,
		},
		Funnels:          results,
		AvailableReports: names,
	}, nil
}

// ListReportNames returns the names of the website's funnel reports in
// catalog order, skipping unnamed entries.
func (c *controller) ListReportNames(ctx context.Context, websiteID string) ([]string, error) {
	_, names, err := c.fetchCatalog(ctx, websiteID)
	return names, err
}

func (c *controller) fetchCatalog(ctx context.Context, websiteID string) ([]domain.FunnelReport, []string, error) {
	rawReports, err := c.store.ListFunnelReports(ctx, websiteID)
	if err != nil {
		return nil, nil, err
	}

	catalog := make([]domain.FunnelReport, 0, len(rawReports))
	var names []string
	for _, raw := range rawReports {
		report := adapters.MapFunnelReportStoreToDomain(raw)
		catalog = append(catalog, report)
		if report.Name != "" {
			names = append(names, report.Name)
		}
	}
	return catalog, names, nil
}
