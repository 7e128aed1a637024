package funnel

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/de-tools/umami-atlas/pkg/adapters"
	"github.com/de-tools/umami-atlas/pkg/models/domain"
	"github.com/de-tools/umami-atlas/pkg/models/store"
)

const defaultWindowMinutes = 60

// Executor runs a funnel computation against the remote analytics service.
type Executor interface {
	RunFunnel(ctx context.Context, websiteID string, query store.FunnelQuery) ([]store.FunnelRow, error)
}

// Engine evaluates requested funnels against a fetched report catalog.
type Engine struct {
	executor Executor
}

func NewEngine(executor Executor) *Engine {
	return &Engine{executor: executor}
}

// Evaluate resolves one requested funnel against the catalog and, when a
// usable report matches, replays its steps over the day range. Failures
// surface through the result status rather than an error, so one broken
// funnel cannot abort its siblings.
func (e *Engine) Evaluate(
	ctx context.Context,
	websiteID string,
	req domain.FunnelRequest,
	catalog []domain.FunnelReport,
	day domain.DayRange,
) domain.FunnelResult {
	result := domain.FunnelResult{
		RequestedName: req.Name,
		DisplayName:   req.DisplayName(),
		LookupName:    req.LookupName(),
	}

	report, ok := PickReport(result.LookupName, catalog)
	if !ok {
		result.Status = domain.FunnelStatusMissingReport
		result.Note = "No matching configured funnel report found."
		return result
	}

	result.MatchedReportName = report.Name
	result.ReportID = report.ID

	if len(report.Steps) == 0 {
		result.Status = domain.FunnelStatusInvalidReport
		result.Note = "Report parameters.steps is missing or invalid."
		return result
	}

	window := report.Window
	if window <= 0 {
		window = defaultWindowMinutes
	}

	rows, err := e.executor.RunFunnel(ctx, websiteID, store.FunnelQuery{
		Steps:     adapters.MapStepDefsDomainToStore(report.Steps),
		Window:    window,
		StartDate: day.UTCStartISO(),
		EndDate:   day.UTCEndISO(),
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("funnel", req.Name).
			Str("report_id", report.ID).
			Msg("funnel execution failed")
		result.Status = domain.FunnelStatusRequestFailed
		result.Note = err.Error()
		return result
	}

	conv := ComputeConversion(rows)
	result.Status = domain.FunnelStatusOK
	result.StartVisitors = conv.StartVisitors
	result.FinalVisitors = conv.FinalVisitors
	result.ConversionRate = conv.Rate
	result.Steps = conv.Steps
	return result
}
