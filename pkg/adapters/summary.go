package adapters

import (
	"fmt"
	"math"
	"time"

	"github.com/de-tools/umami-atlas/pkg/models/api"
	"github.com/de-tools/umami-atlas/pkg/models/domain"
)

// MapSummaryDomainToApi flattens a daily summary into its external JSON
// shape, formatting timestamps and durations along the way.
func MapSummaryDomainToApi(summary domain.Summary) api.Summary {
	funnels := make([]api.FunnelEntry, 0, len(summary.Funnels))
	for _, result := range summary.Funnels {
		funnels = append(funnels, mapFunnelResult(result))
	}

	available := summary.AvailableReports
	if available == nil {
		available = []string{}
	}

	avgDuration := summary.Basic.AvgVisitDurationSeconds()

	return api.Summary{
		Source:    "Umami",
		WebsiteID: summary.WebsiteID,
		Date:      summary.Range.DateString(),
		Timezone:  summary.Range.Timezone,
		TimeRange: api.TimeRange{
			LocalStart: summary.Range.LocalStart.Format(time.RFC3339Nano),
			LocalEnd:   summary.Range.LocalEnd.Format(time.RFC3339Nano),
			UTCStart:   summary.Range.UTCStartISO(),
			UTCEnd:     summary.Range.UTCEndISO(),
			StartAtMs:  summary.Range.StartAtMillis(),
			EndAtMs:    summary.Range.EndAtMillis(),
		},
		BasicData: api.BasicData{
			Visitors:             summary.Basic.Visitors,
			Visits:               summary.Basic.Visits,
			VisitDurationSeconds: roundTo2(avgDuration),
			VisitDurationClock:   FormatDuration(avgDuration),
			TotalTimeSeconds:     roundTo2(summary.Basic.TotalTimeSeconds),
		},
		FunnelData:             funnels,
		AvailableFunnelReports: available,
	}
}

func mapFunnelResult(result domain.FunnelResult) api.FunnelEntry {
	entry := api.FunnelEntry{
		RequestedName:     result.RequestedName,
		DisplayName:       result.DisplayName,
		LookupName:        result.LookupName,
		MatchedReportName: result.MatchedReportName,
		ReportID:          result.ReportID,
		Status:            string(result.Status),
		Note:              result.Note,
	}
	if result.Status != domain.FunnelStatusOK {
		return entry
	}

	steps := make([]api.FunnelStep, 0, len(result.Steps))
	for _, step := range result.Steps {
		steps = append(steps, api.FunnelStep{
			StepIndex:        step.Index,
			StepType:         step.Type,
			StepValue:        step.Value,
			StepLabel:        fmt.Sprintf("step_%d", step.Index),
			Visitors:         step.Visitors,
			Dropoff:          step.Dropoff,
			RateFromPrevious: step.RateFromPrevious,
		})
	}
	entry.FunnelMetrics = &api.FunnelMetrics{
		StartVisitors:  result.StartVisitors,
		FinalVisitors:  result.FinalVisitors,
		ConversionRate: result.ConversionRate,
		Steps:          steps,
	}
	return entry
}

// FormatDuration renders a second count as HH:MM:SS, rounding to the
// nearest whole second. Negative and non-finite inputs floor to 00:00:00.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "00:00:00"
	}
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

func roundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}
