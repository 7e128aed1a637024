package api

// Summary is the external JSON shape of a one-day website summary.
type Summary struct {
	Source                 string        `json:"source"`
	WebsiteID              string        `json:"website_id"`
	Date                   string        `json:"date"`
	Timezone               string        `json:"timezone"`
	TimeRange              TimeRange     `json:"time_range"`
	BasicData              BasicData     `json:"basic_data"`
	FunnelData             []FunnelEntry `json:"funnel_data"`
	AvailableFunnelReports []string      `json:"available_funnel_reports"`
}

type TimeRange struct {
	LocalStart string `json:"local_start"`
	LocalEnd   string `json:"local_end"`
	UTCStart   string `json:"utc_start"`
	UTCEnd     string `json:"utc_end"`
	StartAtMs  int64  `json:"start_at_ms"`
	EndAtMs    int64  `json:"end_at_ms"`
}

type BasicData struct {
	Visitors             int     `json:"visitors"`
	Visits               int     `json:"visits"`
	VisitDurationSeconds float64 `json:"visit_duration_seconds"`
	VisitDurationClock   string  `json:"visit_duration_hhmmss"`
	TotalTimeSeconds     float64 `json:"totaltime_seconds"`
}

// FunnelEntry is one evaluated funnel. The metrics block is present only
// when the funnel executed, so failed entries carry no misleading zeros.
type FunnelEntry struct {
	RequestedName     string `json:"requested_name"`
	DisplayName       string `json:"display_name"`
	LookupName        string `json:"lookup_name"`
	MatchedReportName string `json:"matched_report_name,omitempty"`
	ReportID          string `json:"report_id,omitempty"`
	Status            string `json:"status"`
	Note              string `json:"note,omitempty"`
	*FunnelMetrics
}

type FunnelMetrics struct {
	StartVisitors  int          `json:"start_visitors"`
	FinalVisitors  int          `json:"final_visitors"`
	ConversionRate *float64     `json:"conversion_rate"`
	Steps          []FunnelStep `json:"steps"`
}

type FunnelStep struct {
	StepIndex        int      `json:"step_index"`
	StepType         string   `json:"step_type"`
	StepValue        string   `json:"step_value"`
	StepLabel        string   `json:"step_label"`
	Visitors         int      `json:"visitors"`
	Dropoff          int      `json:"dropoff"`
	RateFromPrevious *float64 `json:"rate_from_previous"`
}
