package domain

type FunnelStatus string

const (
	FunnelStatusOK            FunnelStatus = "ok"
	FunnelStatusMissingReport FunnelStatus = "missing_report"
	FunnelStatusInvalidReport FunnelStatus = "invalid_report"
	FunnelStatusRequestFailed FunnelStatus = "request_failed"
)

// FunnelRequest names one funnel the caller wants evaluated. Lookup
// overrides the name used to match against the dashboard catalog and
// Display overrides the name used in rendered output; both fall back
// to Name.
type FunnelRequest struct {
	Name    string
	Lookup  string
	Display string
}

func (r FunnelRequest) LookupName() string {
	if r.Lookup != "" {
		return r.Lookup
	}
	return r.Name
}

func (r FunnelRequest) DisplayName() string {
	if r.Display != "" {
		return r.Display
	}
	return r.Name
}

// FunnelReport is one funnel definition from the remote catalog.
type FunnelReport struct {
	ID     string
	Name   string
	Steps  []FunnelStepDef
	Window int // maximum minutes between consecutive step events
}

type FunnelStepDef struct {
	Type  string
	Value string
}

// FunnelStep is one computed step of an executed funnel.
type FunnelStep struct {
	Index            int // 1-based position in the funnel
	Type             string
	Value            string
	Visitors         int
	Dropoff          int
	RateFromPrevious *float64 // nil on the first step and after a zero-visitor step
}

// FunnelResult is the outcome of evaluating one FunnelRequest. Failures
// surface through Status and Note so one broken funnel never aborts the
// rest of the run.
type FunnelResult struct {
	RequestedName     string
	DisplayName       string
	LookupName        string
	MatchedReportName string
	ReportID          string
	Status            FunnelStatus
	Note              string
	StartVisitors     int
	FinalVisitors     int
	ConversionRate    *float64
	Steps             []FunnelStep
}
