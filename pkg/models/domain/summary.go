package domain

// BasicMetrics holds the website-level visit aggregates for one day.
type BasicMetrics struct {
	Visitors         int
	Visits           int
	TotalTimeSeconds float64
}

// AvgVisitDurationSeconds divides total visit time by visit count,
// guarding against a zero denominator.
func (m BasicMetrics) AvgVisitDurationSeconds() float64 {
	if m.Visits <= 0 {
		return 0
	}
	return m.TotalTimeSeconds / float64(m.Visits)
}

type Summary struct {
	WebsiteID        string
	Range            DayRange
	Basic            BasicMetrics
	Funnels          []FunnelResult
	AvailableReports []string
}
