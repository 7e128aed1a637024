package domain

import "time"

const isoMillisUTC = "2006-01-02T15:04:05.000Z"

// DayRange is one calendar day resolved in a named timezone: the local
// midnight-to-end-of-day boundaries plus their absolute UTC instants.
// The UTC span may differ from 24h on DST transition days. Immutable once
// constructed.
type DayRange struct {
	Day        time.Time // local midnight of the requested day
	Timezone   string
	LocalStart time.Time
	LocalEnd   time.Time // 23:59:59.999 local
	UTCStart   time.Time
	UTCEnd     time.Time
}

func (r DayRange) StartAtMillis() int64 {
	return r.UTCStart.UnixMilli()
}

func (r DayRange) EndAtMillis() int64 {
	return r.UTCEnd.UnixMilli()
}

// UTCStartISO renders the UTC start in ISO-8601 with millisecond precision
// and a literal "Z" suffix, the format the Umami funnel endpoint expects.
func (r DayRange) UTCStartISO() string {
	return r.UTCStart.UTC().Format(isoMillisUTC)
}

func (r DayRange) UTCEndISO() string {
	return r.UTCEnd.UTC().Format(isoMillisUTC)
}

func (r DayRange) DateString() string {
	return r.Day.Format("2006-01-02")
}
