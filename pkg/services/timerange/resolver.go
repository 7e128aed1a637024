package timerange

import (
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/umami-atlas/pkg/models/domain"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidTimezone   = errors.New("invalid timezone")
)

const dayLayout = "2006-01-02"

// ResolveDay builds the local and UTC boundaries of one calendar day in the
// named timezone. An empty day selects yesterday in that timezone, which is
// not necessarily yesterday in UTC.
func ResolveDay(day, timezone string) (domain.DayRange, error) {
	return resolveDayAt(day, timezone, time.Now())
}

func resolveDayAt(day, timezone string, now time.Time) (domain.DayRange, error) {
	if timezone == "" {
		// LoadLocation treats "" as UTC, which would mask a config mistake.
		return domain.DayRange{}, fmt.Errorf("%w: timezone is empty", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return domain.DayRange{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}

	var target time.Time
	if day != "" {
		parsed, err := time.ParseInLocation(dayLayout, day, loc)
		if err != nil {
			return domain.DayRange{}, fmt.Errorf("%w: %q, want YYYY-MM-DD", ErrInvalidDateFormat, day)
		}
		target = parsed
	} else {
		target = now.In(loc).AddDate(0, 0, -1)
	}

	year, month, dayOfMonth := target.Date()
	localStart := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, loc)
	localEnd := time.Date(year, month, dayOfMonth, 23, 59, 59, 999000000, loc)

	return domain.DayRange{
		Day:        localStart,
		Timezone:   timezone,
		LocalStart: localStart,
		LocalEnd:   localEnd,
		UTCStart:   localStart.UTC(),
		UTCEnd:     localEnd.UTC(),
	}, nil
}
