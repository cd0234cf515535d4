package client

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive start/end pair of calendar dates used to build
// the event filter expression.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange validates YYYY-MM-DD start and end dates.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", start)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", end)
	}
	if e.Before(s) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return DateRange{Start: s, End: e}, nil
}

// startDatetime is the inclusive lower bound in the API's timestamp format.
func (r DateRange) startDatetime() string {
	return r.Start.Format(dateLayout) + "T00:00:00Z"
}

// endDatetime is the inclusive upper bound in the API's timestamp format.
func (r DateRange) endDatetime() string {
	return r.End.Format(dateLayout) + "T23:59:59Z"
}

func (r DateRange) String() string {
	return r.Start.Format(dateLayout) + ".." + r.End.Format(dateLayout)
}

// Chunks splits the range into consecutive sub-ranges of at most the given
// number of months. Large ranges are fetched chunk by chunk so a failure
// late in an export wastes less work and keeps individual filter windows
// small.
func (r DateRange) Chunks(months int) []DateRange {
	if months <= 0 {
		months = 1
	}

	var chunks []DateRange
	start := r.Start
	for !start.After(r.End) {
		end := start.AddDate(0, months, 0).AddDate(0, 0, -1)
		if end.After(r.End) {
			end = r.End
		}
		chunks = append(chunks, DateRange{Start: start, End: end})
		start = end.AddDate(0, 0, 1)
	}
	return chunks
}
