package workout

import (
	"fmt"
	"time"
)

// DayRange is a half-open time range [Start, End).
type DayRange struct {
	Start time.Time
	End   time.Time
}

func NewDayRange(start, end time.Time) (DayRange, error) {
	if start.IsZero() || end.IsZero() {
		return DayRange{}, fmt.Errorf("%w: start and end must be set", ErrInvalidRange)
	}
	if !end.After(start) {
		return DayRange{}, fmt.Errorf("%w: end [%s] not after start [%s]", ErrInvalidRange, end, start)
	}
	return DayRange{Start: start, End: end}, nil
}

// DayRangeOf returns the calendar day containing t, in loc.
func DayRangeOf(t time.Time, loc *time.Location) DayRange {
	start := StartOfDay(t, loc)
	return DayRange{
		Start: start,
		End:   NextDay(start),
	}
}

// DaysRange spans whole calendar days, from the day of 'from' up to and
// including the day of 'to'.
func DaysRange(from, to time.Time, loc *time.Location) (DayRange, error) {
	start := StartOfDay(from, loc)
	end := NextDay(StartOfDay(to, loc))
	return NewDayRange(start, end)
}

func (r DayRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r DayRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// StartOfDay truncates t to local midnight. Unlike t.Truncate(24h) it
// respects the zone offset and DST transitions.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// NextDay expects a start of day and returns the start of the following one.
func NextDay(dayStart time.Time) time.Time {
	return time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day()+1, 0, 0, 0, 0, dayStart.Location())
}

type SortOrder int

const (
	OrderDesc SortOrder = iota
	OrderAsc
)

func (o SortOrder) String() string {
	if o == OrderAsc {
		return "asc"
	}
	return "desc"
}

// HistoryParams filters history queries. Empty fields are ignored.
type HistoryParams struct {
	ExerciseName string
	Range        *DayRange
	// Since is an inclusive lower bound, without an upper bound
	Since *time.Time
	Order SortOrder
}
