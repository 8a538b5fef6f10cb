package workout

import (
	"fmt"
	"strings"
	"time"
)

// DayAggregate is what the progress graphs plot for one exercise on one day.
type DayAggregate struct {
	Day       time.Time `json:"day"`
	MaxWeight float64   `json:"maxWeight"`
	TotalReps float64   `json:"totalReps"`
	Sets      int       `json:"sets"`
	Volume    float64   `json:"volume"`
}

func aggregateDay(day time.Time, histories []History) DayAggregate {
	agg := DayAggregate{Day: day}
	for i, h := range histories {
		if i == 0 || h.Weight > agg.MaxWeight {
			agg.MaxWeight = h.Weight
		}
		agg.TotalReps += h.Reps
		agg.Volume += h.Volume()
		agg.Sets++
	}
	return agg
}

// Aggregate computes per exercise, per day aggregates for every history
// created at or after since. Exercises without histories in the window are
// not present in the result. Days are sorted ascending.
func Aggregate(histories []History, since time.Time, loc *time.Location) map[string][]DayAggregate {
	inWindow := make([]History, 0, len(histories))
	for _, h := range histories {
		if h.CreatedAt.Before(since) {
			continue
		}
		inWindow = append(inWindow, h)
	}

	result := make(map[string][]DayAggregate)
	for name, day2histories := range GroupByExercise(inWindow, loc) {
		aggregates := make([]DayAggregate, 0, len(day2histories))
		for _, day := range SortedDays(day2histories) {
			aggregates = append(aggregates, aggregateDay(day, day2histories[day]))
		}
		result[name] = aggregates
	}
	return result
}

// Window is the time span shown on the graphs.
type Window string

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "week", "7d":
		return WindowWeek, nil
	case "month", "1m":
		return WindowMonth, nil
	default:
		return "", fmt.Errorf("%w: unknown window [%s]", ErrInvalidInput, s)
	}
}

// Since returns the window's lower bound relative to now. There is no upper
// bound, the window always includes now.
func (w Window) Since(now time.Time) time.Time {
	if w == WindowMonth {
		return now.AddDate(0, -1, 0)
	}
	return now.AddDate(0, 0, -7)
}
