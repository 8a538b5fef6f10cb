package workout

import (
	"sort"
	"time"
)

// ByDate maps a calendar day to exercise name to the sets done that day.
type ByDate map[time.Time]map[string][]History

// ByExercise maps an exercise name to calendar day to the sets done that day.
type ByExercise map[string]map[time.Time][]History

// GroupByDate buckets every history into its calendar day, then by exercise.
// Within a bucket the input order is kept, so histories fetched
// newest-first stay newest-first.
func GroupByDate(histories []History, loc *time.Location) ByDate {
	grouped := make(ByDate)
	for _, h := range histories {
		day := StartOfDay(h.CreatedAt, loc)
		day2ex, ok := grouped[day]
		if !ok {
			day2ex = make(map[string][]History)
			grouped[day] = day2ex
		}
		day2ex[h.ExerciseName] = append(day2ex[h.ExerciseName], h)
	}
	return grouped
}

// GroupByExercise is GroupByDate with the grouping order inverted.
func GroupByExercise(histories []History, loc *time.Location) ByExercise {
	grouped := make(ByExercise)
	for _, h := range histories {
		day := StartOfDay(h.CreatedAt, loc)
		ex2day, ok := grouped[h.ExerciseName]
		if !ok {
			ex2day = make(map[time.Time][]History)
			grouped[h.ExerciseName] = ex2day
		}
		ex2day[day] = append(ex2day[day], h)
	}
	return grouped
}

// Flatten returns every history of the grouping, days ascending and
// exercise names sorted within a day.
func (g ByDate) Flatten() []History {
	var flat []History
	for _, day := range SortedDays(g) {
		day2ex := g[day]
		for _, name := range SortedNames(day2ex) {
			flat = append(flat, day2ex[name]...)
		}
	}
	return flat
}

// DailyActivity counts the sets logged per calendar day; used to color the
// calendar heat map.
func DailyActivity(histories []History, loc *time.Location) map[time.Time]int {
	activity := make(map[time.Time]int)
	for _, h := range histories {
		activity[StartOfDay(h.CreatedAt, loc)]++
	}
	return activity
}

func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func SortedDays[V any](m map[time.Time]V) []time.Time {
	days := make([]time.Time, 0, len(m))
	for day := range m {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}
