package logbook

import (
	"context"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=logbook_test

const DateLayout = "2006-01-02"

type historyRepo interface {
	GetExercise(ctx context.Context, name string) (*workout.Exercise, error)
	ListHistory(ctx context.Context, params workout.HistoryParams) ([]workout.History, error)
}

type ExerciseSets struct {
	Name string            `json:"name"`
	Sets []workout.History `json:"sets"`
}

type DayLog struct {
	Date      string         `json:"date"`
	Count     int            `json:"count"`
	Exercises []ExerciseSets `json:"exercises"`
}

type DayActivity struct {
	Date string `json:"date"`
	Sets int    `json:"sets"`
}

type CalendarLog struct {
	From     string        `json:"from"`
	To       string        `json:"to"`
	Days     []DayLog      `json:"days"`
	Activity []DayActivity `json:"activity"`
}

type DaySets struct {
	Date string            `json:"date"`
	Sets []workout.History `json:"sets"`
}

type ExerciseLog struct {
	Name        string    `json:"name"`
	Days        []DaySets `json:"days"`
	LastSession *DaySets  `json:"lastSession,omitempty"`
}

type ExerciseGraph struct {
	Name string                 `json:"name"`
	Days []workout.DayAggregate `json:"days"`
}

type Graphs struct {
	Window    workout.Window  `json:"window"`
	Since     time.Time       `json:"since"`
	Exercises []ExerciseGraph `json:"exercises"`
}

// Service builds the read views of the workout log. Store read failures do
// not fail a view: they are logged, counted and the view is rendered empty.
type Service struct {
	repo           historyRepo
	metricsManager *metrics.Manager
	loc            *time.Location
	nowFunc        func() time.Time
}

func NewService(repo historyRepo, metricsManager *metrics.Manager, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		loc:            loc,
		nowFunc:        time.Now,
	}
}

func (s *Service) WithNowFunc(nowFunc func() time.Time) *Service {
	s.nowFunc = nowFunc
	return s
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) fetch(ctx context.Context, view string, params workout.HistoryParams) []workout.History {
	histories, err := s.repo.ListHistory(ctx, params)
	if err != nil {
		log.Errorf("logbook %s, fetch histories: %s", view, err)
		s.metricsManager.CounterStoreFetchFailures.Inc()
		return []workout.History{}
	}
	return histories
}

func (s *Service) dayLog(day time.Time, name2histories map[string][]workout.History) DayLog {
	dl := DayLog{
		Date:      day.Format(DateLayout),
		Exercises: []ExerciseSets{},
	}
	for _, name := range workout.SortedNames(name2histories) {
		sets := name2histories[name]
		dl.Count += len(sets)
		dl.Exercises = append(dl.Exercises, ExerciseSets{Name: name, Sets: sets})
	}
	return dl
}

// Day returns every set logged on the calendar day of t, by exercise.
func (s *Service) Day(ctx context.Context, t time.Time) (_ DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "logbook.day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	dayRange := workout.DayRangeOf(t, s.loc)
	span.SetAttributes(attribute.String("range", dayRange.String()))

	histories := s.fetch(ctx, "day", workout.HistoryParams{Range: &dayRange})
	byDate := workout.GroupByDate(histories, s.loc)
	return s.dayLog(dayRange.Start, byDate[dayRange.Start]), nil
}

func (s *Service) Today(ctx context.Context) (DayLog, error) {
	return s.Day(ctx, s.nowFunc())
}

// Calendar groups the sets of the days from..to (both inclusive) by date and
// exercise, along with the per day set counts for the heat map.
func (s *Service) Calendar(ctx context.Context, from, to time.Time) (_ *CalendarLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "logbook.calendar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	days, err := workout.DaysRange(from, to, s.loc)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("range", days.String()))

	histories := s.fetch(ctx, "calendar", workout.HistoryParams{Range: &days})
	byDate := workout.GroupByDate(histories, s.loc)
	activity := workout.DailyActivity(histories, s.loc)

	calendar := &CalendarLog{
		From:     days.Start.Format(DateLayout),
		To:       workout.StartOfDay(to, s.loc).Format(DateLayout),
		Days:     make([]DayLog, 0, len(byDate)),
		Activity: make([]DayActivity, 0, len(activity)),
	}
	// newest day first, like the history views
	sortedDays := workout.SortedDays(byDate)
	for i := len(sortedDays) - 1; i >= 0; i-- {
		day := sortedDays[i]
		calendar.Days = append(calendar.Days, s.dayLog(day, byDate[day]))
	}
	for _, day := range workout.SortedDays(activity) {
		calendar.Activity = append(calendar.Activity, DayActivity{
			Date: day.Format(DateLayout),
			Sets: activity[day],
		})
	}
	return calendar, nil
}

// Exercise returns the exercise's sets grouped by day, newest day first.
func (s *Service) Exercise(ctx context.Context, name string) (_ *ExerciseLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "logbook.exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	if _, err := s.repo.GetExercise(ctx, name); err != nil {
		return nil, err
	}

	histories := s.fetch(ctx, "exercise", workout.HistoryParams{ExerciseName: name})
	day2histories := workout.GroupByExercise(histories, s.loc)[name]

	exerciseLog := &ExerciseLog{
		Name: name,
		Days: make([]DaySets, 0, len(day2histories)),
	}
	sortedDays := workout.SortedDays(day2histories)
	for i := len(sortedDays) - 1; i >= 0; i-- {
		day := sortedDays[i]
		exerciseLog.Days = append(exerciseLog.Days, DaySets{
			Date: day.Format(DateLayout),
			Sets: day2histories[day],
		})
	}
	if len(exerciseLog.Days) > 0 {
		last := exerciseLog.Days[0]
		exerciseLog.LastSession = &last
	}
	return exerciseLog, nil
}

// Graphs aggregates the sets inside the window per exercise and day. With
// an exercise name given, only that exercise is considered.
func (s *Service) Graphs(ctx context.Context, window workout.Window, exerciseName string) (_ *Graphs, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "logbook.graphs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("window", string(window)), attribute.String("exercise.name", exerciseName))

	since := window.Since(s.nowFunc())
	histories := s.fetch(ctx, "graphs", workout.HistoryParams{
		ExerciseName: exerciseName,
		Since:        &since,
		Order:        workout.OrderAsc,
	})

	aggregates := workout.Aggregate(histories, since, s.loc)
	graphs := &Graphs{
		Window:    window,
		Since:     since,
		Exercises: make([]ExerciseGraph, 0, len(aggregates)),
	}
	for _, name := range workout.SortedNames(aggregates) {
		graphs.Exercises = append(graphs.Exercises, ExerciseGraph{
			Name: name,
			Days: aggregates[name],
		})
	}
	return graphs, nil
}
