package logbook

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=logbook_test

type logbookService interface {
	Today(ctx context.Context) (DayLog, error)
	Day(ctx context.Context, t time.Time) (DayLog, error)
	Calendar(ctx context.Context, from, to time.Time) (*CalendarLog, error)
	Exercise(ctx context.Context, name string) (*ExerciseLog, error)
	Graphs(ctx context.Context, window workout.Window, exerciseName string) (*Graphs, error)
	Location() *time.Location
}

type Handler struct {
	service logbookService
}

func NewHandler(service logbookService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, handler.service.Location())
}

func writeError(w http.ResponseWriter, view string, err error) {
	switch {
	case errors.Is(err, workout.ErrInvalidRange), errors.Is(err, workout.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, workout.ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
	default:
		log.Errorf("logbook %s: %s", view, err)
		http.Error(w, "failed to get "+view, http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logbook.today")
	defer span.End()

	dayLog, err := handler.service.Today(ctx)
	if err != nil {
		writeError(w, "today", err)
		return
	}
	pkg.WriteJSONResponse(w, http.StatusOK, dayLog)
}

func (handler *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logbook.day")
	defer span.End()

	day, err := handler.parseDate(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "error, date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	dayLog, err := handler.service.Day(ctx, day)
	if err != nil {
		writeError(w, "day", err)
		return
	}
	pkg.WriteJSONResponse(w, http.StatusOK, dayLog)
}

// HandleCalendar serves ?from=YYYY-MM-DD&to=YYYY-MM-DD, both days inclusive.
// Without parameters the last 30 days are shown.
func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logbook.calendar")
	defer span.End()

	to := time.Now().In(handler.service.Location())
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := handler.parseDate(toStr)
		if err != nil {
			http.Error(w, "error, to must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = parsed
	}
	from := to.AddDate(0, 0, -29)
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := handler.parseDate(fromStr)
		if err != nil {
			http.Error(w, "error, from must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	}

	calendar, err := handler.service.Calendar(ctx, from, to)
	if err != nil {
		writeError(w, "calendar", err)
		return
	}
	pkg.WriteJSONResponse(w, http.StatusOK, calendar)
}

func (handler *Handler) HandleExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logbook.exercise")
	defer span.End()

	name := mux.Vars(r)["name"]
	if name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	exerciseLog, err := handler.service.Exercise(ctx, name)
	if err != nil {
		writeError(w, "exercise logbook", err)
		return
	}
	pkg.WriteJSONResponse(w, http.StatusOK, exerciseLog)
}

func (handler *Handler) HandleGraphs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logbook.graphs")
	defer span.End()

	window, err := workout.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	graphs, err := handler.service.Graphs(ctx, window, r.URL.Query().Get("exercise"))
	if err != nil {
		writeError(w, "graphs", err)
		return
	}
	pkg.WriteJSONResponse(w, http.StatusOK, graphs)
}
