package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/remotesync"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type workoutRepo interface {
	AddExercise(ctx context.Context, exercise workout.Exercise) (*workout.Exercise, error)
	ListExercises(ctx context.Context) ([]workout.Exercise, error)
	GetExercise(ctx context.Context, name string) (*workout.Exercise, error)
	RenameExercise(ctx context.Context, from, to string) error
	DeleteExercise(ctx context.Context, name string) error
	AddHistory(ctx context.Context, history workout.History) (*workout.History, error)
	UpdateHistory(ctx context.Context, id string, update workout.HistoryUpdate) (*workout.History, error)
	DeleteHistory(ctx context.Context, id string) error
	ListHistory(ctx context.Context, params workout.HistoryParams) ([]workout.History, error)
	CountHistory(ctx context.Context, params workout.HistoryParams) (int, error)
}

type remoteMirror interface {
	MirrorExercise(ctx context.Context, exercise workout.Exercise) error
	RemoveExercise(ctx context.Context, exerciseName string) error
	RenameExercise(ctx context.Context, from string, to workout.Exercise) error
}

type ExerciseRequest struct {
	Name string `json:"name"`
}

type AddSetRequest struct {
	Weight    float64   `json:"weight"`
	Reps      float64   `json:"reps"`
	Exertion  int       `json:"exertion"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddSetResponse struct {
	workout.History
	CountToday int `json:"countToday"`
}

type DeleteExerciseResponse struct {
	DeletedName string `json:"deletedName"`
}

type DeleteSetResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	repo           workoutRepo
	remote         remoteMirror
	metricsManager *metrics.Manager
	loc            *time.Location
	nowFunc        func() time.Time
}

func NewHandler(
	repo workoutRepo,
	remote remoteMirror,
	metricsManager *metrics.Manager,
	loc *time.Location,
) *Handler {
	return &Handler{
		repo:           repo,
		remote:         remote,
		metricsManager: metricsManager,
		loc:            loc,
		nowFunc:        time.Now,
	}
}

// WithNowFunc replaces the clock, used to pin "today" in tests.
func (handler *Handler) WithNowFunc(nowFunc func() time.Time) *Handler {
	handler.nowFunc = nowFunc
	return handler
}

// mirror runs a remote exercise-list write. Failures never fail the request.
func mirror(op string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, remotesync.ErrSyncDisabled) {
		log.Tracef("remote mirror %s skipped: %s", op, err)
		return
	}
	log.Errorf("remote mirror %s: %s", op, err)
}

func writeRepoError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, workout.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, workout.ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
	case errors.Is(err, workout.ErrHistoryNotFound):
		http.Error(w, "set not found", http.StatusNotFound)
	case errors.Is(err, workout.ErrExerciseExists):
		http.Error(w, "exercise already exists", http.StatusConflict)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, "error, failed to "+action, http.StatusInternalServerError)
	}
}

func decodeExerciseName(r *http.Request) (string, error) {
	var req ExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", errors.Join(workout.ErrInvalidInput, err)
	}
	return workout.NormalizeExerciseName(req.Name)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	exercises, err := handler.repo.ListExercises(ctx)
	if err != nil {
		writeRepoError(w, "list exercises", err)
		return
	}
	if exercises == nil {
		exercises = []workout.Exercise{}
	}
	pkg.WriteJSONResponse(w, http.StatusOK, exercises)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	name, err := decodeExerciseName(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("exercise.name", name))

	added, err := handler.repo.AddExercise(ctx, workout.Exercise{
		Name:      name,
		CreatedAt: handler.nowFunc(),
	})
	if err != nil {
		writeRepoError(w, "add exercise", err)
		return
	}

	mirror("add exercise", handler.remote.MirrorExercise(ctx, *added))

	log.Debugf("new exercise added: %s", added.Name)
	pkg.WriteJSONResponse(w, http.StatusCreated, added)
}

func (handler *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.rename")
	defer span.End()

	from := mux.Vars(r)["name"]
	to, err := decodeExerciseName(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	if err := handler.repo.RenameExercise(ctx, from, to); err != nil {
		writeRepoError(w, "rename exercise", err)
		return
	}

	renamed, err := handler.repo.GetExercise(ctx, to)
	if err != nil {
		writeRepoError(w, "rename exercise", err)
		return
	}

	mirror("rename exercise", handler.remote.RenameExercise(ctx, from, *renamed))

	log.Debugf("exercise renamed: %s -> %s", from, to)
	pkg.WriteJSONResponse(w, http.StatusOK, renamed)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	name := mux.Vars(r)["name"]
	span.SetAttributes(attribute.String("exercise.name", name))

	if err := handler.repo.DeleteExercise(ctx, name); err != nil {
		writeRepoError(w, "delete exercise", err)
		return
	}

	mirror("delete exercise", handler.remote.RemoveExercise(ctx, name))

	log.Debugf("exercise deleted: %s", name)
	pkg.WriteJSONResponse(w, http.StatusOK, DeleteExerciseResponse{DeletedName: name})
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.addSet")
	defer span.End()

	name := mux.Vars(r)["name"]
	span.SetAttributes(attribute.String("exercise.name", name))

	var req AddSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add set, unmarshal json params: %s", err)
		http.Error(w, "invalid set", http.StatusBadRequest)
		return
	}

	history := workout.History{
		ExerciseName: name,
		Weight:       req.Weight,
		Reps:         req.Reps,
		Exertion:     req.Exertion,
		CreatedAt:    req.CreatedAt,
	}
	if history.CreatedAt.IsZero() {
		history.CreatedAt = handler.nowFunc()
	}
	if err := history.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.AddHistory(ctx, history)
	if err != nil {
		writeRepoError(w, "add set", err)
		return
	}
	handler.metricsManager.CounterSetsLogged.Inc()

	today := workout.DayRangeOf(handler.nowFunc(), handler.loc)
	countToday, err := handler.repo.CountHistory(ctx, workout.HistoryParams{
		ExerciseName: name,
		Range:        &today,
	})
	if err != nil {
		// just log the error, the set is saved
		log.Errorf("failed to count sets today [%s]: %s", name, err)
		countToday = -1
	}

	pkg.WriteJSONResponse(w, http.StatusCreated, AddSetResponse{
		History:    *added,
		CountToday: countToday,
	})
}

func (handler *Handler) HandleListSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.listSets")
	defer span.End()

	name := mux.Vars(r)["name"]
	span.SetAttributes(attribute.String("exercise.name", name))

	if _, err := handler.repo.GetExercise(ctx, name); err != nil {
		writeRepoError(w, "list sets", err)
		return
	}

	histories, err := handler.repo.ListHistory(ctx, workout.HistoryParams{ExerciseName: name})
	if err != nil {
		writeRepoError(w, "list sets", err)
		return
	}
	if histories == nil {
		histories = []workout.History{}
	}
	pkg.WriteJSONResponse(w, http.StatusOK, histories)
}

func (handler *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.updateSet")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("history.id", id))

	var update workout.HistoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid set update", http.StatusBadRequest)
		return
	}
	if err := update.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.repo.UpdateHistory(ctx, id, update)
	if err != nil {
		writeRepoError(w, "update set", err)
		return
	}
	pkg.WriteJSONResponse(w, http.StatusOK, updated)
}

func (handler *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.deleteSet")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("history.id", id))

	if err := handler.repo.DeleteHistory(ctx, id); err != nil {
		writeRepoError(w, "delete set", err)
		return
	}
	pkg.WriteJSONResponse(w, http.StatusOK, DeleteSetResponse{DeletedID: id})
}
