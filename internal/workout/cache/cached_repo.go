package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=cached_repo.go -destination=cached_repo_mocks_test.go -package=cache_test

type workoutRepo interface {
	AddExercise(ctx context.Context, exercise workout.Exercise) (*workout.Exercise, error)
	ListExercises(ctx context.Context) ([]workout.Exercise, error)
	GetExercise(ctx context.Context, name string) (*workout.Exercise, error)
	RenameExercise(ctx context.Context, from, to string) error
	DeleteExercise(ctx context.Context, name string) error
	AddHistory(ctx context.Context, history workout.History) (*workout.History, error)
	GetHistory(ctx context.Context, id string) (*workout.History, error)
	UpdateHistory(ctx context.Context, id string, update workout.HistoryUpdate) (*workout.History, error)
	DeleteHistory(ctx context.Context, id string) error
	ListHistory(ctx context.Context, params workout.HistoryParams) ([]workout.History, error)
	CountHistory(ctx context.Context, params workout.HistoryParams) (int, error)
	SaveOnboarding(ctx context.Context, data workout.OnboardingData) (*workout.OnboardingData, error)
	LatestOnboarding(ctx context.Context, userID string) (*workout.OnboardingData, error)
}

const lockStripes = 64

// CachedRepo serves per-exercise history lists from the HistoryCache and
// keeps it coherent with the store.
//
// Readers hold the shared lock of the exercise's stripe while they load and
// populate the cache. Writers hold the exclusive lock across the store write
// and the invalidation, so no reader can put pre-write data back afterwards.
type CachedRepo struct {
	repo           workoutRepo
	cache          *HistoryCache
	metricsManager *metrics.Manager
	locks          [lockStripes]sync.RWMutex
}

func NewCachedRepo(repo workoutRepo, cache *HistoryCache, metricsManager *metrics.Manager) *CachedRepo {
	return &CachedRepo{
		repo:           repo,
		cache:          cache,
		metricsManager: metricsManager,
	}
}

func (r *CachedRepo) stripe(exerciseName string) int {
	return int(xxhash.Sum64String(exerciseName) % lockStripes)
}

func (r *CachedRepo) lock(exerciseName string) func() {
	l := &r.locks[r.stripe(exerciseName)]
	l.Lock()
	return l.Unlock
}

// lockPair takes both stripes in index order, once if they coincide.
func (r *CachedRepo) lockPair(a, b string) func() {
	i, j := r.stripe(a), r.stripe(b)
	if i == j {
		return r.lock(a)
	}
	if i > j {
		i, j = j, i
	}
	r.locks[i].Lock()
	r.locks[j].Lock()
	return func() {
		r.locks[j].Unlock()
		r.locks[i].Unlock()
	}
}

// ExerciseHistory returns all histories of the exercise, newest first.
func (r *CachedRepo) ExerciseHistory(ctx context.Context, exerciseName string) (_ []workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cachedRepo.exerciseHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exerciseName))

	l := &r.locks[r.stripe(exerciseName)]
	l.RLock()
	defer l.RUnlock()

	if histories, ok := r.cache.Get(exerciseName); ok {
		r.metricsManager.CacheHit()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return histories, nil
	}
	r.metricsManager.CacheMiss()
	span.SetAttributes(attribute.Bool("cache.hit", false))

	histories, err := r.repo.ListHistory(ctx, workout.HistoryParams{ExerciseName: exerciseName})
	if err != nil {
		return nil, err
	}
	if err := r.cache.Put(exerciseName, histories); err != nil {
		log.Warnf("history cache put: %s", err)
	}
	return histories, nil
}

// ListHistory reads unbounded single-exercise queries through the cache,
// everything else goes to the store.
func (r *CachedRepo) ListHistory(ctx context.Context, params workout.HistoryParams) ([]workout.History, error) {
	if params.ExerciseName == "" || params.Range != nil || params.Since != nil {
		return r.repo.ListHistory(ctx, params)
	}

	histories, err := r.ExerciseHistory(ctx, params.ExerciseName)
	if err != nil {
		return nil, err
	}
	if params.Order == workout.OrderAsc {
		histories = slices.Clone(histories)
		slices.Reverse(histories)
	}
	return histories, nil
}

func (r *CachedRepo) CountHistory(ctx context.Context, params workout.HistoryParams) (int, error) {
	return r.repo.CountHistory(ctx, params)
}

func (r *CachedRepo) AddExercise(ctx context.Context, exercise workout.Exercise) (*workout.Exercise, error) {
	unlock := r.lock(exercise.Name)
	defer unlock()

	added, err := r.repo.AddExercise(ctx, exercise)
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(exercise.Name)
	return added, nil
}

func (r *CachedRepo) ListExercises(ctx context.Context) ([]workout.Exercise, error) {
	return r.repo.ListExercises(ctx)
}

func (r *CachedRepo) GetExercise(ctx context.Context, name string) (*workout.Exercise, error) {
	return r.repo.GetExercise(ctx, name)
}

func (r *CachedRepo) RenameExercise(ctx context.Context, from, to string) error {
	unlock := r.lockPair(from, to)
	defer unlock()

	if err := r.repo.RenameExercise(ctx, from, to); err != nil {
		return err
	}
	r.cache.Invalidate(from)
	r.cache.Invalidate(to)
	return nil
}

func (r *CachedRepo) DeleteExercise(ctx context.Context, name string) error {
	unlock := r.lock(name)
	defer unlock()

	if err := r.repo.DeleteExercise(ctx, name); err != nil {
		return err
	}
	r.cache.Invalidate(name)
	return nil
}

func (r *CachedRepo) AddHistory(ctx context.Context, history workout.History) (*workout.History, error) {
	unlock := r.lock(history.ExerciseName)
	defer unlock()

	added, err := r.repo.AddHistory(ctx, history)
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(history.ExerciseName)
	return added, nil
}

func (r *CachedRepo) GetHistory(ctx context.Context, id string) (*workout.History, error) {
	return r.repo.GetHistory(ctx, id)
}

// lockHistory locks the stripe of the exercise the history belongs to. The
// history is read again under the lock since a rename may move it meanwhile.
func (r *CachedRepo) lockHistory(ctx context.Context, id string) (*workout.History, func(), error) {
	for {
		existing, err := r.repo.GetHistory(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		unlock := r.lock(existing.ExerciseName)
		current, err := r.repo.GetHistory(ctx, id)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if current.ExerciseName == existing.ExerciseName {
			return current, unlock, nil
		}
		unlock()
	}
}

func (r *CachedRepo) UpdateHistory(ctx context.Context, id string, update workout.HistoryUpdate) (*workout.History, error) {
	existing, unlock, err := r.lockHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	updated, err := r.repo.UpdateHistory(ctx, id, update)
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(existing.ExerciseName)
	return updated, nil
}

func (r *CachedRepo) DeleteHistory(ctx context.Context, id string) error {
	existing, unlock, err := r.lockHistory(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if err := r.repo.DeleteHistory(ctx, id); err != nil {
		return err
	}
	r.cache.Invalidate(existing.ExerciseName)
	return nil
}

func (r *CachedRepo) SaveOnboarding(ctx context.Context, data workout.OnboardingData) (*workout.OnboardingData, error) {
	return r.repo.SaveOnboarding(ctx, data)
}

func (r *CachedRepo) LatestOnboarding(ctx context.Context, userID string) (*workout.OnboardingData, error) {
	return r.repo.LatestOnboarding(ctx, userID)
}
