package repo

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/2beens/liftlog/internal/workout"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// store is the method set both backends share.
type store interface {
	Migrate(ctx context.Context) error
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

var (
	_ store = (*GormRepo)(nil)
	_ store = (*PsqlRepo)(nil)
)

var storeSeq atomic.Int64

// storeTests runs the same behaviour checks against a backend. newStore must
// return an empty, migrated store.
func storeTests(t *testing.T, newStore func(t *testing.T) store) {
	t.Run("exercises", func(t *testing.T) {
		testExercises(t, newStore(t))
	})
	t.Run("histories", func(t *testing.T) {
		testHistories(t, newStore(t))
	})
	t.Run("list filters", func(t *testing.T) {
		testListFilters(t, newStore(t))
	})
	t.Run("rename cascade", func(t *testing.T) {
		testRenameCascade(t, newStore(t))
	})
	t.Run("delete cascade", func(t *testing.T) {
		testDeleteCascade(t, newStore(t))
	})
	t.Run("onboarding", func(t *testing.T) {
		testOnboarding(t, newStore(t))
	})
}

func mustAddExercise(t *testing.T, s store, name string) {
	t.Helper()
	_, err := s.AddExercise(context.Background(), workout.Exercise{Name: name})
	require.NoError(t, err)
}

func mustAddHistory(t *testing.T, s store, name string, weight, reps float64, at time.Time) *workout.History {
	t.Helper()
	h, err := s.AddHistory(context.Background(), workout.History{
		ExerciseName: name,
		Weight:       weight,
		Reps:         reps,
		Exertion:     7,
		CreatedAt:    at,
	})
	require.NoError(t, err)
	return h
}

func testExercises(t *testing.T, s store) {
	ctx := context.Background()

	exercises, err := s.ListExercises(ctx)
	require.NoError(t, err)
	assert.Empty(t, exercises)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	added, err := s.AddExercise(ctx, workout.Exercise{Name: "Squat", CreatedAt: created})
	require.NoError(t, err)
	assert.Equal(t, "Squat", added.Name)
	assert.True(t, created.Equal(added.CreatedAt))

	mustAddExercise(t, s, "Bench Press")
	mustAddExercise(t, s, "Deadlift")

	_, err = s.AddExercise(ctx, workout.Exercise{Name: "Squat"})
	assert.ErrorIs(t, err, workout.ErrExerciseExists)

	exercises, err = s.ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 3)
	assert.Equal(t, "Bench Press", exercises[0].Name)
	assert.Equal(t, "Deadlift", exercises[1].Name)
	assert.Equal(t, "Squat", exercises[2].Name)

	got, err := s.GetExercise(ctx, "Deadlift")
	require.NoError(t, err)
	assert.Equal(t, "Deadlift", got.Name)

	_, err = s.GetExercise(ctx, "Curl")
	assert.ErrorIs(t, err, workout.ErrExerciseNotFound)

	assert.ErrorIs(t, s.RenameExercise(ctx, "Curl", "Biceps Curl"), workout.ErrExerciseNotFound)
	assert.ErrorIs(t, s.RenameExercise(ctx, "Squat", "Deadlift"), workout.ErrExerciseExists)
	assert.NoError(t, s.RenameExercise(ctx, "Squat", "Squat"))
	assert.ErrorIs(t, s.DeleteExercise(ctx, "Curl"), workout.ErrExerciseNotFound)
}

func testHistories(t *testing.T, s store) {
	ctx := context.Background()
	mustAddExercise(t, s, "Squat")

	_, err := s.AddHistory(ctx, workout.History{ExerciseName: "Curl", Weight: 10, Reps: 10, Exertion: 5})
	assert.ErrorIs(t, err, workout.ErrExerciseNotFound)

	at := time.Date(2024, 3, 1, 18, 30, 15, 123456000, time.UTC)
	h := mustAddHistory(t, s, "Squat", 100, 5, at)
	assert.NotEmpty(t, h.ID)
	assert.True(t, at.Equal(h.CreatedAt))

	got, err := s.GetHistory(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.ID, got.ID)
	assert.Equal(t, "Squat", got.ExerciseName)
	assert.Equal(t, 100.0, got.Weight)
	assert.Equal(t, 5.0, got.Reps)
	assert.Equal(t, 7, got.Exertion)
	assert.True(t, at.Equal(got.CreatedAt))

	updated, err := s.UpdateHistory(ctx, h.ID, workout.HistoryUpdate{Weight: 102.5, Reps: 4, Exertion: 9})
	require.NoError(t, err)
	assert.Equal(t, h.ID, updated.ID)
	assert.Equal(t, "Squat", updated.ExerciseName)
	assert.Equal(t, 102.5, updated.Weight)
	assert.Equal(t, 4.0, updated.Reps)
	assert.Equal(t, 9, updated.Exertion)
	assert.True(t, at.Equal(updated.CreatedAt))

	missingID := "8a3c1f1e-0f51-4c43-9a3c-9e7b7f8a2d11"
	_, err = s.UpdateHistory(ctx, missingID, workout.HistoryUpdate{Weight: 1, Reps: 1, Exertion: 1})
	assert.ErrorIs(t, err, workout.ErrHistoryNotFound)
	_, err = s.GetHistory(ctx, missingID)
	assert.ErrorIs(t, err, workout.ErrHistoryNotFound)

	require.NoError(t, s.DeleteHistory(ctx, h.ID))
	assert.ErrorIs(t, s.DeleteHistory(ctx, h.ID), workout.ErrHistoryNotFound)
	_, err = s.GetHistory(ctx, h.ID)
	assert.ErrorIs(t, err, workout.ErrHistoryNotFound)
}

func testListFilters(t *testing.T, s store) {
	ctx := context.Background()
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	mustAddExercise(t, s, "Squat")
	mustAddExercise(t, s, "Row")

	lateMarch1 := time.Date(2024, 3, 1, 23, 59, 0, 0, berlin)
	earlyMarch2 := time.Date(2024, 3, 2, 0, 1, 0, 0, berlin)
	noonMarch2 := time.Date(2024, 3, 2, 12, 0, 0, 0, berlin)
	march5 := time.Date(2024, 3, 5, 9, 0, 0, 0, berlin)

	mustAddHistory(t, s, "Squat", 100, 5, lateMarch1)
	mustAddHistory(t, s, "Squat", 105, 5, earlyMarch2)
	mustAddHistory(t, s, "Row", 60, 10, noonMarch2)
	mustAddHistory(t, s, "Row", 65, 8, march5)

	all, err := s.ListHistory(ctx, workout.HistoryParams{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.True(t, march5.Equal(all[0].CreatedAt), "default order is newest first")
	assert.True(t, lateMarch1.Equal(all[3].CreatedAt))

	asc, err := s.ListHistory(ctx, workout.HistoryParams{Order: workout.OrderAsc})
	require.NoError(t, err)
	require.Len(t, asc, 4)
	assert.True(t, lateMarch1.Equal(asc[0].CreatedAt))

	day := workout.DayRangeOf(noonMarch2, berlin)
	onDay, err := s.ListHistory(ctx, workout.HistoryParams{Range: &day})
	require.NoError(t, err)
	require.Len(t, onDay, 2)
	assert.Equal(t, "Row", onDay[0].ExerciseName)
	assert.Equal(t, "Squat", onDay[1].ExerciseName)
	assert.True(t, earlyMarch2.Equal(onDay[1].CreatedAt))

	count, err := s.CountHistory(ctx, workout.HistoryParams{Range: &day})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	squats, err := s.ListHistory(ctx, workout.HistoryParams{ExerciseName: "Squat"})
	require.NoError(t, err)
	require.Len(t, squats, 2)
	for _, h := range squats {
		assert.Equal(t, "Squat", h.ExerciseName)
	}

	since := time.Date(2024, 3, 2, 0, 0, 0, 0, berlin)
	rows, err := s.ListHistory(ctx, workout.HistoryParams{ExerciseName: "Row", Since: &since, Order: workout.OrderAsc})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, noonMarch2.Equal(rows[0].CreatedAt))

	count, err = s.CountHistory(ctx, workout.HistoryParams{Since: &since})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	empty := workout.DayRangeOf(time.Date(2024, 4, 1, 12, 0, 0, 0, berlin), berlin)
	none, err := s.ListHistory(ctx, workout.HistoryParams{Range: &empty})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testRenameCascade(t *testing.T, s store) {
	ctx := context.Background()
	mustAddExercise(t, s, "Squat")
	mustAddExercise(t, s, "Row")

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		mustAddHistory(t, s, "Squat", gofakeit.Float64Range(20, 200), float64(gofakeit.IntRange(1, 12)), base.Add(time.Duration(i)*time.Hour))
	}
	mustAddHistory(t, s, "Row", 50, 10, base)

	require.NoError(t, s.RenameExercise(ctx, "Squat", "Back Squat"))

	_, err := s.GetExercise(ctx, "Squat")
	assert.ErrorIs(t, err, workout.ErrExerciseNotFound)
	_, err = s.GetExercise(ctx, "Back Squat")
	require.NoError(t, err)

	old, err := s.ListHistory(ctx, workout.HistoryParams{ExerciseName: "Squat"})
	require.NoError(t, err)
	assert.Empty(t, old)

	renamed, err := s.ListHistory(ctx, workout.HistoryParams{ExerciseName: "Back Squat"})
	require.NoError(t, err)
	assert.Len(t, renamed, 5)

	rows, err := s.ListHistory(ctx, workout.HistoryParams{ExerciseName: "Row"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func testDeleteCascade(t *testing.T, s store) {
	ctx := context.Background()
	mustAddExercise(t, s, "Squat")
	mustAddExercise(t, s, "Row")

	now := time.Now()
	mustAddHistory(t, s, "Squat", 100, 5, now)
	mustAddHistory(t, s, "Squat", 100, 5, now.Add(time.Minute))
	mustAddHistory(t, s, "Row", 50, 10, now)

	require.NoError(t, s.DeleteExercise(ctx, "Squat"))

	squats, err := s.ListHistory(ctx, workout.HistoryParams{ExerciseName: "Squat"})
	require.NoError(t, err)
	assert.Empty(t, squats)

	all, err := s.ListHistory(ctx, workout.HistoryParams{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Row", all[0].ExerciseName)

	exercises, err := s.ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Row", exercises[0].Name)
}

func testOnboarding(t *testing.T, s store) {
	ctx := context.Background()

	_, err := s.LatestOnboarding(ctx, "user-1")
	assert.ErrorIs(t, err, workout.ErrOnboardingNotFound)

	first := workout.OnboardingData{
		UserID:          "user-1",
		TrainingLevel:   "beginner",
		Goals:           []string{"strength"},
		WeeklyFrequency: 3,
		Equipment:       []string{"barbell", "rack"},
		Intensity:       "moderate",
		Completed:       true,
		CreatedAt:       time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	saved, err := s.SaveOnboarding(ctx, first)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	second := first
	second.TrainingLevel = "intermediate"
	second.Goals = []string{"strength", "hypertrophy"}
	second.CreatedAt = first.CreatedAt.Add(24 * time.Hour)
	_, err = s.SaveOnboarding(ctx, second)
	require.NoError(t, err)

	draft := first
	draft.TrainingLevel = "advanced"
	draft.Completed = false
	draft.CreatedAt = first.CreatedAt.Add(48 * time.Hour)
	_, err = s.SaveOnboarding(ctx, draft)
	require.NoError(t, err)

	latest, err := s.LatestOnboarding(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "intermediate", latest.TrainingLevel)
	assert.Equal(t, []string{"strength", "hypertrophy"}, latest.Goals)
	assert.Equal(t, []string{"barbell", "rack"}, latest.Equipment)
	assert.True(t, latest.Completed)

	// same id overwrites
	saved.WeeklyFrequency = 5
	saved.CreatedAt = first.CreatedAt.Add(72 * time.Hour)
	_, err = s.SaveOnboarding(ctx, *saved)
	require.NoError(t, err)
	latest, err = s.LatestOnboarding(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, latest.ID)
	assert.Equal(t, 5, latest.WeeklyFrequency)

	_, err = s.LatestOnboarding(ctx, "user-2")
	assert.ErrorIs(t, err, workout.ErrOnboardingNotFound)
}
