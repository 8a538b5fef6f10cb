package remotesync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=service.go -destination=service_mocks_test.go -package=remotesync_test

var (
	ErrDocumentNotFound = errors.New("remote document not found")
	ErrRemoteWrite      = errors.New("remote write failed")
	ErrSyncDisabled     = errors.New("remote sync disabled")
)

const (
	onboardingCollection = "onboarding"
	usersCollection      = "users"
	exercisesCollection  = "exercises"

	kindOnboarding = "onboarding"
	kindExercise   = "exercise"
)

type documentStore interface {
	SetMerge(ctx context.Context, path string, fields map[string]interface{}) error
	Get(ctx context.Context, path string, dst interface{}) error
	Delete(ctx context.Context, path string) error
}

// Service mirrors onboarding answers and the exercise list of the logged-in
// user to the remote document store. Writes are upserts with merge, last
// write wins, nothing is retried.
type Service struct {
	store          documentStore
	metricsManager *metrics.Manager
}

func NewService(store documentStore, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		metricsManager: metricsManager,
	}
}

// NewDisabledService returns a Service whose operations fail with ErrSyncDisabled.
func NewDisabledService(metricsManager *metrics.Manager) *Service {
	return &Service{
		metricsManager: metricsManager,
	}
}

func (s *Service) Enabled() bool {
	return s.store != nil
}

func OnboardingPath(userID string) string {
	return onboardingCollection + "/" + userID
}

func ExercisePath(userID, exerciseName string) string {
	return strings.Join([]string{usersCollection, userID, exercisesCollection, exerciseName}, "/")
}

// userID resolves the session user. The auth check comes first, so an
// unauthenticated call fails the same way whether sync is enabled or not.
func (s *Service) userID(ctx context.Context) (string, error) {
	session, err := auth.RequireSession(ctx)
	if err != nil {
		return "", err
	}
	if !s.Enabled() {
		return "", ErrSyncDisabled
	}
	return session.UserID, nil
}

func (s *Service) write(ctx context.Context, kind, path string, fields map[string]interface{}) error {
	if err := s.store.SetMerge(ctx, path, fields); err != nil {
		s.metricsManager.CounterRemoteSyncFailures.WithLabelValues(kind).Inc()
		log.Errorf("remote sync, write %s [%s]: %s", kind, path, err)
		return fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}
	return nil
}

// SaveOnboarding writes the answers to onboarding/{uid} with merge.
func (s *Service) SaveOnboarding(ctx context.Context, data workout.OnboardingData) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteSync.saveOnboarding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("user.id", userID))

	data.UserID = userID
	return s.write(ctx, kindOnboarding, OnboardingPath(userID), data.Fields())
}

// GetOnboarding reads the onboarding document stored under documentKey.
func (s *Service) GetOnboarding(ctx context.Context, documentKey string) (_ *workout.OnboardingData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteSync.getOnboarding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("document.key", documentKey))

	if _, err := s.userID(ctx); err != nil {
		return nil, err
	}

	var data workout.OnboardingData
	if err := s.store.Get(ctx, OnboardingPath(documentKey), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func exerciseFields(exercise workout.Exercise) map[string]interface{} {
	return map[string]interface{}{
		"name":      exercise.Name,
		"createdAt": exercise.CreatedAt,
		"syncedAt":  time.Now().UTC(),
	}
}

// MirrorExercise upserts users/{uid}/exercises/{name}.
func (s *Service) MirrorExercise(ctx context.Context, exercise workout.Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteSync.mirrorExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exercise.Name))

	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}
	return s.write(ctx, kindExercise, ExercisePath(userID, exercise.Name), exerciseFields(exercise))
}

func (s *Service) RemoveExercise(ctx context.Context, exerciseName string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteSync.removeExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exerciseName))

	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}

	path := ExercisePath(userID, exerciseName)
	if err := s.store.Delete(ctx, path); err != nil {
		s.metricsManager.CounterRemoteSyncFailures.WithLabelValues(kindExercise).Inc()
		log.Errorf("remote sync, delete exercise [%s]: %s", path, err)
		return fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}
	return nil
}

// RenameExercise writes the new document before removing the old one, so a
// failure in between leaves a duplicate rather than a gap.
func (s *Service) RenameExercise(ctx context.Context, from string, to workout.Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteSync.renameExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to.Name))

	if err := s.MirrorExercise(ctx, to); err != nil {
		return err
	}
	if from == to.Name {
		return nil
	}
	return s.RemoveExercise(ctx, from)
}

// SyncExercises mirrors every given exercise and reports how many were
// written. It stops at the first failure.
func (s *Service) SyncExercises(ctx context.Context, exercises []workout.Exercise) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "remoteSync.syncExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))

	synced := 0
	for _, e := range exercises {
		if err := s.MirrorExercise(ctx, e); err != nil {
			return synced, fmt.Errorf("sync exercise [%s]: %w", e.Name, err)
		}
		synced++
	}
	return synced, nil
}
