package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/remotesync"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=onboarding_test

type onboardingRepo interface {
	SaveOnboarding(ctx context.Context, data workout.OnboardingData) (*workout.OnboardingData, error)
	LatestOnboarding(ctx context.Context, userID string) (*workout.OnboardingData, error)
}

type remoteSync interface {
	SaveOnboarding(ctx context.Context, data workout.OnboardingData) error
	GetOnboarding(ctx context.Context, documentKey string) (*workout.OnboardingData, error)
}

type Service struct {
	repo     onboardingRepo
	remote   remoteSync
	validate *validator.Validate
	nowFunc  func() time.Time
}

func NewService(repo onboardingRepo, remote remoteSync) *Service {
	return &Service{
		repo:     repo,
		remote:   remote,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		nowFunc:  time.Now,
	}
}

// Submit stores the answers locally, then mirrors them remotely.
//
// The session is checked before anything else: without one, nothing is
// written anywhere. A failed remote write is returned (wrapping
// remotesync.ErrRemoteWrite) together with the locally saved data.
func (s *Service) Submit(ctx context.Context, data workout.OnboardingData) (_ *workout.OnboardingData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "onboarding.submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := auth.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", session.UserID))

	data.UserID = session.UserID
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = s.nowFunc()
	}

	if err := s.validate.Struct(data); err != nil {
		return nil, fmt.Errorf("%w: %s", workout.ErrInvalidInput, err)
	}

	saved, err := s.repo.SaveOnboarding(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("save onboarding locally: %w", err)
	}

	if err := s.remote.SaveOnboarding(ctx, *saved); err != nil {
		if errors.Is(err, remotesync.ErrSyncDisabled) {
			log.Debugf("onboarding [%s] saved locally only, remote sync disabled", saved.ID)
			return saved, nil
		}
		return saved, err
	}

	log.Debugf("onboarding [%s] of user [%s] saved", saved.ID, saved.UserID)
	return saved, nil
}

// Current returns the newest completed answers of the session user. When
// nothing is stored locally (e.g. a fresh install), the remote copy is
// restored into the local store.
func (s *Service) Current(ctx context.Context) (_ *workout.OnboardingData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "onboarding.current")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := auth.RequireSession(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.repo.LatestOnboarding(ctx, session.UserID)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, workout.ErrOnboardingNotFound) {
		return nil, err
	}

	remoteData, err := s.remote.GetOnboarding(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, remotesync.ErrDocumentNotFound) && !errors.Is(err, remotesync.ErrSyncDisabled) {
			log.Errorf("onboarding, get remote copy for [%s]: %s", session.UserID, err)
		}
		return nil, workout.ErrOnboardingNotFound
	}
	if !remoteData.Completed {
		return nil, workout.ErrOnboardingNotFound
	}

	restored, err := s.repo.SaveOnboarding(ctx, *remoteData)
	if err != nil {
		log.Errorf("onboarding, restore remote copy for [%s]: %s", session.UserID, err)
		return remoteData, nil
	}
	span.SetAttributes(attribute.Bool("restored", true))
	return restored, nil
}
