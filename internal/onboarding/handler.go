package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/remotesync"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"
	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=onboarding_test

type onboardingService interface {
	Submit(ctx context.Context, data workout.OnboardingData) (*workout.OnboardingData, error)
	Current(ctx context.Context) (*workout.OnboardingData, error)
}

type Handler struct {
	service onboardingService
}

func NewHandler(service onboardingService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.onboarding.submit")
	defer span.End()

	var data workout.OnboardingData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		log.Tracef("onboarding submit, unmarshal json: %s", err)
		http.Error(w, "invalid onboarding data", http.StatusBadRequest)
		return
	}

	saved, err := handler.service.Submit(ctx, data)
	switch {
	case err == nil:
		pkg.WriteJSONResponse(w, http.StatusCreated, saved)
	case errors.Is(err, auth.ErrAuthRequired):
		http.Error(w, "login required", http.StatusUnauthorized)
	case errors.Is(err, workout.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, remotesync.ErrRemoteWrite):
		// saved locally, but the user has to know the answers did not reach the cloud
		log.Errorf("onboarding submit, remote write: %s", err)
		http.Error(w, "onboarding saved on this device, but could not be synced: please try again", http.StatusBadGateway)
	default:
		log.Errorf("onboarding submit: %s", err)
		http.Error(w, "failed to save onboarding", http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.onboarding.get")
	defer span.End()

	data, err := handler.service.Current(ctx)
	switch {
	case err == nil:
		pkg.WriteJSONResponse(w, http.StatusOK, data)
	case errors.Is(err, auth.ErrAuthRequired):
		http.Error(w, "login required", http.StatusUnauthorized)
	case errors.Is(err, workout.ErrOnboardingNotFound):
		http.Error(w, "onboarding not completed", http.StatusNotFound)
	default:
		log.Errorf("onboarding get: %s", err)
		http.Error(w, "failed to get onboarding", http.StatusInternalServerError)
	}
}
