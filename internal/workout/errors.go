package workout

import "errors"

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise already exists")
	ErrHistoryNotFound  = errors.New("exercise history not found")
	ErrInvalidRange     = errors.New("invalid day range")
	ErrInvalidInput     = errors.New("invalid input")

	ErrOnboardingNotFound = errors.New("onboarding data not found")
)
