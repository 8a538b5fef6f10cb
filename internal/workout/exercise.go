package workout

import (
	"fmt"
	"strings"
	"time"
)

const maxExerciseNameLen = 100

// Exercise is identified by its name. Histories reference it by value.
type Exercise struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// History is one logged set of an exercise.
type History struct {
	ID           string    `json:"id"`
	ExerciseName string    `json:"exerciseName"`
	Weight       float64   `json:"weight"`
	Reps         float64   `json:"reps"`
	Exertion     int       `json:"exertion"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Volume is weight x reps of a single set.
func (h History) Volume() float64 {
	return h.Weight * h.Reps
}

// HistoryUpdate holds the fields the edit flow is allowed to change.
type HistoryUpdate struct {
	Weight   float64 `json:"weight"`
	Reps     float64 `json:"reps"`
	Exertion int     `json:"exertion"`
}

func (u HistoryUpdate) Apply(h *History) {
	h.Weight = u.Weight
	h.Reps = u.Reps
	h.Exertion = u.Exertion
}

func (u HistoryUpdate) Validate() error {
	return validateSet(u.Weight, u.Reps, u.Exertion)
}

// NormalizeExerciseName trims the name and checks it can be used as a
// natural key, both locally and as a remote document id.
func NormalizeExerciseName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: exercise name empty", ErrInvalidInput)
	}
	if len(name) > maxExerciseNameLen {
		return "", fmt.Errorf("%w: exercise name longer than %d", ErrInvalidInput, maxExerciseNameLen)
	}
	if strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: exercise name must not contain '/'", ErrInvalidInput)
	}
	return name, nil
}

func (h History) Validate() error {
	if h.ExerciseName == "" {
		return fmt.Errorf("%w: exercise name empty", ErrInvalidInput)
	}
	return validateSet(h.Weight, h.Reps, h.Exertion)
}

func validateSet(weight, reps float64, exertion int) error {
	if weight < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrInvalidInput)
	}
	if reps <= 0 {
		return fmt.Errorf("%w: reps must be positive", ErrInvalidInput)
	}
	if exertion < MinExertion || exertion > MaxExertion {
		return fmt.Errorf("%w: exertion must be in [%d, %d]", ErrInvalidInput, MinExertion, MaxExertion)
	}
	return nil
}

// RPE scale bounds
const (
	MinExertion = 1
	MaxExertion = 10
)
