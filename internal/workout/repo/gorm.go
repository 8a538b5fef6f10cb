package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type exerciseRow struct {
	Name      string    `gorm:"primaryKey;size:100"`
	CreatedAt time.Time `gorm:"not null"`
}

func (exerciseRow) TableName() string { return "exercise" }

func (r exerciseRow) toExercise() workout.Exercise {
	return workout.Exercise{
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

type historyRow struct {
	ID           string    `gorm:"primaryKey;size:36"`
	ExerciseName string    `gorm:"index;not null;size:100"`
	Weight       float64   `gorm:"not null"`
	Reps         float64   `gorm:"not null"`
	Exertion     int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"index;not null"`
}

func (historyRow) TableName() string { return "exercise_history" }

func (r historyRow) toHistory() workout.History {
	return workout.History{
		ID:           r.ID,
		ExerciseName: r.ExerciseName,
		Weight:       r.Weight,
		Reps:         r.Reps,
		Exertion:     r.Exertion,
		CreatedAt:    r.CreatedAt,
	}
}

type onboardingRow struct {
	ID              string    `gorm:"primaryKey;size:36"`
	UserID          string    `gorm:"index;not null"`
	TrainingLevel   string    `gorm:"not null"`
	Goals           []string  `gorm:"serializer:json"`
	WeeklyFrequency int       `gorm:"not null"`
	Equipment       []string  `gorm:"serializer:json"`
	FocusAreas      []string  `gorm:"serializer:json"`
	Intensity       string    `gorm:"not null"`
	HasInjury       bool      `gorm:"not null"`
	PreferredStyles []string  `gorm:"serializer:json"`
	Completed       bool      `gorm:"not null"`
	CreatedAt       time.Time `gorm:"index;not null"`
}

func (onboardingRow) TableName() string { return "onboarding" }

func newOnboardingRow(d workout.OnboardingData) onboardingRow {
	return onboardingRow{
		ID:              d.ID,
		UserID:          d.UserID,
		TrainingLevel:   d.TrainingLevel,
		Goals:           d.Goals,
		WeeklyFrequency: d.WeeklyFrequency,
		Equipment:       d.Equipment,
		FocusAreas:      d.FocusAreas,
		Intensity:       d.Intensity,
		HasInjury:       d.HasInjury,
		PreferredStyles: d.PreferredStyles,
		Completed:       d.Completed,
		CreatedAt:       d.CreatedAt,
	}
}

func (r onboardingRow) toData() workout.OnboardingData {
	return workout.OnboardingData{
		ID:              r.ID,
		UserID:          r.UserID,
		TrainingLevel:   r.TrainingLevel,
		Goals:           r.Goals,
		WeeklyFrequency: r.WeeklyFrequency,
		Equipment:       r.Equipment,
		FocusAreas:      r.FocusAreas,
		Intensity:       r.Intensity,
		HasInjury:       r.HasInjury,
		PreferredStyles: r.PreferredStyles,
		Completed:       r.Completed,
		CreatedAt:       r.CreatedAt,
	}
}

// GormRepo keeps the workout log in an embedded sqlite database.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{
		db: db,
	}
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&exerciseRow{}, &historyRow{}, &onboardingRow{})
}

func (r *GormRepo) AddExercise(ctx context.Context, exercise workout.Exercise) (_ *workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.add_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exercise.Name))

	row := exerciseRow{
		Name:      exercise.Name,
		CreatedAt: storedTime(exercise.CreatedAt),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, workout.ErrExerciseExists
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	added := row.toExercise()
	return &added, nil
}

func (r *GormRepo) ListExercises(ctx context.Context) (_ []workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.list_exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var rows []exerciseRow
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	exercises := make([]workout.Exercise, 0, len(rows))
	for _, row := range rows {
		exercises = append(exercises, row.toExercise())
	}
	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))
	return exercises, nil
}

func (r *GormRepo) GetExercise(ctx context.Context, name string) (_ *workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.get_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	row, err := getExerciseRow(r.db.WithContext(ctx), name)
	if err != nil {
		return nil, err
	}
	exercise := row.toExercise()
	return &exercise, nil
}

func getExerciseRow(tx *gorm.DB, name string) (*exerciseRow, error) {
	var row exerciseRow
	if err := tx.Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workout.ErrExerciseNotFound
		}
		return nil, err
	}
	return &row, nil
}

// RenameExercise moves the exercise and all of its histories to the new name.
func (r *GormRepo) RenameExercise(ctx context.Context, from, to string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.rename_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		old, err := getExerciseRow(tx, from)
		if err != nil {
			return err
		}
		if from == to {
			return nil
		}

		renamed := exerciseRow{Name: to, CreatedAt: old.CreatedAt}
		if err := tx.Create(&renamed).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return workout.ErrExerciseExists
			}
			return fmt.Errorf("insert renamed exercise: %w", err)
		}

		res := tx.Model(&historyRow{}).Where("exercise_name = ?", from).Update("exercise_name", to)
		if res.Error != nil {
			return fmt.Errorf("rename histories: %w", res.Error)
		}
		span.SetAttributes(attribute.Int64("histories.renamed", res.RowsAffected))

		if err := tx.Where("name = ?", from).Delete(&exerciseRow{}).Error; err != nil {
			return fmt.Errorf("delete old exercise: %w", err)
		}
		return nil
	})
}

// DeleteExercise removes the exercise together with all of its histories.
func (r *GormRepo) DeleteExercise(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.delete_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("exercise_name = ?", name).Delete(&historyRow{})
		if res.Error != nil {
			return fmt.Errorf("delete histories: %w", res.Error)
		}
		span.SetAttributes(attribute.Int64("histories.deleted", res.RowsAffected))

		res = tx.Where("name = ?", name).Delete(&exerciseRow{})
		if res.Error != nil {
			return fmt.Errorf("delete exercise: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return workout.ErrExerciseNotFound
		}
		return nil
	})
}

func (r *GormRepo) AddHistory(ctx context.Context, history workout.History) (_ *workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.add_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", history.ExerciseName))

	row := historyRow{
		ID:           uuid.NewString(),
		ExerciseName: history.ExerciseName,
		Weight:       history.Weight,
		Reps:         history.Reps,
		Exertion:     history.Exertion,
		CreatedAt:    storedTime(history.CreatedAt),
	}

	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getExerciseRow(tx, history.ExerciseName); err != nil {
			return err
		}
		return tx.Create(&row).Error
	}); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("history.id", row.ID))
	added := row.toHistory()
	return &added, nil
}

func (r *GormRepo) GetHistory(ctx context.Context, id string) (_ *workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.get_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("history.id", id))

	var row historyRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workout.ErrHistoryNotFound
		}
		return nil, err
	}

	history := row.toHistory()
	return &history, nil
}

func (r *GormRepo) UpdateHistory(ctx context.Context, id string, update workout.HistoryUpdate) (_ *workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.update_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("history.id", id))

	res := r.db.WithContext(ctx).Model(&historyRow{}).Where("id = ?", id).Updates(map[string]interface{}{
		"weight":   update.Weight,
		"reps":     update.Reps,
		"exertion": update.Exertion,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update history: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, workout.ErrHistoryNotFound
	}

	return r.GetHistory(ctx, id)
}

func (r *GormRepo) DeleteHistory(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.delete_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("history.id", id))

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&historyRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return workout.ErrHistoryNotFound
	}
	return nil
}

func (r *GormRepo) ListHistory(ctx context.Context, params workout.HistoryParams) (_ []workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.list_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	setParamsAttributes(span, params)

	order := "created_at DESC, id DESC"
	if params.Order == workout.OrderAsc {
		order = "created_at ASC, id ASC"
	}

	var rows []historyRow
	if err := historyQuery(r.db.WithContext(ctx), params).Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}

	histories := make([]workout.History, 0, len(rows))
	for _, row := range rows {
		histories = append(histories, row.toHistory())
	}
	span.SetAttributes(attribute.Int("histories.count", len(histories)))
	return histories, nil
}

func (r *GormRepo) CountHistory(ctx context.Context, params workout.HistoryParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.count_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	setParamsAttributes(span, params)

	var count int64
	if err := historyQuery(r.db.WithContext(ctx), params).Count(&count).Error; err != nil {
		return -1, err
	}
	return int(count), nil
}

func historyQuery(tx *gorm.DB, params workout.HistoryParams) *gorm.DB {
	q := tx.Model(&historyRow{})
	if params.ExerciseName != "" {
		q = q.Where("exercise_name = ?", params.ExerciseName)
	}
	if params.Range != nil {
		q = q.Where("created_at >= ? AND created_at < ?", params.Range.Start.UTC(), params.Range.End.UTC())
	}
	if params.Since != nil {
		q = q.Where("created_at >= ?", params.Since.UTC())
	}
	return q
}

func (r *GormRepo) SaveOnboarding(ctx context.Context, data workout.OnboardingData) (_ *workout.OnboardingData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.save_onboarding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", data.UserID))

	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	data.CreatedAt = storedTime(data.CreatedAt)

	row := newOnboardingRow(data)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, fmt.Errorf("save onboarding: %w", err)
	}

	saved := row.toData()
	return &saved, nil
}

func (r *GormRepo) LatestOnboarding(ctx context.Context, userID string) (_ *workout.OnboardingData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gorm.latest_onboarding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var row onboardingRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, true).
		Order("created_at DESC").
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workout.ErrOnboardingNotFound
		}
		return nil, err
	}

	data := row.toData()
	return &data, nil
}
