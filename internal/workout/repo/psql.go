package repo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

//go:embed schema.sql
var schemaSQL string

const historyColumns = `id, exercise_name, weight, reps, exertion, created_at`

// PsqlRepo keeps the workout log in postgres.
type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *PsqlRepo) AddExercise(ctx context.Context, exercise workout.Exercise) (_ *workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.add_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", exercise.Name))

	exercise.CreatedAt = storedTime(exercise.CreatedAt)
	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO exercise (name, created_at) VALUES ($1, $2);`,
		exercise.Name, exercise.CreatedAt,
	); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, workout.ErrExerciseExists
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	return &exercise, nil
}

func (r *PsqlRepo) ListExercises(ctx context.Context) (_ []workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.list_exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT name, created_at FROM exercise ORDER BY name ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []workout.Exercise
	for rows.Next() {
		var e workout.Exercise
		if err := rows.Scan(&e.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))
	return exercises, nil
}

func (r *PsqlRepo) GetExercise(ctx context.Context, name string) (_ *workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.get_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	return getExercise(ctx, r.db, name)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getExercise(ctx context.Context, q querier, name string) (*workout.Exercise, error) {
	var e workout.Exercise
	if err := q.QueryRow(
		ctx,
		`SELECT name, created_at FROM exercise WHERE name = $1;`,
		name,
	).Scan(&e.Name, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workout.ErrExerciseNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *PsqlRepo) RenameExercise(ctx context.Context, from, to string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.rename_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		old, err := getExercise(ctx, tx, from)
		if err != nil {
			return err
		}
		if from == to {
			return nil
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO exercise (name, created_at) VALUES ($1, $2);`,
			to, old.CreatedAt,
		); err != nil {
			if pkg.IsUniqueViolationError(err) {
				return workout.ErrExerciseExists
			}
			return fmt.Errorf("insert renamed exercise: %w", err)
		}

		tag, err := tx.Exec(
			ctx,
			`UPDATE exercise_history SET exercise_name = $1 WHERE exercise_name = $2;`,
			to, from,
		)
		if err != nil {
			return fmt.Errorf("rename histories: %w", err)
		}
		span.SetAttributes(attribute.Int64("histories.renamed", tag.RowsAffected()))

		if _, err := tx.Exec(ctx, `DELETE FROM exercise WHERE name = $1;`, from); err != nil {
			return fmt.Errorf("delete old exercise: %w", err)
		}
		return nil
	})
}

func (r *PsqlRepo) DeleteExercise(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.delete_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM exercise_history WHERE exercise_name = $1;`, name)
		if err != nil {
			return fmt.Errorf("delete histories: %w", err)
		}
		span.SetAttributes(attribute.Int64("histories.deleted", tag.RowsAffected()))

		tag, err = tx.Exec(ctx, `DELETE FROM exercise WHERE name = $1;`, name)
		if err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return workout.ErrExerciseNotFound
		}
		return nil
	})
}

func (r *PsqlRepo) AddHistory(ctx context.Context, history workout.History) (_ *workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.add_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", history.ExerciseName))

	history.ID = uuid.NewString()
	history.CreatedAt = storedTime(history.CreatedAt)

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO exercise_history (`+historyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6);`,
		history.ID, history.ExerciseName, history.Weight, history.Reps, history.Exertion, history.CreatedAt,
	); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, workout.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("insert history: %w", err)
	}

	span.SetAttributes(attribute.String("history.id", history.ID))
	return &history, nil
}

func (r *PsqlRepo) GetHistory(ctx context.Context, id string) (_ *workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.get_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("history.id", id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, workout.ErrHistoryNotFound
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+historyColumns+` FROM exercise_history WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories, err := rows2histories(rows)
	if err != nil {
		return nil, err
	}
	if len(histories) != 1 {
		return nil, workout.ErrHistoryNotFound
	}
	return &histories[0], nil
}

func (r *PsqlRepo) UpdateHistory(ctx context.Context, id string, update workout.HistoryUpdate) (_ *workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.update_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("history.id", id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, workout.ErrHistoryNotFound
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercise_history SET weight = $1, reps = $2, exertion = $3 WHERE id = $4;`,
		update.Weight, update.Reps, update.Exertion, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, workout.ErrHistoryNotFound
	}

	return r.GetHistory(ctx, id)
}

func (r *PsqlRepo) DeleteHistory(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.delete_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("history.id", id))

	if _, err := uuid.Parse(id); err != nil {
		return workout.ErrHistoryNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise_history WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrHistoryNotFound
	}
	return nil
}

const historyFilter = `
	WHERE ($1::text = '' OR exercise_name = $1)
	AND ($2::timestamptz IS NULL OR created_at >= $2)
	AND ($3::timestamptz IS NULL OR created_at < $3)
	AND ($4::timestamptz IS NULL OR created_at >= $4)`

func historyFilterArgs(params workout.HistoryParams) []any {
	var start, end, since *time.Time
	if params.Range != nil {
		start, end = &params.Range.Start, &params.Range.End
	}
	if params.Since != nil {
		since = params.Since
	}
	return []any{params.ExerciseName, start, end, since}
}

func (r *PsqlRepo) ListHistory(ctx context.Context, params workout.HistoryParams) (_ []workout.History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.list_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	setParamsAttributes(span, params)

	order := "DESC"
	if params.Order == workout.OrderAsc {
		order = "ASC"
	}

	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(
			`SELECT %s FROM exercise_history %s ORDER BY created_at %s, id %s;`,
			historyColumns, historyFilter, order, order,
		),
		historyFilterArgs(params)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories, err := rows2histories(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("histories.count", len(histories)))
	return histories, nil
}

func (r *PsqlRepo) CountHistory(ctx context.Context, params workout.HistoryParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.count_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	setParamsAttributes(span, params)

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM exercise_history `+historyFilter+`;`,
		historyFilterArgs(params)...,
	).Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

func rows2histories(rows pgx.Rows) ([]workout.History, error) {
	var histories []workout.History
	for rows.Next() {
		var h workout.History
		if err := rows.Scan(&h.ID, &h.ExerciseName, &h.Weight, &h.Reps, &h.Exertion, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *PsqlRepo) SaveOnboarding(ctx context.Context, data workout.OnboardingData) (_ *workout.OnboardingData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.save_onboarding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", data.UserID))

	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	data.CreatedAt = storedTime(data.CreatedAt)

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO onboarding
				(id, user_id, training_level, goals, weekly_frequency, equipment,
				 focus_areas, intensity, has_injury, preferred_styles, completed, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				user_id = EXCLUDED.user_id,
				training_level = EXCLUDED.training_level,
				goals = EXCLUDED.goals,
				weekly_frequency = EXCLUDED.weekly_frequency,
				equipment = EXCLUDED.equipment,
				focus_areas = EXCLUDED.focus_areas,
				intensity = EXCLUDED.intensity,
				has_injury = EXCLUDED.has_injury,
				preferred_styles = EXCLUDED.preferred_styles,
				completed = EXCLUDED.completed,
				created_at = EXCLUDED.created_at;`,
		data.ID, data.UserID, data.TrainingLevel, data.Goals, data.WeeklyFrequency, data.Equipment,
		data.FocusAreas, data.Intensity, data.HasInjury, data.PreferredStyles, data.Completed, data.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("save onboarding: %w", err)
	}

	return &data, nil
}

func (r *PsqlRepo) LatestOnboarding(ctx context.Context, userID string) (_ *workout.OnboardingData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.psql.latest_onboarding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var d workout.OnboardingData
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, training_level, goals, weekly_frequency, equipment,
				focus_areas, intensity, has_injury, preferred_styles, completed, created_at
			FROM onboarding
			WHERE user_id = $1 AND completed
			ORDER BY created_at DESC
			LIMIT 1;`,
		userID,
	).Scan(
		&d.ID, &d.UserID, &d.TrainingLevel, &d.Goals, &d.WeeklyFrequency, &d.Equipment,
		&d.FocusAreas, &d.Intensity, &d.HasInjury, &d.PreferredStyles, &d.Completed, &d.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workout.ErrOnboardingNotFound
		}
		return nil, err
	}
	return &d, nil
}
