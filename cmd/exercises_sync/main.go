package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/logging"
	"github.com/2beens/liftlog/internal/remotesync"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/workout"
	"github.com/2beens/liftlog/internal/workout/repo"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// exercises sync cmd: mirrors the local exercise list of a user to firestore,
// used as a backfill after turning remote sync on

type exerciseLister interface {
	ListExercises(ctx context.Context) ([]workout.Exercise, error)
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("envfile", ".env", "optional .env file with secrets")
	userID := flag.String("user", "", "user to sync the exercises for (defaults to LIFTLOG_USER_ID)")
	dryRun := flag.Bool("dry-run", false, "only list what would be synced")
	timeout := flag.Duration("timeout", 2*time.Minute, "max duration of the whole sync")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Debugf("no env file loaded from [%s]: %s", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		log.Fatalf("load secrets: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	if *userID == "" {
		*userID = secrets.UserID
	}
	if *userID == "" {
		log.Fatalln("user not specified, use -user or LIFTLOG_USER_ID")
	}

	synced, err := run(ctx, cfg, secrets, *userID, *dryRun)
	if err != nil {
		log.Fatalf("exercises sync: %s (synced %d before failing)", err, synced)
	}
	log.Infof("exercises sync done, %d exercises synced for user [%s]", synced, *userID)
}

func run(ctx context.Context, cfg *config.Config, secrets *config.Secrets, userID string, dryRun bool) (int, error) {
	store, closeStore, err := openStore(ctx, cfg, secrets)
	if err != nil {
		return 0, err
	}
	defer closeStore()

	exercises, err := store.ListExercises(ctx)
	if err != nil {
		return 0, fmt.Errorf("list local exercises: %w", err)
	}
	log.Infof("found %d local exercises", len(exercises))

	if dryRun {
		for _, e := range exercises {
			log.Infof("[dry-run] would sync: %s", e.Name)
		}
		return 0, nil
	}

	if !cfg.RemoteSyncEnabled {
		return 0, remotesync.ErrSyncDisabled
	}

	firestoreStore, err := remotesync.NewFirestoreStore(ctx, remotesync.FirestoreParams{
		ProjectID:       cfg.FirestoreProjectID,
		CredentialsFile: secrets.FirestoreCredentialsFile,
		EmulatorHost:    cfg.FirestoreEmulatorHost,
	})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := firestoreStore.Close(); err != nil {
			log.Errorf("close firestore client: %s", err)
		}
	}()

	metricsManager := metrics.NewManager("liftlog", "exercises_sync", prometheus.NewRegistry())
	syncService := remotesync.NewService(firestoreStore, metricsManager)

	ctx = auth.WithSession(ctx, &auth.Session{
		Token:     "exercises-sync",
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	return syncService.SyncExercises(ctx, exercises)
}

func openStore(ctx context.Context, cfg *config.Config, secrets *config.Secrets) (exerciseLister, func(), error) {
	if cfg.StoreDriver == config.StorePostgres {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: secrets.PostgresPassword,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("new db pool: %w", err)
		}
		return repo.NewPsqlRepo(dbPool), dbPool.Close, nil
	}

	gormDB, err := db.OpenSqlite(cfg.SqlitePath, false)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	closeFn := func() {
		if err := db.CloseSqlite(gormDB); err != nil {
			log.Errorf("close sqlite: %s", err)
		}
	}
	return repo.NewGormRepo(gormDB), closeFn, nil
}
