package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/misc"
	"github.com/2beens/liftlog/internal/onboarding"
	"github.com/2beens/liftlog/internal/remotesync"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout/cache"
	"github.com/2beens/liftlog/internal/workout/exercises"
	"github.com/2beens/liftlog/internal/workout/logbook"
	"github.com/2beens/liftlog/internal/workout/repo"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config

	// exactly one of them is set, depending on the store driver
	dbPool *pgxpool.Pool
	gormDB *gorm.DB

	workoutRepo    *cache.CachedRepo
	remoteSync     *remotesync.Service
	firestoreStore *remotesync.FirestoreStore

	redisClient  *redis.Client
	rateLimiter  middleware.RequestRateLimiter
	loginChecker auth.Checker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     *config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (_ *Server, err error) {
	cfg := params.Config
	secrets := params.Secrets

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(secrets.HoneycombEnabled, "liftlog")
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		otelShutdown: otelShutdown,
	}
	defer func() {
		if err != nil {
			if closeErr := s.closeResources(); closeErr != nil {
				log.Errorf("new server cleanup: %s", closeErr)
			}
		}
	}()

	var promCollectors []prometheus.Collector
	switch cfg.StoreDriver {
	case config.StorePostgres:
		s.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     secrets.PostgresPassword,
			MaxConns:       cfg.PostgresMaxConns,
			TracingEnabled: secrets.HoneycombEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := s.dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		promCollectors = append(promCollectors, pgxpoolprometheus.NewCollector(
			s.dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	default:
		s.gormDB, err = db.OpenSqlite(cfg.SqlitePath, cfg.LogLevel == "trace")
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	}

	s.promRegistry = metrics.SetupPrometheus(promCollectors...)
	s.metricsManager = metrics.NewManager("liftlog", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	historyCache := cache.NewHistoryCache(cfg.HistoryCacheSizeMB)
	if s.dbPool != nil {
		psqlRepo := repo.NewPsqlRepo(s.dbPool)
		if err := psqlRepo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate postgres store: %w", err)
		}
		s.workoutRepo = cache.NewCachedRepo(psqlRepo, historyCache, s.metricsManager)
	} else {
		gormRepo := repo.NewGormRepo(s.gormDB)
		if err := gormRepo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate sqlite store: %w", err)
		}
		s.workoutRepo = cache.NewCachedRepo(gormRepo, historyCache, s.metricsManager)
	}

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0, // use default DB
	})
	if secrets.HoneycombEnabled {
		s.redisClient.AddHook(redisotel.NewTracingHook())
	}
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	}

	s.rateLimiter = redis_rate.NewLimiter(s.redisClient)
	s.loginChecker = auth.NewLoginChecker(auth.DefaultTTL, s.redisClient)
	s.authService = auth.NewAuthService(&auth.User{
		ID:           secrets.UserID,
		PasswordHash: secrets.PasswordHash,
	}, auth.DefaultTTL, s.redisClient)
	go func() {
		ticker := time.NewTicker(8 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.authService.ScanAndClean(ctx)
			}
		}
	}()

	if cfg.RemoteSyncEnabled {
		s.firestoreStore, err = remotesync.NewFirestoreStore(ctx, remotesync.FirestoreParams{
			ProjectID:       cfg.FirestoreProjectID,
			CredentialsFile: secrets.FirestoreCredentialsFile,
			EmulatorHost:    cfg.FirestoreEmulatorHost,
		})
		if err != nil {
			return nil, fmt.Errorf("new firestore store: %w", err)
		}
		s.remoteSync = remotesync.NewService(s.firestoreStore, s.metricsManager)
	} else {
		log.Warnln("remote sync disabled, onboarding answers and exercises stay local")
		s.remoteSync = remotesync.NewDisabledService(s.metricsManager)
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	loc, err := s.config.Location()
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("liftlog-router"))

	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, s.rateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	exercisesHandler := exercises.NewHandler(s.workoutRepo, s.remoteSync, s.metricsManager, loc)
	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{name}", exercisesHandler.HandleRename).Methods("PUT", "OPTIONS").Name("rename-exercise")
	r.HandleFunc("/exercises/{name}", exercisesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	r.HandleFunc("/exercises/{name}/sets", exercisesHandler.HandleAddSet).Methods("POST", "OPTIONS").Name("new-set")
	r.HandleFunc("/exercises/{name}/sets", exercisesHandler.HandleListSets).Methods("GET", "OPTIONS").Name("list-sets")
	r.HandleFunc("/sets/{id}", exercisesHandler.HandleUpdateSet).Methods("PUT", "OPTIONS").Name("update-set")
	r.HandleFunc("/sets/{id}", exercisesHandler.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")

	logbookHandler := logbook.NewHandler(logbook.NewService(s.workoutRepo, s.metricsManager, loc))
	r.HandleFunc("/logbook/today", logbookHandler.HandleToday).Methods("GET", "OPTIONS").Name("logbook-today")
	r.HandleFunc("/logbook/day/{date}", logbookHandler.HandleDay).Methods("GET", "OPTIONS").Name("logbook-day")
	r.HandleFunc("/logbook/calendar", logbookHandler.HandleCalendar).Methods("GET", "OPTIONS").Name("logbook-calendar")
	r.HandleFunc("/logbook/exercise/{name}", logbookHandler.HandleExercise).Methods("GET", "OPTIONS").Name("logbook-exercise")
	r.HandleFunc("/graphs", logbookHandler.HandleGraphs).Methods("GET", "OPTIONS").Name("graphs")

	onboardingHandler := onboarding.NewHandler(onboarding.NewService(s.workoutRepo, s.remoteSync))
	r.HandleFunc("/onboarding", onboardingHandler.HandleSubmit).Methods("POST", "OPTIONS").Name("submit-onboarding")
	r.HandleFunc("/onboarding", onboardingHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-onboarding")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// closeResources releases the store, redis and firestore clients.
func (s *Server) closeResources() error {
	var err error
	if s.firestoreStore != nil {
		err = multierr.Append(err, s.firestoreStore.Close())
	}
	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}
	if s.gormDB != nil {
		err = multierr.Append(err, db.CloseSqlite(s.gormDB))
	}
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
	if s.otelShutdown != nil {
		s.otelShutdown()
	}
	return err
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	if s.metricsManager != nil {
		s.metricsManager.GaugeLifeSignal.Set(0)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	err = multierr.Append(err, s.closeResources())

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
