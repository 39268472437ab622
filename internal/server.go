package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/fitstats/activities"
	"github.com/2beens/fittrack/internal/fitstats/stats"
	"github.com/2beens/fittrack/internal/fitstats/weights"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

const sessionCleanupTimeout = 5 * time.Minute

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	loc         *time.Location
	versionInfo string

	redisClient    *redis.Client
	loginChecker   *auth.LoginChecker
	authService    *auth.Service
	sessionCleaner *cron.Cron

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config        *config.Config
	Secrets       *config.Secrets
	VersionInfo   string
	MigrateSchema bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	sessionTTL, err := cfg.SessionDuration()
	if err != nil {
		return nil, err
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.Secrets.HoneycombEnabled)
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.Secrets.PostgresPassword,
		TracingEnabled: params.Secrets.HoneycombEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.MigrateSchema {
		if err := db.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			otelShutdown()
			return nil, err
		}
	}

	promRegistry := metrics.SetupPrometheus()
	if err := metrics.RegisterDBPool(promRegistry, dbPool, cfg.PostgresDBName); err != nil {
		log.Errorf("register db pool collector: %s", err)
	}
	metricsManager := metrics.NewManager("fittrack", "backend", promRegistry)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.Secrets.RedisPassword,
		DB:       0, // use default DB
	})
	rdb.AddHook(redisotel.NewTracingHook())

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	tokens, err := auth.NewTokens(params.Secrets.JWTSecret, cfg.TokenIssuer, sessionTTL)
	if err != nil {
		dbPool.Close()
		otelShutdown()
		return nil, fmt.Errorf("session tokens: %w", err)
	}

	authService := auth.NewService(auth.NewUsersRepo(dbPool), tokens, sessionTTL, rdb, metricsManager)

	sessionCleaner, err := newSessionCleaner(cfg.SessionCleanupSchedule, authService)
	if err != nil {
		dbPool.Close()
		otelShutdown()
		return nil, err
	}

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		loc:         loc,
		versionInfo: params.VersionInfo,

		redisClient:    rdb,
		authService:    authService,
		loginChecker:   auth.NewLoginChecker(tokens, sessionTTL, rdb, auth.DefaultSessionCacheTTL),
		sessionCleaner: sessionCleaner,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

type sessionScanner interface {
	ScanAndClean(ctx context.Context) int
}

func newSessionCleaner(schedule string, sessions sessionScanner) (*cron.Cron, error) {
	logger := cron.PrintfLogger(log.StandardLogger())
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sessionCleanupTimeout)
		defer cancel()
		sessions.ScanAndClean(ctx)
	}); err != nil {
		return nil, fmt.Errorf("session cleanup schedule [%s]: %w", schedule, err)
	}
	return c, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fittrack-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.authService, s.loginChecker)
	authHandler.SetupRoutes(
		r.PathPrefix("/a").Subrouter(),
		middleware.RateLimit(reqRateLimiter, "auth", s.config.LoginRateLimitPerMin, s.metricsManager),
	)

	activitiesRepo := activities.NewRepo(s.dbPool)
	weightsRepo := weights.NewRepo(s.dbPool)

	activitiesHandler := activities.NewHandler(
		activities.NewService(activitiesRepo, s.loc, s.metricsManager),
	)
	activitiesHandler.SetupRoutes(r.PathPrefix("/activities").Subrouter())

	weightsHandler := weights.NewHandler(
		weights.NewService(weightsRepo, s.loc, s.metricsManager),
	)
	weightsHandler.SetupRoutes(r.PathPrefix("/weights").Subrouter())

	statsHandler := stats.NewHandler(
		stats.NewAggregator(activitiesRepo, weightsRepo, s.loc),
		stats.Windows{
			CalendarDays:        s.config.CalendarDays,
			CompactCalendarDays: s.config.CompactCalendarDays,
			WeightDays:          s.config.WeightDays,
		},
		s.metricsManager,
	)
	statsHandler.SetupRoutes(r.PathPrefix("/stats").Subrouter())

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, HealthResponse{Status: "ok", Version: s.versionInfo}, http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{Registry: s.promRegistry}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.MetricsHost, strconv.Itoa(s.config.MetricsPort))
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

	s.sessionCleaner.Start()
	log.Debugf(" > session cleaner scheduled: [%s]", s.config.SessionCleanupSchedule)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.sessionCleaner != nil {
		// wait for a running cleanup to finish
		select {
		case <-s.sessionCleaner.Stop().Done():
		case <-ctx.Done():
			log.Warnln("session cleaner still running, giving up on it")
		}
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
