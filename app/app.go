package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel"

	leaderboardservice "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/handlers"
	leaderboardrouter "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/router"
	"github.com/M8eight/socio-oprosnik/app/modules/media"
	stageservice "github.com/M8eight/socio-oprosnik/app/modules/stage/application"
	stagehandlers "github.com/M8eight/socio-oprosnik/app/modules/stage/infrastructure/handlers"
	stagerouter "github.com/M8eight/socio-oprosnik/app/modules/stage/infrastructure/router"
	"github.com/M8eight/socio-oprosnik/app/shared/httputil"
	"github.com/M8eight/socio-oprosnik/app/shared/metrics"
	"github.com/M8eight/socio-oprosnik/config"
	"github.com/M8eight/socio-oprosnik/db/bundb"
)

// App wires configuration, database, services and the HTTP router together.
type App struct {
	Cfg    *config.Config
	db     *bundb.DBService
	logger *slog.Logger
	router chi.Router

	Progress leaderboardservice.Service
	Stages   stageservice.Service
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	if err := bundb.BootstrapSchema(ctx, dbService.GetDB()); err != nil {
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	tracer := otel.Tracer("socio-oprosnik")
	progress := leaderboardservice.NewProgressService(dbService.LeaderDB, dbService.GetDB(), logger, tracer)
	stages := stageservice.NewStageService(dbService.StageDB, dbService.GetDB(), logger, tracer)

	mediaStore, err := media.NewDiskStore(cfg.Static.MediaDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}

	app := &App{
		Cfg:      cfg,
		db:       dbService,
		logger:   logger,
		Progress: progress,
		Stages:   stages,
	}
	app.router = app.buildRouter(mediaStore)
	return app, nil
}

// DB returns the database service.
func (app *App) DB() *bundb.DBService {
	return app.db
}

// Router returns the configured HTTP router.
func (app *App) Router() chi.Router {
	return app.router
}

func (app *App) buildRouter(mediaStore media.Store) chi.Router {
	httpMetrics := metrics.New()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httputil.RequestLogger(app.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(httpMetrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	leaderboardrouter.Register(r, leaderboardhandlers.NewHandlers(app.Progress, app.logger))
	stagerouter.Register(r, stagehandlers.NewHandlers(app.Stages, app.logger))
	media.Register(r, media.NewHandlers(mediaStore, app.Cfg.Static.Dir, app.Cfg.Static.MediaDir, app.logger))

	r.Get("/healthz", app.healthz)
	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	return r
}

func (app *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := app.db.GetDB().PingContext(r.Context()); err != nil {
		app.logger.ErrorContext(r.Context(), "health check failed", slog.Any("error", err))
		httputil.Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Close releases the database connection pool.
func (app *App) Close() error {
	return app.db.GetDB().Close()
}
