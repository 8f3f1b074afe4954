package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"

	"career-backend/internal/industries"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/storage/cache"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

const defaultRateLimit = "120-M"

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Redis             *redis.Client
	Limiter           *limiter.Limiter
	Catalog           *industries.Catalog
	UsersRepo         users.Repo
	ResumesRepo       resumes.Repo
	UsersService      *users.Service
	ResumesService    *resumes.Service
	HealthService     *health.Service
	IndustriesHandler *industries.Handler
	UsersHandler      *users.Handler
	ResumesHandler    *resumes.Handler
}

// Build prepares dependencies and the router. Dev-like environments fall back to
// in-memory storage when Postgres or Redis are missing.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.RateLimit) == "" {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.Env == "production" && strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required in production")
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := buildRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		return nil, fmt.Errorf("rate limit %q: %w", cfg.RateLimit, err)
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Redis:   redisClient,
		Limiter: rateLimiter,
		Catalog: industries.Default(),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Health:            app.HealthService,
		IndustriesHandler: app.IndustriesHandler,
		UsersHandler:      app.UsersHandler,
		ResumesHandler:    app.ResumesHandler,
		Onboarding:        app.UsersService,
		Limiter:           app.Limiter,
	})

	return app, nil
}

// Close releases the database and redis connections.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("migrations: %w", err)
		}
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"reason": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, nil
	}
	client, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func buildServices(app *App) {
	var userRepo users.Repo
	var resumeRepo resumes.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	resumeSvc := resumes.NewService(resumeRepo)

	app.UsersRepo = userRepo
	app.ResumesRepo = resumeRepo
	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.HealthService = health.NewService(app.DB)
	app.IndustriesHandler = industries.NewHandler(app.Catalog)
	app.UsersHandler = users.NewHandler(userSvc, app.Catalog)
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
}
