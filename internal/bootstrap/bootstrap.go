package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/gradebook/internal/app/controllers"
	appMigrations "github.com/yigit/gradebook/internal/app/migrations"
	appRepos "github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/app/repositories/memory"
	"github.com/yigit/gradebook/internal/app/repositories/mongodb"
	"github.com/yigit/gradebook/internal/app/repositories/postgres"
	appRoutes "github.com/yigit/gradebook/internal/app/routes"
	appServices "github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/config"
	"github.com/yigit/gradebook/internal/db"
	appMiddleware "github.com/yigit/gradebook/internal/middleware"
	"github.com/yigit/gradebook/internal/pkg/helpers"
	"github.com/yigit/gradebook/internal/pkg/logger"
	"github.com/yigit/gradebook/internal/seed"
)

// ConfigPathEnv overrides the config file location
const ConfigPathEnv = "CONFIG_FILE"

// Used when the configured value is empty or invalid
const (
	DefaultRequestTimeout = 5 * time.Second
	DefaultHealthTimeout  = 2 * time.Second
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	Services          *appServices.Services
	StatusController  *appControllers.StatusController
	StudentController *appControllers.StudentController
	CourseController  *appControllers.CourseController
	GradeController   *appControllers.GradeController
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		logger.Error().Err(err).Msg("Failed to load .env file")
		return nil, zerolog.Logger{}, err
	}

	configPath := os.Getenv(ConfigPathEnv)
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.PrettyLogs(),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore connects the configured backend and returns its repositories.
// An unreachable mongo server is not fatal: the service starts and health
// reports the store as down until it answers.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, error) {
	lgr.Info().Str("driver", cfg.Store.Driver).Msg("Setting up store...")

	switch cfg.Store.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory store, data is lost on exit")
		return memory.NewRepositories(), nil

	case config.DriverPostgres:
		pool, err := db.NewPostgresPool(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(pool)
		if err := migrator.Migrate(ctx, appMigrations.Files()); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			pool.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
		return postgres.NewRepositories(pool), nil

	case config.DriverMongo:
		client, database, err := db.NewMongoClient(cfg)
		switch {
		case errors.Is(err, db.ErrUnreachable):
			lgr.Warn().Err(err).Str("database", database).Msg("MongoDB not reachable, continuing without a live connection")
		case err != nil:
			lgr.Error().Err(err).Msg("Failed to create MongoDB client")
			return nil, err
		default:
			lgr.Info().Str("database", database).Msg("MongoDB connection successfully established.")
		}
		return mongodb.NewRepositories(client, database), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// SeedData creates the configured default courses when seeding is enabled.
// Failures are logged and do not stop startup.
func SeedData(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if !cfg.Seed.Enabled {
		return
	}
	if err := seed.CreateDefaultData(ctx, deps.Services.Courses, cfg.Seed.Courses, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes services and controllers over repos.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Repos:  repos,
		Logger: lgr,
	}

	deps.Services = appServices.NewServices(repos)

	deps.StatusController = appControllers.NewStatusController(
		repos,
		cfg.Server.FrontendURL,
		helpers.ParseDuration(cfg.Server.HealthTimeout, DefaultHealthTimeout),
	)
	deps.StudentController = appControllers.NewStudentController(deps.Services.Students)
	deps.CourseController = appControllers.NewCourseController(deps.Services.Courses)
	deps.GradeController = appControllers.NewGradeController(deps.Services.Grades)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(),
		appMiddleware.RequestTimeout(helpers.ParseDuration(cfg.Server.RequestTimeout, DefaultRequestTimeout)),
	)

	appRoutes.SetupRouter(router,
		deps.StatusController,
		deps.StudentController,
		deps.CourseController,
		deps.GradeController,
	)

	return router
}
