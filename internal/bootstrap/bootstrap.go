package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/unischedule/internal/app/controllers"
	appMigrations "github.com/yigit/unischedule/internal/app/migrations"
	appRepos "github.com/yigit/unischedule/internal/app/repositories"
	appRoutes "github.com/yigit/unischedule/internal/app/routes"
	appServices "github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/db"
	appMiddleware "github.com/yigit/unischedule/internal/middleware"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/pkg/validation"
	"github.com/yigit/unischedule/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// The config file path can be overridden with CONFIG_PATH.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  prettyLog,
		Service: "unischedule",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	dbPool, err := db.Connect(context.Background(), cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(dbPool)

	policy, err := appServices.ParseSlotPolicy(cfg.Scheduling.ConflictPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid conflict policy: %w", err)
	}
	lgr.Info().Str("conflictPolicy", policy.String()).Msg("Scheduling conflict policy configured")

	deps.Services = appServices.NewServices(appServices.Repositories{
		Faculty:   deps.Repos.FacultyRepository,
		ClassRoom: deps.Repos.ClassRoomRepository,
		Subject:   deps.Repos.SubjectRepository,
		Group:     deps.Repos.GroupRepository,
		Teacher:   deps.Repos.TeacherRepository,
		Student:   deps.Repos.StudentRepository,
		Lecture:   deps.Repos.LectureRepository,
		Schedule:  deps.Repos.ScheduleRepository,
	}, appServices.NewConflictDetector(policy))

	deps.Controllers = appRoutes.Controllers{
		Faculty:   appControllers.NewFacultyController(deps.Services.Faculty),
		ClassRoom: appControllers.NewClassRoomController(deps.Services),
		Subject:   appControllers.NewSubjectController(deps.Services.Subject),
		Group:     appControllers.NewGroupController(deps.Services),
		Teacher:   appControllers.NewTeacherController(deps.Services),
		Student:   appControllers.NewStudentController(deps.Services),
		Lecture:   appControllers.NewLectureController(deps.Services),
		Schedule:  appControllers.NewScheduleController(deps.Services),
		Timetable: appControllers.NewTimetableController(deps.Services.Timetable),
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(context.Background(), deps.Services, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.Metrics(),
	)

	appRoutes.SetupSwagger(router, cfg.Server.PublicHost)
	appRoutes.SetupRouter(router, deps.Controllers)

	return router
}
