package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"jobconnect/internal/catalog"
	"jobconnect/internal/config"
	"jobconnect/internal/database"
	"jobconnect/internal/database/migration"
	dbpostgres "jobconnect/internal/database/postgres"
	"jobconnect/internal/database/seeder"
	"jobconnect/internal/domain/post"
	"jobconnect/internal/infrastructure/cache"
	"jobconnect/internal/infrastructure/docstore"
	"jobconnect/internal/pkg/jwt"
	"jobconnect/internal/postsync"
	"jobconnect/internal/repository"
	"jobconnect/internal/usecase"
	ucjob "jobconnect/internal/usecase/job"
	"jobconnect/internal/ws"
	"jobconnect/migrations"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB     database.DB
	Redis  *cache.Redis
	Remote *docstore.MongoPostStore
	Hub    *ws.Hub
	JWT    jwt.Service

	Posts *repository.PostgresPostRepository

	Auth           *usecase.Auth
	Profile        *usecase.Profile
	Jobs           *usecase.Jobs
	Recommendation *usecase.JobRecommendation
	Employer       *usecase.Employer
	Community      *usecase.Community

	Syncer *postsync.Syncer
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	c.Redis = cache.NewRedis(cfg.Redis, logger)

	if cfg.RemoteEnabled() {
		remote, err := docstore.Connect(connectCtx, cfg.Mongo, logger)
		if err != nil {
			logger.Printf("[App] Remote post store unreachable, running local-only err=%v", err)
		} else {
			c.Remote = remote
		}
	} else {
		logger.Printf("[App] MONGO_URI not set, running local-only")
	}

	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
	c.Hub = ws.NewHub(logger)

	users := repository.NewPostgresUserRepository(db)
	profiles := repository.NewPostgresProfileRepository(db)
	userJobs := repository.NewPostgresUserJobRepository(db)
	employerJobs := repository.NewPostgresEmployerJobRepository(db)
	samples := repository.NewPostgresSampleJobRepository(db)
	c.Posts = repository.NewPostgresPostRepository(db)

	candidates := ucjob.NewCandidateService(samples, employerJobs, catalog.SampleJobs(), logger)

	c.Auth = usecase.NewAuthUsecase(users, c.JWT)
	c.Profile = usecase.NewProfileUsecase(users, profiles)
	c.Jobs = usecase.NewJobsUsecase(candidates, userJobs, employerJobs, logger)
	c.Recommendation = usecase.NewJobRecommendationUsecase(candidates, profiles, c.Redis, logger)
	c.Employer = usecase.NewEmployerUsecase(employerJobs, users, profiles, c.Redis, logger)
	c.Community = usecase.NewCommunityUsecase(usecase.CommunityDeps{
		Local:    c.Posts,
		Remote:   c.RemoteStore(),
		Users:    users,
		Profiles: profiles,
		Cache:    c.Redis,
		Notifier: c.Hub,
		Logger:   logger,
	})

	c.Syncer = postsync.NewSyncer(c.Posts, c.RemoteStore(), cfg.Sync.MaxAttempts, cfg.Sync.BaseDelay, logger)
	c.Syncer.OnSynced = c.Community.PostsSynced
	if c.Redis.Available() {
		c.Syncer.WithLock(c.Redis, 0)
	} else {
		logger.Printf("[App] Redis unavailable, post sync runs without a shared lock")
	}

	return c, nil
}

// RemoteStore returns the remote store, or nil when it is not connected.
// A nil *MongoPostStore must not leak into the interface.
func (c *Container) RemoteStore() post.RemoteStore {
	if c == nil || !c.Remote.Available() {
		return nil
	}
	return c.Remote
}

// Migrate applies pending schema migrations and the default seeders.
func (c *Container) Migrate(ctx context.Context) error {
	return Migrate(ctx, c.DB, c.Config.App.MigrationsDir, c.Logger)
}

func Migrate(ctx context.Context, db database.DB, dir string, logger *log.Logger) error {
	sqlDB, ok := db.(interface{ SQLDB() *sql.DB })
	if !ok || sqlDB.SQLDB() == nil {
		return errors.New("migrate: database does not expose *sql.DB")
	}

	applied, err := migrationRunner(dir).Run(ctx, sqlDB.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, m := range applied {
		logger.Printf("[Migration] Applied version=%d name=%s", m.Version, m.Name)
	}

	return seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}.Run(ctx, db)
}

// migrationRunner reads the embedded schema files unless the operator points
// MIGRATIONS_DIR at a directory.
func migrationRunner(dir string) migration.Runner {
	if dir = strings.TrimSpace(dir); dir != "" {
		return migration.Runner{Dir: dir}
	}
	return migration.Runner{FS: migrations.FS}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, c.Remote.Close(ctx))
		cancel()
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
