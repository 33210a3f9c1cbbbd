package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"jobconnect/internal/config"
	"jobconnect/internal/delivery/http/handler"
	"jobconnect/internal/delivery/http/middleware"
	"jobconnect/internal/delivery/http/routes"
	v1 "jobconnect/internal/delivery/http/routes/v1"
	"jobconnect/internal/postsync"
	"jobconnect/internal/ws"

	"github.com/gofiber/fiber/v3"
)

const watchRetryDelay = 10 * time.Second

type App struct {
	Fiber     *fiber.App
	Container *Container
	Scheduler *postsync.Scheduler

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{
		Fiber:     f,
		Container: c,
		Scheduler: postsync.NewScheduler(c.Syncer, c.Config.Sync.Interval, c.Logger),
	}
}

// Bootstrap connects every store, applies migrations and starts the
// background workers. The returned cleanup stops them and closes the stores.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Migrate(ctx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	app := New(c)
	if err := app.startBackground(ctx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return app, app.stop, nil
}

func (a *App) startBackground(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	a.cancel = cancel
	c := a.Container

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		c.Hub.Run(ctx)
	}()

	if c.Remote.Available() {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.watchRemote(ctx)
		}()

		if err := a.Scheduler.Start(ctx); err != nil {
			cancel()
			return err
		}
		c.Logger.Printf("[App] Post sync scheduled spec=%s", a.Scheduler.Spec())
	} else {
		c.Logger.Printf("[App] Remote post store disabled, post sync not scheduled")
	}
	return nil
}

// watchRemote mirrors remote feed changes until ctx ends, reopening the
// change stream after failures.
func (a *App) watchRemote(ctx context.Context) {
	c := a.Container
	for {
		err := c.Remote.WatchPosts(ctx, c.Community.HandleRemoteChange)
		if ctx.Err() != nil {
			return
		}
		c.Logger.Printf("[App] Remote change stream ended, retrying in %s err=%v", watchRetryDelay, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(watchRetryDelay):
		}
	}
}

func (a *App) stop() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.Container.Remote.Available() {
		a.Scheduler.Stop()
	}
	a.wg.Wait()
	return a.Container.Close()
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	reg := routes.Registry{
		Health: handler.NewHealthHandler(c.DB, c.Redis, c.Remote.Available).WithClients(c.Hub.ClientCount),
		WS:     ws.NewHandler(c.Hub, c.Logger).WithAllowedOrigins(c.Config.App.WSAllowedOrigins),
		Auth:   middleware.NewAuthMiddleware(c.JWT).Middleware(),
		V1: v1.Handlers{
			Auth:     handler.NewAuthHandler(c.Auth),
			Profile:  handler.NewProfileHandler(c.Profile),
			Jobs:     handler.NewJobsHandler(c.Jobs, c.Recommendation),
			Employer: handler.NewEmployerHandler(c.Employer),
			Posts:    handler.NewPostHandler(c.Community),
		},
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", errors.New("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return fmt.Sprintf(":%s", p), nil
}
