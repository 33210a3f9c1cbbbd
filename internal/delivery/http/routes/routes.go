package routes

import (
	"jobconnect/internal/delivery/http/handler"
	v1 "jobconnect/internal/delivery/http/routes/v1"
	"jobconnect/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Health *handler.HealthHandler
	WS     *ws.Handler
	Auth   fiber.Handler
	V1     v1.Handlers
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if r.WS != nil {
		app.Get("/ws/posts", r.WS.HandlePostsWS)
	}

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.V1, r.Auth)
}
