package v1

import (
	"jobconnect/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Jobs     *handler.JobsHandler
	Employer *handler.EmployerHandler
	Posts    *handler.PostHandler
}

// Register mounts the v1 API. Everything except /auth sits behind auth.
func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r.Group("", auth)
	if h.Profile != nil {
		h.Profile.RegisterRoutes(protected.Group("/profile"))
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(protected.Group("/jobs"))
	}
	if h.Employer != nil {
		h.Employer.RegisterRoutes(protected.Group("/employer"))
	}
	if h.Posts != nil {
		h.Posts.RegisterRoutes(protected.Group("/posts"))
	}
}
