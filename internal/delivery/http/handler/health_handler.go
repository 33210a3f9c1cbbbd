package handler

import (
	"context"
	"strconv"
	"time"

	"jobconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	cache  Pinger
	remote func() bool
	// clients counts open feed websockets.
	clients func() int
}

// NewHealthHandler reports the database as required; the cache and the
// remote store are reported but never fail the check.
func NewHealthHandler(db, cache Pinger, remoteAvailable func() bool) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, remote: remoteAvailable}
}

func (h *HealthHandler) WithClients(count func() int) *HealthHandler {
	h.clients = count
	return h
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := map[string]string{"database": "up", "cache": "up", "remote": "disabled"}

	if h.db == nil || h.db.Ping(ctx) != nil {
		checks["database"] = "down"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		checks["cache"] = "bypassed"
	}
	if h.remote != nil && h.remote() {
		checks["remote"] = "up"
	}
	if h.clients != nil {
		checks["ws_clients"] = strconv.Itoa(h.clients())
	}

	return response.Success(c, status, "", checks)
}
