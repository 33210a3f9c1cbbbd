package ws

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// Handler upgrades /ws/posts requests and hands the connection to the hub.
type Handler struct {
	hub      *Hub
	logger   *log.Logger
	origins  map[string]bool
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	h := &Handler{hub: hub, logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// WithAllowedOrigins limits upgrades to the given origins, compared by
// scheme and host. An empty list accepts any origin.
func (h *Handler) WithAllowedOrigins(origins []string) *Handler {
	if h == nil {
		return nil
	}
	h.origins = nil
	for _, o := range origins {
		if key := originKey(o); key != "" {
			if h.origins == nil {
				h.origins = make(map[string]bool, len(origins))
			}
			h.origins[key] = true
		}
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Non-browser clients send no Origin.
		return true
	}
	if h.origins[originKey(origin)] {
		return true
	}
	h.logf("[WS] Origin rejected origin=%s", origin)
	return false
}

func originKey(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}

// HandlePostsWS upgrades the request and subscribes the connection to feed
// events.
func (h *Handler) HandlePostsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.hub.Stopped() {
		return fiber.ErrServiceUnavailable
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logf("[WS] Upgrade error err=%v", err)
			return
		}

		client := NewClient(h.hub, conn)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
