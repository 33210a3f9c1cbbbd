package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobconnect/internal/delivery/http/middleware"
	"jobconnect/internal/domain/job"
	"jobconnect/internal/domain/post"
	"jobconnect/internal/pkg/jwt"
	"jobconnect/internal/pkg/response"
	"jobconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type stubCommunity struct {
	toggleErr error
	lastKey   string
	lastUser  int64
}

func (s *stubCommunity) Feed(context.Context, int64) ([]usecase.FeedPost, error) {
	return []usecase.FeedPost{{ID: "abc", Content: "hi", TimeAgo: "Just now", CreatedAt: time.Unix(0, 0)}}, nil
}
func (s *stubCommunity) CreatePost(_ context.Context, userID int64, content string) (usecase.FeedPost, error) {
	if strings.TrimSpace(content) == "" {
		return usecase.FeedPost{}, usecase.ErrInvalidInput
	}
	return usecase.FeedPost{ID: "1", UserID: userID, Content: content, PendingSync: true}, nil
}
func (s *stubCommunity) ToggleLike(_ context.Context, userID int64, key string) (usecase.FeedPost, error) {
	s.lastKey, s.lastUser = key, userID
	if s.toggleErr != nil {
		return usecase.FeedPost{}, s.toggleErr
	}
	return usecase.FeedPost{ID: key, Likes: 1, LikedByMe: true}, nil
}
func (s *stubCommunity) DeletePost(context.Context, int64, string) error   { return usecase.ErrForbidden }
func (s *stubCommunity) HandleRemoteChange(context.Context, post.Change) {}

type stubJobs struct {
	saved map[int64]bool
}

func (s *stubJobs) ListJobs(context.Context, int64) ([]usecase.JobView, error) { return nil, nil }
func (s *stubJobs) SaveJob(_ context.Context, _ int64, id int64, saved bool) (usecase.JobView, error) {
	if id == 404 {
		return usecase.JobView{}, usecase.ErrNotFound
	}
	s.saved[id] = saved
	return usecase.JobView{Job: job.Job{OriginalJobID: id}, IsSaved: saved}, nil
}
func (s *stubJobs) ApplyJob(context.Context, int64, int64) (usecase.JobView, error) {
	return usecase.JobView{}, nil
}
func (s *stubJobs) SavedJobs(context.Context, int64) ([]usecase.JobView, error)   { return nil, nil }
func (s *stubJobs) AppliedJobs(context.Context, int64) ([]usecase.JobView, error) { return nil, nil }

func newTestApp(userID int64) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if userID > 0 {
			c.Locals(middleware.CtxUserIDKey, userID)
		}
		return c.Next()
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, response.SemanticResponse) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func TestPostHandler_ToggleLike(t *testing.T) {
	uc := &stubCommunity{}
	app := newTestApp(7)
	NewPostHandler(uc).RegisterRoutes(app.Group("/posts"))

	status, env := doRequest(t, app, http.MethodPost, "/posts/abc/like", "")
	if status != fiber.StatusOK || env.Status != fiber.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	if uc.lastKey != "abc" || uc.lastUser != 7 {
		t.Fatalf("unexpected call key=%q user=%d", uc.lastKey, uc.lastUser)
	}
	data := env.Data.(map[string]any)
	if data["liked_by_me"] != true || data["likes"].(float64) != 1 {
		t.Fatalf("unexpected data %+v", data)
	}
}

func TestPostHandler_ErrorMapping(t *testing.T) {
	uc := &stubCommunity{toggleErr: usecase.ErrNotFound}
	app := newTestApp(7)
	NewPostHandler(uc).RegisterRoutes(app.Group("/posts"))

	if status, _ := doRequest(t, app, http.MethodPost, "/posts/x/like", ""); status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if status, _ := doRequest(t, app, http.MethodDelete, "/posts/x", ""); status != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if status, _ := doRequest(t, app, http.MethodPost, "/posts", `{"content":"  "}`); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	uc.toggleErr = usecase.ErrInternal
	status, env := doRequest(t, app, http.MethodPost, "/posts/x/like", "")
	if status != fiber.StatusInternalServerError || env.Message != response.MessageInternalServerError {
		t.Fatalf("expected masked 500, got %d %q", status, env.Message)
	}
}

func TestPostHandler_CreateAndFeed(t *testing.T) {
	app := newTestApp(7)
	NewPostHandler(&stubCommunity{}).RegisterRoutes(app.Group("/posts"))

	status, env := doRequest(t, app, http.MethodPost, "/posts", `{"content":"hello"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if env.Data.(map[string]any)["pending_sync"] != true {
		t.Fatalf("expected pending_sync flag")
	}

	status, env = doRequest(t, app, http.MethodGet, "/posts", "")
	if status != fiber.StatusOK || len(env.Data.([]any)) != 1 {
		t.Fatalf("unexpected feed response %d %+v", status, env.Data)
	}
}

func TestJobsHandler_SaveAndUnsave(t *testing.T) {
	uc := &stubJobs{saved: map[int64]bool{}}
	app := newTestApp(7)
	NewJobsHandler(uc, nil).RegisterRoutes(app.Group("/jobs"))

	if status, _ := doRequest(t, app, http.MethodPut, "/jobs/3/save", ""); status != fiber.StatusOK || !uc.saved[3] {
		t.Fatalf("save failed status=%d", status)
	}
	if status, _ := doRequest(t, app, http.MethodDelete, "/jobs/3/save", ""); status != fiber.StatusOK || uc.saved[3] {
		t.Fatalf("unsave failed status=%d", status)
	}
	if status, _ := doRequest(t, app, http.MethodPut, "/jobs/abc/save", ""); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if status, _ := doRequest(t, app, http.MethodPut, "/jobs/404/save", ""); status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestAuthMiddleware_RejectsMissingAndRefreshTokens(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(middleware.NewAuthMiddleware(svc).Middleware())
	NewPostHandler(&stubCommunity{}).RegisterRoutes(app.Group("/posts"))

	if status, _ := doRequest(t, app, http.MethodGet, "/posts", ""); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}

	refresh, _ := svc.GenerateRefreshToken(7)
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token, got %d", resp.StatusCode)
	}

	access, _ := svc.GenerateAccessToken(jwt.Subject{UserID: 7})
	req = httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler_ReportsStoresAndClients(t *testing.T) {
	app := fiber.New()
	NewHealthHandler(stubPinger{}, stubPinger{err: errors.New("down")}, func() bool { return true }).
		WithClients(func() int { return 2 }).
		RegisterRoutes(app)

	status, env := doRequest(t, app, http.MethodGet, "/health", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	checks := env.Data.(map[string]any)
	if checks["database"] != "up" || checks["cache"] != "bypassed" || checks["remote"] != "up" || checks["ws_clients"] != "2" {
		t.Fatalf("unexpected checks %+v", checks)
	}

	app = fiber.New()
	NewHealthHandler(stubPinger{err: errors.New("down")}, stubPinger{}, nil).RegisterRoutes(app)
	if status, _ := doRequest(t, app, http.MethodGet, "/health", ""); status != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the database is down, got %d", status)
	}
}
