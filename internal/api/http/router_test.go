package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/http/handlers"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/config"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/events"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/observability"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/service"
)

type testServer struct {
	app   *fiber.App
	db    *memDB
	auth  *service.AuthService
	ready *stubPinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := newMemDB()
	cfg := config.Config{
		App:        config.AppConfig{Name: "complaint-hub", Version: "test"},
		Auth:       config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4},
		Complaints: config.ComplaintConfig{StatusPolicy: config.StatusPolicyOpen},
	}
	revoker := &memRevoker{revoked: map[string]bool{}}
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		CredentialRepo: credentialStore{db},
		ProfileRepo:    profileStore{db},
		Revoker:        revoker,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintStore{db},
		CommentRepo:   commentStore{db},
		Policy:        auth.NewPolicy(cfg.Complaints.StatusPolicy),
		Dispatcher:    events.NewInMemoryDispatcher(),
	})
	metrics := observability.NewMetrics("test")
	ready := &stubPinger{}

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, cfg.App.RequestTimeout(), "*")
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{"postgres": ready}),
		Shell:      handlers.NewShellHandler(),
		Auth:       handlers.NewAuthHandler(authService),
		Dashboard:  handlers.NewDashboardHandler(service.NewDashboardService(complaintService)),
		Complaints: handlers.NewComplaintsHandler(complaintService),
		Session:    auth.NewSessionMiddleware(authService.TokenManager(), revoker, profileStore{db}),
		Metrics:    metrics,
	})
	return &testServer{app: app, db: db, auth: authService, ready: ready}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (s *testServer) signUp(t *testing.T, email, name string) (string, string) {
	t.Helper()
	status, body := s.do(t, fiber.MethodPost, "/auth/signup", "", map[string]string{
		"email": email, "password": "long-enough-password", "full_name": name,
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	data := body["data"].(map[string]any)
	profile := data["profile"].(map[string]any)
	return data["token"].(string), profile["id"].(string)
}

func (s *testServer) admin(t *testing.T) string {
	t.Helper()
	s.db.profiles["admin-1"] = &domain.Profile{ID: "admin-1", FullName: "Dean Office", Role: domain.RoleAdmin}
	token, _, err := s.auth.TokenManager().GenerateToken("admin-1")
	require.NoError(t, err)
	return token
}

func errorOf(body map[string]any) map[string]any {
	e, _ := body["error"].(map[string]any)
	return e
}

func TestShellRedirect(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, fiber.MethodGet, "/", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["authenticated"])
	assert.Nil(t, body["redirect"])

	token, _ := s.signUp(t, "asha@example.com", "Asha")
	_, body = s.do(t, fiber.MethodGet, "/", token, nil)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "/dashboard", body["redirect"])

	_, body = s.do(t, fiber.MethodGet, "/", "garbage", nil)
	assert.Equal(t, false, body["authenticated"])
}

func TestCreateWithoutSessionIsRejected(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, fiber.MethodPost, "/complaints", "", map[string]string{
		"title": "Broken AC", "description": "Room 204", "category": "hostel",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	e := errorOf(body)
	assert.Equal(t, "UNAUTHORIZED", e["code"])
	assert.Equal(t, "/auth", e["details"].(map[string]any)["redirect"])
	assert.Zero(t, s.db.inserts)

	status, _ = s.do(t, fiber.MethodGet, "/dashboard", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestComplaintLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.signUp(t, "alice@example.com", "Alice")
	bob, _ := s.signUp(t, "bob@example.com", "Bob")
	admin := s.admin(t)

	status, body := s.do(t, fiber.MethodPost, "/complaints", alice, map[string]string{
		"title": "Broken AC", "description": "The AC in room 204 is dead.", "category": "hostel", "priority": "high",
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "/dashboard", body["redirect"])
	created := body["data"].(map[string]any)
	id := created["id"].(string)
	assert.Equal(t, "new", created["status"])

	status, body = s.do(t, fiber.MethodGet, "/dashboard", bob, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["data"].(map[string]any)["complaints"])

	status, _ = s.do(t, fiber.MethodGet, "/complaints/"+id, bob, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = s.do(t, fiber.MethodPost, "/complaints/"+id+"/comments", alice, map[string]string{"content": "   "})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["created"])

	status, body = s.do(t, fiber.MethodPost, "/complaints/"+id+"/comments", admin, map[string]string{"content": "Technician booked"})
	require.Equal(t, fiber.StatusCreated, status)
	thread := body["data"].(map[string]any)["comments"].([]any)
	require.Len(t, thread, 1)
	assert.Equal(t, "Dean Office", thread[0].(map[string]any)["author_name"])
	assert.Equal(t, "admin", thread[0].(map[string]any)["author_role"])

	status, _ = s.do(t, fiber.MethodPatch, "/complaints/"+id+"/status", alice, map[string]string{"status": "closed"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = s.do(t, fiber.MethodPatch, "/complaints/"+id+"/status", admin, map[string]string{"status": "resolved"})
	require.Equal(t, fiber.StatusOK, status, body)
	detail := body["data"].(map[string]any)
	assert.Equal(t, "resolved", detail["complaint"].(map[string]any)["status"])
	assert.Equal(t, true, detail["can_change_status"])
	assert.Len(t, detail["status_options"], 4)

	status, body = s.do(t, fiber.MethodGet, "/complaints/"+id, alice, nil)
	require.Equal(t, fiber.StatusOK, status)
	detail = body["data"].(map[string]any)
	assert.Equal(t, "resolved", detail["complaint"].(map[string]any)["status"])
	assert.Equal(t, false, detail["can_change_status"])
	assert.Empty(t, detail["status_options"])
}

func TestAdminDashboardFilter(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.signUp(t, "alice@example.com", "Alice")
	admin := s.admin(t)

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		_, body := s.do(t, fiber.MethodPost, "/complaints", alice, map[string]string{
			"title": title, "description": title, "category": "library",
		})
		ids = append(ids, body["data"].(map[string]any)["id"].(string))
	}
	status, _ := s.do(t, fiber.MethodPatch, "/complaints/"+ids[0]+"/status", admin, map[string]string{"status": "resolved"})
	require.Equal(t, fiber.StatusOK, status)

	status, body := s.do(t, fiber.MethodGet, "/dashboard?status=resolved", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "admin", data["view"])
	assert.Len(t, data["complaints"], 1)
	stats := data["stats"].(map[string]any)
	assert.EqualValues(t, 3, stats["total"])
	assert.EqualValues(t, 1, stats["resolved"])
	card := data["complaints"].([]any)[0].(map[string]any)
	assert.NotEmpty(t, card["student_id"])

	status, body = s.do(t, fiber.MethodGet, "/dashboard?status=bogus", admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorOf(body)["code"])

	status, body = s.do(t, fiber.MethodGet, "/complaints?status=new", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 2)
}

func TestCreateValidation(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.signUp(t, "alice@example.com", "Alice")

	status, body := s.do(t, fiber.MethodPost, "/complaints", alice, map[string]string{
		"title": "", "description": "x", "category": "canteen",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	details := errorOf(body)["details"].(map[string]any)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "category")
	assert.Zero(t, s.db.inserts)

	admin := s.admin(t)
	status, _ = s.do(t, fiber.MethodPost, "/complaints", admin, map[string]string{
		"title": "t", "description": "d", "category": "other",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestSessionAndLogout(t *testing.T) {
	s := newTestServer(t)
	token, id := s.signUp(t, "carol@example.com", "Carol")

	status, body := s.do(t, fiber.MethodGet, "/auth/session", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	profile := body["data"].(map[string]any)["profile"].(map[string]any)
	assert.Equal(t, id, profile["id"])
	assert.Equal(t, "student", profile["role"])

	status, body = s.do(t, fiber.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "/", body["redirect"])

	status, _ = s.do(t, fiber.MethodGet, "/auth/session", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = s.do(t, fiber.MethodPost, "/auth/login", "", map[string]string{"email": "carol@example.com", "password": "nope"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	status, _ = s.do(t, fiber.MethodPost, "/auth/login", "", map[string]string{"email": "carol@example.com", "password": "long-enough-password"})
	assert.Equal(t, fiber.StatusOK, status)

	status, body = s.do(t, fiber.MethodPost, "/auth/signup", "", map[string]string{"email": "carol@example.com", "password": "long-enough-password", "full_name": "C"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorOf(body)["code"])

	status, body = s.do(t, fiber.MethodPost, "/auth/signup", "", map[string]string{"email": "dave@example.com", "password": "short", "full_name": "D"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, errorOf(body)["details"], "password")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, fiber.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	s.ready.err = errDown
	status, body = s.do(t, fiber.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", errorOf(body)["code"])

	status, _ = s.do(t, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(t, fiber.MethodGet, "/metrics", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, fiber.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.NotEmpty(t, errorOf(body)["code"])
}
