package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/craftlink/marketplace-api/internal/api/http/handlers"
	"github.com/craftlink/marketplace-api/internal/auth"
	"github.com/craftlink/marketplace-api/internal/config"
	"github.com/craftlink/marketplace-api/internal/domain"
	"github.com/craftlink/marketplace-api/internal/observability"
	"github.com/craftlink/marketplace-api/internal/service"
)

type memoryStore struct {
	accounts []*domain.Account
	profiles map[string]*domain.ProviderProfile
	nextID   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{profiles: make(map[string]*domain.ProviderProfile)}
}

func (s *memoryStore) CreateWithProfile(_ context.Context, account *domain.Account, profile *domain.ProviderProfile) error {
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return domain.ErrEmailTaken
		}
	}

	s.nextID++
	account.ID = fmt.Sprintf("acc-%d", s.nextID)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	clone := *account
	s.accounts = append(s.accounts, &clone)

	if profile != nil {
		profile.UserID = account.ID
		profile.ID = fmt.Sprintf("prof-%d", s.nextID)
		profile.CreatedAt = account.CreatedAt
		p := *profile
		s.profiles[account.ID] = &p
	}
	return nil
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memoryStore) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memoryStore) GetByUserID(_ context.Context, userID string) (*domain.ProviderProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *profile
	return &clone, nil
}

func newTestApp(t *testing.T) (*fiber.App, *service.AuthService) {
	t.Helper()

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLHours = 168
	cfg.Auth.BcryptCost = 4

	store := newMemoryStore()
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		AccountRepo: store,
		ProfileRepo: store,
	})
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), store)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("marketplace-api", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Account:        handlers.NewAccountHandler(authService),
		AuthMiddleware: authMiddleware,
	})
	return app, authService
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, header map[string]string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	payload := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("invalid json %q: %v", raw, err)
		}
	}
	return resp.StatusCode, payload
}

func TestRegisterLoginFlow(t *testing.T) {
	app, authService := newTestApp(t)

	// register a provider with an explicit service type
	status, body := doJSON(t, app, http.MethodPost, "/register",
		`{"email":"a@x.com","password":"pw123456","full_name":"A","phone":"000","role":"provider","service_type":"hair"}`, nil)
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", status, body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("register: expected user in response, got %v", body)
	}
	if user["role"] != "provider" || user["email"] != "a@x.com" || user["full_name"] != "A" {
		t.Fatalf("register: unexpected user payload %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("register: password hash leaked in response")
	}

	// login with the same credentials, decode the issued token
	status, body = doJSON(t, app, http.MethodPost, "/login",
		`{"email":"a@x.com","password":"pw123456"}`, nil)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login: expected token in response, got %v", body)
	}
	claims, err := authService.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("login: token does not parse: %v", err)
	}
	if claims.Role != domain.RoleProvider {
		t.Fatalf("login: token role %q, want provider", claims.Role)
	}

	// provider profile is readable with the token
	status, body = doJSON(t, app, http.MethodGet, "/providers/me", "",
		map[string]string{"Authorization": "Bearer " + token})
	if status != http.StatusOK {
		t.Fatalf("providers/me: expected 200, got %d (%v)", status, body)
	}
	profile, ok := body["profile"].(map[string]any)
	if !ok || profile["service_type"] != "hair" {
		t.Fatalf("providers/me: unexpected profile %v", body)
	}

	// a second registration with the same email is rejected
	status, body = doJSON(t, app, http.MethodPost, "/register",
		`{"email":"a@x.com","password":"pw123456","full_name":"A","phone":"000"}`, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d (%v)", status, body)
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Fatalf("duplicate register: expected message in body, got %v", body)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/register",
		`{"email":"a@x.com"}`, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", status, body)
	}
}

func TestLogin_BadCredentialsIdenticalShape(t *testing.T) {
	app, _ := newTestApp(t)

	if status, _ := doJSON(t, app, http.MethodPost, "/register",
		`{"email":"b@x.com","password":"pw123456","full_name":"B"}`, nil); status != http.StatusCreated {
		t.Fatalf("register failed with %d", status)
	}

	statusGhost, bodyGhost := doJSON(t, app, http.MethodPost, "/login",
		`{"email":"ghost@x.com","password":"pw123456"}`, nil)
	statusWrong, bodyWrong := doJSON(t, app, http.MethodPost, "/login",
		`{"email":"b@x.com","password":"wrong"}`, nil)

	if statusGhost != http.StatusBadRequest || statusWrong != http.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", statusGhost, statusWrong)
	}
	if bodyGhost["message"] != bodyWrong["message"] {
		t.Fatalf("credential errors distinguishable: %v vs %v", bodyGhost, bodyWrong)
	}
}

func TestAuthMe(t *testing.T) {
	app, _ := newTestApp(t)

	if status, _ := doJSON(t, app, http.MethodPost, "/register",
		`{"email":"me@x.com","password":"pw123456","full_name":"Me"}`, nil); status != http.StatusCreated {
		t.Fatalf("register failed")
	}
	_, body := doJSON(t, app, http.MethodPost, "/login",
		`{"email":"me@x.com","password":"pw123456"}`, nil)
	token, _ := body["token"].(string)

	status, body := doJSON(t, app, http.MethodGet, "/auth/me", "",
		map[string]string{"Authorization": "Bearer " + token})
	if status != http.StatusOK {
		t.Fatalf("auth/me: expected 200, got %d (%v)", status, body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["email"] != "me@x.com" {
		t.Fatalf("auth/me: unexpected body %v", body)
	}

	// customer tokens are refused on provider routes
	status, _ = doJSON(t, app, http.MethodGet, "/providers/me", "",
		map[string]string{"Authorization": "Bearer " + token})
	if status != http.StatusForbidden {
		t.Fatalf("providers/me as customer: expected 403, got %d", status)
	}
}

func TestAuthMe_RequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/auth/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodGet, "/auth/me", "",
		map[string]string{"Authorization": "Bearer not-a-token"})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", status)
	}
}
