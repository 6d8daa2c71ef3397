package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"unite-match/internal/domain"
	"unite-match/internal/service"
)

type mockUserRepo struct {
	accountsBySubject map[string]domain.UserAccount
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{accountsBySubject: make(map[string]domain.UserAccount)}
}

func (m *mockUserRepo) GetBySubject(_ context.Context, subject string) (domain.UserAccount, error) {
	account, ok := m.accountsBySubject[subject]
	if !ok {
		return domain.UserAccount{}, pgx.ErrNoRows
	}
	return account, nil
}

func (m *mockUserRepo) CreateIfAbsent(_ context.Context, account domain.UserAccount) (bool, error) {
	if _, ok := m.accountsBySubject[account.AuthSubject]; ok {
		return false, nil
	}
	m.accountsBySubject[account.AuthSubject] = account
	return true, nil
}

func newTestRouter(repo *mockUserRepo, subject string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	svc := service.NewProfileService(logger, repo, nil)
	handler := NewProfileHandler(logger, svc)

	r := gin.New()
	withSubject := func(c *gin.Context) {
		if subject != "" {
			c.Set(authSubjectKey, subject)
		}
		c.Next()
	}
	r.GET("/users/me", withSubject, handler.GetMe)
	r.POST("/users", withSubject, handler.CreateProfile)
	return r
}

func createProfileBody(t *testing.T, trainerName string, roles []string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"external_profile": gin.H{
			"subject":      "sub-1",
			"display_name": "RedPlayer#0001",
		},
		"trainer_name":    trainerName,
		"preferred_roles": roles,
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(body)
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) domain.UserAccount {
	t.Helper()
	var resp struct {
		User domain.UserAccount `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.User
}

func TestCreateProfile_Created(t *testing.T) {
	r := newTestRouter(newMockUserRepo(), "sub-1")

	req := httptest.NewRequest(http.MethodPost, "/users", createProfileBody(t, "Red", []string{"TOP_LANE"}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeUser(t, rec)
	if user.DiscordUsername != "RedPlayer" {
		t.Fatalf("expected username RedPlayer, got %q", user.DiscordUsername)
	}
	if user.DiscordDiscriminator == nil || *user.DiscordDiscriminator != "0001" {
		t.Fatalf("expected discriminator 0001, got %v", user.DiscordDiscriminator)
	}
	if user.Rating != 1500 {
		t.Fatalf("expected rating 1500, got %d", user.Rating)
	}
}

func TestCreateProfile_ValidationMessageSurfaced(t *testing.T) {
	r := newTestRouter(newMockUserRepo(), "sub-1")

	req := httptest.NewRequest(http.MethodPost, "/users", createProfileBody(t, "Red", []string{"JUNGLE"}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "invalid preferred role: JUNGLE" {
		t.Fatalf("expected rule message, got %q", resp.Error)
	}
}

func TestCreateProfile_MalformedBody(t *testing.T) {
	r := newTestRouter(newMockUserRepo(), "sub-1")

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateProfile_MissingIdentity(t *testing.T) {
	r := newTestRouter(newMockUserRepo(), "")

	req := httptest.NewRequest(http.MethodPost, "/users", createProfileBody(t, "Red", nil))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserProfileFlow_FetchCreateConflict(t *testing.T) {
	repo := newMockUserRepo()
	r := newTestRouter(repo, "sub-1")

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before creation, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/users", createProfileBody(t, "Red", []string{"TOP_LANE"}))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after creation, got %d", rec.Code)
	}
	user := decodeUser(t, rec)
	if user.TrainerName != "Red" || user.UserID != "sub-1" {
		t.Fatalf("unexpected fetched user %+v", user)
	}

	req = httptest.NewRequest(http.MethodPost, "/users", createProfileBody(t, "Red", []string{"TOP_LANE"}))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate creation, got %d", rec.Code)
	}
}
