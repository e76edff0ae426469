package codes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebin/codebin/internal/config"
	"github.com/codebin/codebin/internal/models"
	"github.com/codebin/codebin/internal/tokens"
	"github.com/codebin/codebin/pkg/middleware"
)

func codeTestEngine(t *testing.T, repo Repository) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret"
	r := gin.New()
	r.Use(middleware.Errors())
	r.NoRoute(middleware.NoRoute())
	NewHandler(NewService(repo)).Register(r, middleware.Auth(cfg, nil))
	return r, cfg
}

func issueFor(t *testing.T, cfg *config.Config, userID, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := tokens.Issue(cfg, &models.User{ID: userID, Role: role}, ttl)
	require.NoError(t, err)
	return tok
}

func doAuthJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Message
}

func TestHandler_CreateReadRoundTrip(t *testing.T) {
	r, cfg := codeTestEngine(t, NewMemoryRepository())
	owner := issueFor(t, cfg, "owner-1", models.RoleUser, time.Hour)

	w := doAuthJSON(t, r, http.MethodPost, "/codes", owner, gin.H{"language": "go", "body": "package main"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created Code
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-1", created.OwnerID)

	w = doAuthJSON(t, r, http.MethodGet, "/codes/"+created.ID, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got Code
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "package main", got.Body)
}

func TestHandler_CrossOwnerIsForbidden(t *testing.T) {
	r, cfg := codeTestEngine(t, NewMemoryRepository())
	owner := issueFor(t, cfg, "owner-1", models.RoleUser, time.Hour)
	stranger := issueFor(t, cfg, "stranger", models.RoleUser, time.Hour)

	w := doAuthJSON(t, r, http.MethodPost, "/codes", owner, gin.H{"language": "go", "body": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created Code
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// listing stays open to any authenticated user
	w = doAuthJSON(t, r, http.MethodGet, "/codes", stranger, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, gin.H{"body": "stolen"}},
		{http.MethodDelete, nil},
	} {
		w = doAuthJSON(t, r, tc.method, "/codes/"+created.ID, stranger, tc.body)
		require.Equal(t, http.StatusForbidden, w.Code, "%s as stranger", tc.method)
		assert.Equal(t, "Forbidden", errMessage(t, w))
	}

	// record is untouched afterwards
	w = doAuthJSON(t, r, http.MethodGet, "/codes/"+created.ID, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_AdminOverridesOwnership(t *testing.T) {
	r, cfg := codeTestEngine(t, NewMemoryRepository())
	owner := issueFor(t, cfg, "owner-1", models.RoleUser, time.Hour)
	admin := issueFor(t, cfg, "admin-1", models.RoleAdmin, time.Hour)

	w := doAuthJSON(t, r, http.MethodPost, "/codes", owner, gin.H{"language": "go", "body": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created Code
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doAuthJSON(t, r, http.MethodPatch, "/codes/"+created.ID, admin, gin.H{"language": "python"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doAuthJSON(t, r, http.MethodDelete, "/codes/"+created.ID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doAuthJSON(t, r, http.MethodGet, "/codes/"+created.ID, owner, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "code not found", errMessage(t, w))
}

// countingRepo records every call so tests can prove storage was never
// reached when the gate rejects a request.
type countingRepo struct {
	*MemoryRepository
	calls int
}

func (c *countingRepo) FindByID(ctx context.Context, id string) (*Code, error) {
	c.calls++
	return c.MemoryRepository.FindByID(ctx, id)
}

func (c *countingRepo) Update(ctx context.Context, id string, patch Patch) (*Code, error) {
	c.calls++
	return c.MemoryRepository.Update(ctx, id, patch)
}

func TestHandler_ExpiredTokenNeverReachesStorage(t *testing.T) {
	repo := &countingRepo{MemoryRepository: NewMemoryRepository()}
	r, cfg := codeTestEngine(t, repo)
	expired := issueFor(t, cfg, "owner-1", models.RoleUser, -time.Minute)

	w := doAuthJSON(t, r, http.MethodPatch, "/codes/some-id", expired, gin.H{"body": "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authentication required", errMessage(t, w))
	assert.Zero(t, repo.calls, "rejected request must not touch the repository")
}

func TestHandler_DeleteIdempotence(t *testing.T) {
	r, cfg := codeTestEngine(t, NewMemoryRepository())
	owner := issueFor(t, cfg, "owner-1", models.RoleUser, time.Hour)

	w := doAuthJSON(t, r, http.MethodPost, "/codes", owner, gin.H{"language": "go", "body": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created Code
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doAuthJSON(t, r, http.MethodDelete, "/codes/"+created.ID, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doAuthJSON(t, r, http.MethodDelete, "/codes/"+created.ID, owner, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "code not found", errMessage(t, w))
}
