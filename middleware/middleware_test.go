package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"medlink/models"
	"medlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetLogger(zap.NewNop())
	utils.SetJWTSecret("middleware-secret")
}

type memStore struct {
	mu       sync.Mutex
	accounts map[string]bool
	revoked  map[string]bool
}

func newMemStore() *memStore {
	return &memStore{accounts: map[string]bool{}, revoked: map[string]bool{}}
}

func (s *memStore) GetAccount(_ context.Context, claims *utils.TokenClaims) (*utils.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accounts[claims.Subject] {
		return claims, nil
	}
	return nil, nil
}

func (s *memStore) SetAccount(_ context.Context, claims *utils.TokenClaims, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[claims.Subject] = true
	return nil
}

func (s *memStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[token], nil
}

type countingChecker struct {
	known map[string]bool
	calls int
}

func (c *countingChecker) Exists(_ context.Context, _ models.Role, id string) (bool, error) {
	c.calls++
	return c.known[id], nil
}

func token(t *testing.T, id string, role models.Role) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, id+"@example.com", role, time.Hour)
	require.NoError(t, err)
	return tok
}

func protectedRouter(a *Authenticator, roles ...models.Role) *gin.Engine {
	r := gin.New()
	r.GET("/me", a.RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": AccountID(c), "role": Role(c)})
	})
	return r
}

func get(r http.Handler, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	checker := &countingChecker{known: map[string]bool{"P": true, "D": true}}
	store := newMemStore()
	r := protectedRouter(&Authenticator{Store: store, Accounts: checker}, models.RolePatient)

	w := get(r, token(t, "P", models.RolePatient))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"P"`)
	assert.Contains(t, w.Body.String(), `"role":"patient"`)

	// The second request is answered from the cache.
	get(r, token(t, "P", models.RolePatient))
	assert.Equal(t, 1, checker.calls)

	assert.Equal(t, http.StatusForbidden, get(r, token(t, "D", models.RoleDoctor)).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, token(t, "ghost", models.RolePatient)).Code)
}

func TestRequireRoleRejectsRevokedToken(t *testing.T) {
	store := newMemStore()
	r := protectedRouter(&Authenticator{Store: store, Accounts: &countingChecker{known: map[string]bool{"P": true}}}, models.RolePatient)

	tok := token(t, "P", models.RolePatient)
	require.Equal(t, http.StatusOK, get(r, tok).Code)
	store.revoked[tok] = true
	assert.Equal(t, http.StatusUnauthorized, get(r, tok).Code)
}

func TestRequireRoleWithoutStore(t *testing.T) {
	checker := &countingChecker{known: map[string]bool{"A": true}}
	r := protectedRouter(&Authenticator{Accounts: checker}, models.RoleAdmin, models.RoleDoctor)
	assert.Equal(t, http.StatusOK, get(r, token(t, "A", models.RoleAdmin)).Code)
	assert.Equal(t, http.StatusOK, get(r, token(t, "A", models.RoleAdmin)).Code)
	assert.Equal(t, 2, checker.calls)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("2.2.2.2"))
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `medlink_http_requests_total{method="GET",path="/ping",status="200"} 1`), body)
}
