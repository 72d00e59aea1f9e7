package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-auth/internal/auth/credentials"
	"storefront-auth/internal/auth/handler"
	"storefront-auth/internal/auth/provider"
	"storefront-auth/internal/auth/resolver"
	"storefront-auth/internal/identity/identitytest"
	"storefront-auth/internal/middleware"
	"storefront-auth/internal/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeRevoker records revoked jtis in memory.
type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]bool)}
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[jti], nil
}

type fixture struct {
	router      *gin.Engine
	store       *identitytest.FakeStore
	revocations *fakeRevoker
}

// newFixture wires the handler exactly the way the app does, minus
// the OAuth provider (no registered providers).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := identitytest.NewFakeStore()
	tokens := session.NewIssuer(testSecret, time.Hour)
	revocations := newFakeRevoker()

	h := handler.NewHandler(
		provider.NewRegistry(),
		credentials.NewService(store),
		resolver.NewStoreReconciler(store),
		tokens,
		revocations,
	)

	router := gin.New()
	h.RegisterRoutes(router)

	protected := router.Group("/")
	protected.Use(middleware.GinRequireAuth(middleware.NewAuthMiddleware(tokens, revocations)))
	protected.GET("/auth/session", h.Session)

	return &fixture{
		router:      router,
		store:       store,
		revocations: revocations,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestRegister(t *testing.T) {
	t.Run("issues a session on success", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(t, http.MethodPost, "/auth/register", gin.H{
			"email":    "a@x.com",
			"fullname": "A",
			"password": "secret-pass",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		cookie := sessionCookie(t, w)
		assert.NotEmpty(t, cookie.Value)
	})

	t.Run("conflict on duplicate email", func(t *testing.T) {
		f := newFixture(t)

		body := gin.H{"email": "a@x.com", "fullname": "A", "password": "secret-pass"}
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/auth/register", body).Code)

		w := f.do(t, http.MethodPost, "/auth/register", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects malformed request", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(t, http.MethodPost, "/auth/register", gin.H{"email": "a@x.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	register := func(t *testing.T, f *fixture) {
		t.Helper()
		w := f.do(t, http.MethodPost, "/auth/register", gin.H{
			"email":    "a@x.com",
			"fullname": "A",
			"password": "secret-pass",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("valid credentials", func(t *testing.T) {
		f := newFixture(t)
		register(t, f)

		w := f.do(t, http.MethodPost, "/auth/login", gin.H{
			"email":    "a@x.com",
			"password": "secret-pass",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, sessionCookie(t, w).Value)
	})

	t.Run("wrong password and unknown email answer identically", func(t *testing.T) {
		f := newFixture(t)
		register(t, f)

		wrong := f.do(t, http.MethodPost, "/auth/login", gin.H{
			"email":    "a@x.com",
			"password": "wrong",
		})
		missing := f.do(t, http.MethodPost, "/auth/login", gin.H{
			"email":    "nobody@x.com",
			"password": "secret-pass",
		})

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, missing.Code)
		assert.JSONEq(t, wrong.Body.String(), missing.Body.String())
	})
}

func TestSession(t *testing.T) {
	t.Run("returns materialized view for a valid token", func(t *testing.T) {
		f := newFixture(t)

		registered := f.do(t, http.MethodPost, "/auth/register", gin.H{
			"email":    "a@x.com",
			"fullname": "A",
			"password": "secret-pass",
		})
		cookie := sessionCookie(t, registered)

		w := f.do(t, http.MethodGet, "/auth/session", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			User map[string]any `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "a@x.com", resp.User["email"])
		assert.Equal(t, "A", resp.User["fullname"])
		assert.Equal(t, "member", resp.User["role"])
		assert.NotContains(t, resp.User, "image")
	})

	t.Run("rejects missing token", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(t, http.MethodGet, "/auth/session", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects forged token", func(t *testing.T) {
		f := newFixture(t)

		forged := &http.Cookie{Name: session.CookieName, Value: "forged.token.value"}
		w := f.do(t, http.MethodGet, "/auth/session", nil, forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes the session and clears the cookie", func(t *testing.T) {
		f := newFixture(t)

		registered := f.do(t, http.MethodPost, "/auth/register", gin.H{
			"email":    "a@x.com",
			"fullname": "A",
			"password": "secret-pass",
		})
		cookie := sessionCookie(t, registered)

		w := f.do(t, http.MethodPost, "/auth/logout", nil, cookie)
		require.Equal(t, http.StatusNoContent, w.Code)

		cleared := sessionCookie(t, w)
		assert.Empty(t, cleared.Value)

		// The revoked token no longer opens the session endpoint.
		after := f.do(t, http.MethodGet, "/auth/session", nil, cookie)
		assert.Equal(t, http.StatusUnauthorized, after.Code)
	})

	t.Run("idempotent without a session", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(t, http.MethodPost, "/auth/logout", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestOAuthLogin_UnknownProvider(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/oauth/login/unknown", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
