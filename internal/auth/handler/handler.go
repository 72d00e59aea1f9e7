package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-auth/internal/auth/credentials"
	"storefront-auth/internal/auth/provider"
	"storefront-auth/internal/auth/resolver"
	"storefront-auth/internal/identity"
	"storefront-auth/internal/logger"
	"storefront-auth/internal/middleware"
	"storefront-auth/internal/session"
)

type Handler struct {
	providers         *provider.Registry
	credentialService *credentials.Service
	reconciler        resolver.Reconciler
	tokens            *session.Issuer
	revocations       session.Revoker
}

func NewHandler(
	registry *provider.Registry,
	credentialService *credentials.Service,
	reconciler resolver.Reconciler,
	tokens *session.Issuer,
	revocations session.Revoker,
) *Handler {
	return &Handler{
		providers:         registry,
		credentialService: credentialService,
		reconciler:        reconciler,
		tokens:            tokens,
		revocations:       revocations,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)
}

// issueSession signs a token for the record and hands it to the
// client as the session cookie.
func (h *Handler) issueSession(c *gin.Context, rec *identity.IdentityRecord) (*session.Claims, bool) {
	token, claims, err := h.tokens.Issue(rec)
	if err != nil {
		logger.Error("failed to issue session token", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return nil, false
	}

	session.SetCookie(c.Writer, token, claims.ExpiresAt.Time, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	return claims, true
}

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	errParam := c.Query("error")
	errDesc := c.Query("error_description")

	if errParam != "" {
		logger.Warn("oidc callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     errDesc,
		})

		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oidc callback missing code and error", nil)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	asserted, err := p.ExchangeCode(
		c.Request.Context(),
		code,
		codeVerifier,
	)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	// Link or provision. The token is built from the reconciled
	// record, not the provider claims: role and provenance come from
	// the store.
	rec, err := h.reconciler.Reconcile(c.Request.Context(), asserted)
	if err != nil {
		logger.Error("federated reconciliation failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "sign in failed",
		})
		return
	}

	claims, ok := h.issueSession(c, rec)
	if !ok {
		return
	}

	logger.Info("federated sign-in succeeded", map[string]any{
		"provider": providerName,
		"jti":      claims.ID,
		"ip":       c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "authenticated",
	})
}

func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// Revoke best-effort; an invalid or expired token needs no entry.
		if claims, err := h.tokens.Verify(cookie.Value); err == nil {
			_ = h.revocations.Revoke(
				c.Request.Context(),
				claims.ID,
				claims.ExpiresAt.Time,
			)
			logger.Info("session revoked", map[string]any{
				"jti": claims.ID,
				"ip":  c.ClientIP(),
			})
		}
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Idempotent response
	c.Status(http.StatusNoContent)
}

// Session returns the per-request projection of the verified token.
// Mounted behind the auth middleware.
func (h *Handler) Session(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      session.Materialize(claims),
		"expiresAt": claims.ExpiresAt.Time.Format(time.RFC3339),
	})
}
