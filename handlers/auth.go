package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codebin/codebin/internal/apperror"
	"github.com/codebin/codebin/internal/config"
	"github.com/codebin/codebin/internal/sessions"
	"github.com/codebin/codebin/internal/tokens"
	"github.com/codebin/codebin/internal/users"
	"github.com/codebin/codebin/pkg/logger"
)

// LoginRequest identifies the user a token should be issued for. There is
// no password check: the user id is the credential.
type LoginRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// AuthHandler issues, refreshes and revokes tokens
type AuthHandler struct {
	cfg       *config.Config
	usersSvc  *users.Service
	sessions  *sessions.Service
	blacklist *sessions.Blacklist
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, bl *sessions.Blacklist) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessions: s, blacklist: bl}
}

// Register routes under /auth
func (h *AuthHandler) Register(r *gin.Engine) {
	a := r.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

// Login issues an access token and a refresh session for an existing user
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, apperror.NewValidation("user_id is required", err))
		return
	}

	u, err := h.usersSvc.Get(c.Request.Context(), req.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			// unknown user reads the same as any other credential failure
			abort(c, apperror.NewUnauthenticated("authentication failed", err))
			return
		}
		abort(c, err)
		return
	}

	access, err := tokens.Issue(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		abort(c, apperror.NewStorage("failed to create access token", err))
		return
	}
	refresh, err := h.sessions.CreateSession(c.Request.Context(), u.ID, h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		abort(c, apperror.NewStorage("failed to create session", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         u,
		"expiresIn":    int(h.cfg.JWT.AccessTokenTTL.Seconds()),
	})
}

// Refresh accepts a refresh token and returns a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, apperror.NewValidation("refresh_token is required", err))
		return
	}

	sess, err := h.sessions.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abort(c, apperror.NewStorage("failed to validate refresh token", err))
		return
	}
	if sess == nil {
		abort(c, apperror.NewUnauthenticated("authentication failed", nil))
		return
	}

	u, err := h.usersSvc.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		// the session outlived the user record
		abort(c, apperror.NewUnauthenticated("authentication failed", err))
		return
	}
	access, err := tokens.Issue(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		abort(c, apperror.NewStorage("failed to create access token", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken": access,
		"expiresIn":   int(h.cfg.JWT.AccessTokenTTL.Seconds()),
	})
}

// Logout invalidates the refresh session and blacklists the presented
// access token for its remaining lifetime
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, apperror.NewValidation("refresh_token is required", err))
		return
	}

	if raw, ok := bearerToken(c); ok {
		if claims, err := tokens.Verify(h.cfg, raw); err == nil && claims.ExpiresAt != nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := h.blacklist.Add(c.Request.Context(), raw, ttl); err != nil {
				logger.Warnf("failed to blacklist access token: %v", err)
			}
		}
	}

	if err := h.sessions.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
		abort(c, apperror.NewStorage("failed to remove session", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
