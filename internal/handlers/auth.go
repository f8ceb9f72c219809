package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/auth"
	"github.com/rubenhtun/luxora-store/internal/config"
	"github.com/rubenhtun/luxora-store/internal/logger"
	"github.com/rubenhtun/luxora-store/internal/user"
)

type AuthHandler struct {
	users    user.Service
	sessions auth.SessionRepository
	cfg      *config.Config
}

func NewAuthHandler(users user.Service, sessions auth.SessionRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cfg: cfg}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()

	u, err := h.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"message": user.ErrEmailExists.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create account"})
		return
	}

	if err := h.issueSession(c, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": u.Profile()})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()

	u, err := h.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": user.ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	if err := h.issueSession(c, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to start session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u.Profile()})
}

// Refresh rotates the access token from a valid refresh session.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	cookie, err := c.Cookie(auth.RefreshTokenCookie)
	if err != nil || cookie == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing refresh token"})
		return
	}

	s, err := h.sessions.Find(ctx, cookie)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			auth.ClearSessionCookies(c)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "refresh token expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "refresh failed"})
		return
	}

	u, err := h.users.GetByID(ctx, s.UserID.Hex())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "refresh token expired"})
		return
	}

	accessToken, err := auth.GenerateAccessToken(u.ID.Hex(), u.Email, h.cfg.AccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "refresh failed"})
		return
	}

	auth.SetAccessCookie(c, accessToken, h.cfg.AccessTokenTTL)
	c.JSON(http.StatusOK, gin.H{"message": "token refreshed"})
}

// Logout revokes the refresh session. Revocation failures are logged,
// the cookies are cleared regardless.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if cookie, err := c.Cookie(auth.RefreshTokenCookie); err == nil && cookie != "" {
		if err := h.sessions.Delete(ctx, cookie); err != nil {
			logger.FromCtx(ctx).Warn("failed to revoke session", zap.Error(err))
		}
	}

	auth.ClearSessionCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) issueSession(c *gin.Context, u user.User) error {
	ctx := c.Request.Context()

	accessToken, err := auth.GenerateAccessToken(u.ID.Hex(), u.Email, h.cfg.AccessTokenTTL)
	if err != nil {
		return err
	}

	s, err := h.sessions.Create(ctx, u.ID, h.cfg.RefreshTokenTTL)
	if err != nil {
		return err
	}

	auth.SetSessionCookies(c, accessToken, s.ID, h.cfg.AccessTokenTTL, h.cfg.RefreshTokenTTL)
	return nil
}
