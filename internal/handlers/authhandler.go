package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/auth"
	"github.com/justsurfingit/career-copilot/internal/dtos"
)

const bearerPrefix = "Bearer "

type AuthHandler struct {
	Sessions *auth.Manager
	logger   *zap.Logger
}

func NewAuthHandler(sessions *auth.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Sessions: sessions, logger: logger}
}

// Register is POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	err := h.Sessions.Register(*req.Username, *req.Password, req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dtos.MessageResponse{Msg: "User registered"})
	case errors.Is(err, auth.ErrDuplicateUsername):
		abortWithDetail(c, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, auth.ErrDuplicateEmail):
		abortWithDetail(c, http.StatusBadRequest, "Email already registered")
	default:
		h.logger.Error("register failed", zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// Login is POST /login. The username field may carry an email.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	token, err := h.Sessions.Login(*req.Username, *req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dtos.TokenResponse{AccessToken: token})
	case errors.Is(err, auth.ErrInvalidCredentials):
		abortWithDetail(c, http.StatusUnauthorized, "Invalid username/email or password")
	default:
		h.logger.Error("login failed", zap.Error(err))
		abortWithDetail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// Profile is GET /profile
func (h *AuthHandler) Profile(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	u, err := h.Sessions.Profile(token)
	if err != nil {
		abortWithDetail(c, http.StatusUnauthorized, "Invalid token")
		return
	}
	c.JSON(http.StatusOK, dtos.ProfileResponse{Username: u.Username, Email: u.Email})
}

// Logout is POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	if err := h.Sessions.Logout(token); err != nil {
		abortWithDetail(c, http.StatusUnauthorized, "Invalid token")
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Msg: "Logged out successfully"})
}

// bearerToken aborts with 401 unless the Authorization header has the
// Bearer scheme. The token ends at the next space.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		abortWithDetail(c, http.StatusUnauthorized, "Invalid auth header")
		return "", false
	}
	token, _, _ := strings.Cut(strings.TrimPrefix(header, bearerPrefix), " ")
	return token, true
}
