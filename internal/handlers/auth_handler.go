package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/stilevo/stilevo-api/internal/config"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/middleware"
	"github.com/stilevo/stilevo-api/internal/state"
)

type AuthHandler struct {
	config *config.Config
	state  *state.Store
}

func NewAuthHandler(cfg *config.Config, st *state.Store) *AuthHandler {
	return &AuthHandler{config: cfg, state: st}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TelegramAuthRequest struct {
	ID        int64  `json:"id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// --------- Handlers ---------

// Login authenticates the single master and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid credentials payload.")
		return
	}

	if req.Email != h.config.MasterEmail ||
		bcrypt.CompareHashAndPassword(h.config.MasterPasswordHash, []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
		return
	}

	claims := jwt.MapClaims{
		"sub":  req.Email,
		"role": middleware.RoleMaster,
		"exp":  time.Now().Add(72 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(h.config.JWTSecret))
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not issue token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// TelegramAuth bootstraps a client from an external Telegram identity.
// Unknown identities are auto-provisioned with a zero visit count. The
// ?role=client query flag (direct-link mode) bypasses role selection.
func (h *AuthHandler) TelegramAuth(c *gin.Context) {
	var req TelegramAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid identity payload.")
		return
	}

	client := h.state.ProvisionTelegram(req.ID, req.FirstName, req.LastName, req.Username)

	mode := "select"
	if c.Query("role") == "client" {
		mode = "client"
	}

	c.JSON(http.StatusOK, gin.H{
		"client": client,
		"mode":   mode,
	})
}
