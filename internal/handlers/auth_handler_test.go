package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stilevo/stilevo-api/internal/config"
	"github.com/stilevo/stilevo-api/internal/middleware"
	"github.com/stilevo/stilevo-api/internal/state"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *state.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		MasterEmail:        "master@stilevo.app",
		MasterPasswordHash: hash,
	}

	st := state.New()
	h := NewAuthHandler(cfg, st)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/telegram", h.TelegramAuth)

	secured := r.Group("/", middleware.AuthMiddleware(cfg))
	secured.GET("/api/me/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r, st
}

func TestLoginIssuesUsableToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "master@stilevo.app",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/me/ping", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNoContent, w2.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "master@stilevo.app",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "intruder@stilevo.app",
		"password": "s3cret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecuredRouteRejectsMissingToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/me/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTelegramAuthProvisionsClient(t *testing.T) {
	r, st := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/telegram", gin.H{
		"id":         123456,
		"first_name": "Olena",
		"last_name":  "Rostova",
		"username":   "olena_r",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Client struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			VisitsCount int    `json:"visits_count"`
		} `json:"client"`
		Mode string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "123456", resp.Client.ID)
	assert.Equal(t, "Olena Rostova", resp.Client.Name)
	assert.Equal(t, 0, resp.Client.VisitsCount)
	assert.Equal(t, "select", resp.Mode)
	assert.Len(t, st.Clients(), 1)

	// direct client link skips role selection, same identity reused
	w = postJSON(t, r, "/api/auth/telegram?role=client", gin.H{
		"id":         123456,
		"first_name": "Olena",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "client", resp.Mode)
	assert.Len(t, st.Clients(), 1)
}
