package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-quest/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

const (
	testSecret = "test-secret-middleware"
	testIssuer = "test-issuer"
)

func newProtectedRouter(tokens *services.TokenService) *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	router.GET("/protected", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		playerID, ok := GetPlayerID(c)
		if !ok {
			c.String(http.StatusInternalServerError, "player id not bound")
			return
		}
		c.String(http.StatusOK, "Hello "+userID+" playing "+playerID)
	})
	return router
}

func seededAccounts(t *testing.T) *repository.InMemoryAccountRepository {
	t.Helper()
	accounts := repository.NewInMemoryAccountRepository()
	account, err := domain.NewAccount("user-123", "hero@kanso.app", "player-9", time.Now())
	require.NoError(t, err)
	require.NoError(t, accounts.Create(context.Background(), account))
	return accounts
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	accounts := seededAccounts(t)
	tokens := services.NewTokenService(testSecret, testIssuer, time.Hour, accounts)
	router := newProtectedRouter(tokens)

	valid, err := tokens.GenerateToken("user-123")
	require.NoError(t, err)

	forged, _ := services.NewTokenService("wrong-secret", testIssuer, time.Hour, accounts).GenerateToken("user-123")
	expired, _ := services.NewTokenService(testSecret, testIssuer, -time.Second, accounts).GenerateToken("user-123")
	ghost, _ := tokens.GenerateToken("ghost")

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "Success: Valid token binds the player", header: "Bearer " + valid, wantCode: http.StatusOK, wantBody: "Hello user-123 playing player-9"},
		{name: "Success: Scheme is case insensitive", header: "bearer " + valid, wantCode: http.StatusOK},
		{name: "Fail: Missing header", header: "", wantCode: http.StatusUnauthorized, wantBody: "missing or malformed bearer token"},
		{name: "Fail: Scheme only", header: "Bearer", wantCode: http.StatusUnauthorized},
		{name: "Fail: Scheme with blank token", header: "Bearer   ", wantCode: http.StatusUnauthorized},
		{name: "Fail: Wrong scheme", header: "Token " + valid, wantCode: http.StatusUnauthorized},
		{name: "Fail: Tampered signature", header: "Bearer " + forged, wantCode: http.StatusUnauthorized, wantBody: "invalid or expired token"},
		{name: "Fail: Expired token", header: "Bearer " + expired, wantCode: http.StatusUnauthorized, wantBody: "invalid or expired token"},
		{name: "Fail: Account no longer exists", header: "Bearer " + ghost, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("  Bearer abc.def  ")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = bearerToken("Basic dXNlcjpwYXNz")
	assert.False(t, ok)
}
