package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uni-meet/internal/model"
	"uni-meet/pkg/config"
	"uni-meet/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig(t *testing.T) {
	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	gin.SetMode(gin.TestMode)
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(GinZapLogger())
	handlers = append(handlers, func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "userID not set"})
			return
		}
		role, _ := c.Get(ContextRole)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	r.GET("/test", handlers...)
	return r
}

func expiredToken(t *testing.T) string {
	now := time.Now()
	claims := utils.Claims{
		UserID: 1,
		Role:   string(model.RoleRegular),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.GlobalConfig.JWT.Secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	setupTestConfig(t)

	validToken, err := utils.GenerateToken(7, string(model.RoleManager))
	require.NoError(t, err)

	tests := []struct {
		name       string
		setupAuth  func(*http.Request)
		wantStatus int
	}{
		{
			name: "Valid token",
			setupAuth: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+validToken)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing auth header",
			setupAuth:  func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Invalid auth format",
			setupAuth: func(r *http.Request) {
				r.Header.Set("Authorization", "InvalidFormat token")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Invalid token",
			setupAuth: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer invalid.token.here")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired token",
			setupAuth: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+expiredToken(t))
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(AuthMiddleware())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.setupAuth(req)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"user_id":7,"role":"Manager"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	setupTestConfig(t)

	tests := []struct {
		name       string
		role       model.Role
		wantStatus int
	}{
		{"Admin allowed", model.RoleAdmin, http.StatusOK},
		{"Manager allowed", model.RoleManager, http.StatusOK},
		{"Regular forbidden", model.RoleRegular, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := utils.GenerateToken(3, string(tt.role))
			require.NoError(t, err)

			r := newTestRouter(AuthMiddleware(), RequireRoles(model.RoleManager, model.RoleAdmin))
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireRoles_WithoutAuth(t *testing.T) {
	setupTestConfig(t)

	r := newTestRouter(RequireRoles(model.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
