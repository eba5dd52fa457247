package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/user/cinestream/internal/service"
)

type stubAuth map[string]*service.Claims

func (s stubAuth) Authenticate(_ context.Context, access string) (*service.Claims, error) {
	if claims, ok := s[access]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := stubAuth{"good": {UserID: 42, Username: "alice"}}
	r.GET("/me", RequireAuth(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "username": c.GetString(ctxUsername)})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := newEngine()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Token good", http.StatusUnauthorized},
		{"invalid", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":42,"username":"alice"}`, w.Body.String())
			}
		})
	}
}

func TestGetUserIDWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Zero(t, GetUserID(c))
}
