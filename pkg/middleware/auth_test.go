package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	claims map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

type fakeVerifier struct {
	claims map[string]interface{}
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fakeToken{claims: f.claims}, nil
}

func TestAuthMiddleware_RejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/p", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_SetsClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ver := &fakeVerifier{claims: map[string]interface{}{"sub": "u-1", "preferred_username": "director"}}
	r.GET("/p", AuthMiddleware(ver), func(c *gin.Context) {
		c.String(200, Subject(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer token123")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "director", w.Body.String())
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("anonymous passes through", func(t *testing.T) {
		r := gin.New()
		r.GET("/p", OptionalAuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
			c.String(200, "subject=%q", Subject(c))
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/p", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `subject=""`, w.Body.String())
	})

	t.Run("bad token still rejected", func(t *testing.T) {
		r := gin.New()
		r.GET("/p", OptionalAuthMiddleware(&fakeVerifier{err: errors.New("boom")}), func(c *gin.Context) { c.Status(200) })
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer bad")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token sets subject", func(t *testing.T) {
		r := gin.New()
		ver := &fakeVerifier{claims: map[string]interface{}{"sub": "u-1"}}
		r.GET("/p", OptionalAuthMiddleware(ver), func(c *gin.Context) {
			c.String(200, Subject(c))
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer good")
		r.ServeHTTP(w, req)
		require.Equal(t, "u-1", w.Body.String())
	})
}
