package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-upload-secret")

func newRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/analyze-poster", UploadMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("uploader"))
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze-poster", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUploadMiddleware_Disabled(t *testing.T) {
	rec := do(newRouter(nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadMiddleware_ValidToken(t *testing.T) {
	token, err := GenerateToken("events-team", time.Hour, secret)
	require.NoError(t, err)

	rec := do(newRouter(secret), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "events-team", rec.Body.String())
}

func TestUploadMiddleware_Rejects(t *testing.T) {
	expired, err := GenerateToken("events-team", -time.Minute, secret)
	require.NoError(t, err)
	foreign, err := GenerateToken("events-team", time.Hour, []byte("other-secret"))
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString(secret)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"garbage":        "Bearer not-a-token",
		"expired":        "Bearer " + expired,
		"wrong secret":   "Bearer " + foreign,
		"no expiry":      "Bearer " + noExp,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(newRouter(secret), header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	_, err := GenerateToken("x", time.Hour, nil)
	assert.Error(t, err)
}
