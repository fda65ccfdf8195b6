package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-access-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func serveWithAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *AuthenticatedUser) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var seen *AuthenticatedUser
	handler := AuthMiddleware(testSecret, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		seen = &user
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "42",
		"unm": "agent",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rr, user := serveWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, user)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "agent", user.Username)
}

func TestAuthMiddleware_NumericSubject(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": 7})

	rr, user := serveWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, user)
	assert.Equal(t, int64(7), user.ID)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "1", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	wrongSecret := signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "1"})
	badSubject := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "not-a-number"})

	tests := []struct {
		name   string
		header string
	}{
		{"MissingHeader", ""},
		{"WrongScheme", "ApiKey abc"},
		{"Malformed", "Bearer"},
		{"Expired", "Bearer " + expired},
		{"WrongSecret", "Bearer " + wrongSecret},
		{"NonNumericSubject", "Bearer " + badSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, user := serveWithAuth(t, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Nil(t, user)
		})
	}
}
