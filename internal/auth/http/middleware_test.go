package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
	"github.com/allisson/keyvault/internal/auth/http/mocks"
	"github.com/allisson/keyvault/internal/httputil"
)

func newAuthRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(AuthenticationMiddleware(verifier, logger))
	router.GET("/protected", func(c *gin.Context) {
		ownerID, ok := GetOwner(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"owner_id": ownerID})
	})
	return router
}

func TestAuthenticationMiddleware(t *testing.T) {
	identity := &authDomain.Identity{OwnerID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("valid token", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}
		verifier.On("Verify", "good-token").Return(identity, nil).Times(3)
		router := newAuthRouter(verifier)

		for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", scheme+" good-token")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, scheme)
			assert.JSONEq(t, `{"owner_id":"user-1"}`, w.Body.String())
		}
		verifier.AssertExpectations(t)
	})

	rejected := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "scheme only", header: "Bearer"},
		{name: "empty token", header: "Bearer    "},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mocks.MockTokenVerifier{}
			router := newAuthRouter(verifier)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var response httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "unauthorized", response.Error)
			assert.Equal(t, "unauthenticated", response.Code)
			verifier.AssertNotCalled(t, "Verify", mock.Anything)
		})
	}

	t.Run("invalid token", func(t *testing.T) {
		verifier := &mocks.MockTokenVerifier{}
		verifier.On("Verify", "bad-token").Return(nil, authDomain.ErrInvalidCredential).Once()
		router := newAuthRouter(verifier)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "invalid_credential", response.Code)
		verifier.AssertExpectations(t)
	})
}

func TestGetOwner(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetOwner(req.Context())
	assert.False(t, ok)

	ctx := WithIdentity(req.Context(), &authDomain.Identity{})
	_, ok = GetOwner(ctx)
	assert.False(t, ok, "an identity without owner is not authenticated")

	ctx = WithIdentity(req.Context(), &authDomain.Identity{OwnerID: "user-1"})
	ownerID, ok := GetOwner(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", ownerID)

	identity, ok := GetIdentity(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-1", identity.OwnerID)
}
