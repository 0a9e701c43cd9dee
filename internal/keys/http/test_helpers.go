package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
	authHTTP "github.com/allisson/keyvault/internal/auth/http"
)

// createTestContext creates a test Gin context with the given request body.
// A non-empty owner is attached as the authenticated identity.
func createTestContext(
	method, path string,
	body interface{},
	owner string,
) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = []byte(b)
	default:
		reqBody, _ = json.Marshal(b)
	}

	c.Request = httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	c.Request.Header.Set("Content-Type", "application/json")

	if owner != "" {
		ctx := authHTTP.WithIdentity(c.Request.Context(), &authDomain.Identity{OwnerID: owner})
		c.Request = c.Request.WithContext(ctx)
	}

	return c, w
}
