// Package integration provides end-to-end tests for the key vault API against
// both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/keyvault/internal/app"
	"github.com/allisson/keyvault/internal/config"
	keysDTO "github.com/allisson/keyvault/internal/keys/http/dto"
	"github.com/allisson/keyvault/internal/testutil"
)

//nolint:gosec // test signing secret
const testSigningSecret = "integration-signing-secret-with-enough-entropy"

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	tokens    map[string]string
	dbDriver  string
}

// makeRequest performs an HTTP request as owner (or anonymously when owner is
// empty) and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	owner string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if owner != "" {
		req.Header.Set("Authorization", "Bearer "+ctx.token(t, owner))
	}

	client := &http.Client{Timeout: 30 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// token returns a cached bearer token for owner.
func (ctx *integrationTestContext) token(t *testing.T, owner string) string {
	t.Helper()

	if token, ok := ctx.tokens[owner]; ok {
		return token
	}

	tokenService, err := ctx.container.TokenService(context.Background())
	require.NoError(t, err, "failed to get token service")

	token, err := tokenService.Issue(owner, time.Hour)
	require.NoError(t, err, "failed to issue token")

	ctx.tokens[owner] = token
	return token
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		AuthSigningSecret:    testSigningSecret,
		AuthTokenExpiration:  time.Hour,
		KMSProvider:          "localsecrets",
		KeyWrapAlgorithm:     "aes-256-gcm",
		PasswordHashPolicy:   "interactive",
		KeygenMaxWorkers:     2,
	}

	container := app.NewContainer(cfg)

	httpServer, err := container.HTTPServer(context.Background())
	require.NoError(t, err, "failed to get http server")

	server := httptest.NewServer(httpServer.GetHandler())

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    server,
		tokens:    make(map[string]string),
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest releases the server, container and database.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	ctx.server.Close()
	if err := ctx.container.Shutdown(context.Background()); err != nil {
		t.Logf("Warning: container shutdown returned error: %v", err)
	}
	if ctx.dbDriver == "postgres" {
		testutil.CleanupPostgresDB(t, ctx.db)
	} else {
		testutil.CleanupMySQLDB(t, ctx.db)
	}
	testutil.TeardownDB(t, ctx.db)
}

func decodeErrorCode(t *testing.T, body []byte) string {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &response))
	code, _ := response["code"].(string)
	return code
}

func TestIntegration_KeyLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
		skip     func(t *testing.T)
	}{
		{name: "PostgreSQL", dbDriver: "postgres", skip: testutil.SkipIfNoPostgres},
		{name: "MySQL", dbDriver: "mysql", skip: testutil.SkipIfNoMySQL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.skip(t)

			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			const owner = "owner-alice"
			const stranger = "owner-bob"
			var keyID string

			t.Run("01_Health", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			})

			t.Run("02_Unauthenticated", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/keys", nil, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("03_CreateValidation", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/keys", map[string]string{
					"title":            "",
					"algorithm":        "bogus",
					"password":         "",
					"confirm_password": "x",
				}, owner)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
				assert.Equal(t, "title_required", decodeErrorCode(t, body))

				resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/keys", map[string]string{
					"title":            "signing",
					"algorithm":        "ecc",
					"password":         "correct horse",
					"confirm_password": "battery staple",
				}, owner)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
				assert.Equal(t, "password_mismatch", decodeErrorCode(t, body))
			})

			t.Run("04_Create", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/keys", map[string]string{
					"title":            "signing",
					"algorithm":        "ecc",
					"password":         "correct horse",
					"confirm_password": "correct horse",
				}, owner)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response keysDTO.KeyResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "signing", response.Title)
				assert.Equal(t, "ecc", response.Algorithm)
				assert.Equal(t, "active", response.Status)
				assert.NotContains(t, string(body), "PRIVATE KEY")

				keyID = response.ID
				_, err := uuid.Parse(keyID)
				require.NoError(t, err)
			})

			t.Run("05_List", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/keys?limit=10", nil, owner)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response keysDTO.ListKeysResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response.Data, 1)
				assert.Equal(t, keyID, response.Data[0].ID)

				resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/keys", nil, stranger)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Empty(t, response.Data)
			})

			t.Run("06_PublicKey", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/keys/"+keyID+"/public-key", nil, owner)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response keysDTO.PublicKeyResponse
				require.NoError(t, json.Unmarshal(body, &response))
				block, _ := pem.Decode([]byte(response.PublicKey))
				require.NotNil(t, block)
				assert.Equal(t, "PUBLIC KEY", block.Type)
			})

			t.Run("07_Decrypt", func(t *testing.T) {
				path := "/v1/keys/" + keyID + "/decrypt"

				resp, body := ctx.makeRequest(t, http.MethodPost, path, map[string]string{
					"password": "wrong",
				}, owner)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				assert.Equal(t, "wrong_password", decodeErrorCode(t, body))

				resp, _ = ctx.makeRequest(t, http.MethodPost, path, map[string]string{
					"password": "correct horse",
				}, stranger)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				resp, body = ctx.makeRequest(t, http.MethodPost, path, map[string]string{
					"password": "correct horse",
				}, owner)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response keysDTO.DecryptKeyResponse
				require.NoError(t, json.Unmarshal(body, &response))
				block, _ := pem.Decode([]byte(response.PrivateKey))
				require.NotNil(t, block)
				assert.Equal(t, "EC PRIVATE KEY", block.Type)
			})

			t.Run("08_Rename", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPatch, "/v1/keys/"+keyID, map[string]string{
					"title": "renamed",
				}, owner)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var response keysDTO.KeyResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "renamed", response.Title)

				resp, _ = ctx.makeRequest(t, http.MethodPatch, "/v1/keys/"+keyID, map[string]string{
					"title": "hijacked",
				}, stranger)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			})

			t.Run("09_ToggleStatus", func(t *testing.T) {
				path := "/v1/keys/" + keyID + "/toggle-status"

				resp, body := ctx.makeRequest(t, http.MethodPost, path, nil, owner)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				var response keysDTO.KeyResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "inactive", response.Status)

				resp, body = ctx.makeRequest(t, http.MethodPost, path, nil, owner)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "active", response.Status)
			})

			t.Run("10_Delete", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/v1/keys/"+keyID, nil, stranger)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/keys/"+keyID, nil, owner)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/keys/"+keyID+"/public-key", nil, owner)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}
