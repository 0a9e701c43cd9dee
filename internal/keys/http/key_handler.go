// Package http provides HTTP handlers for key vault operations.
// Every route acts on behalf of the authenticated owner resolved by the
// authentication middleware; records of other owners are never visible.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/keyvault/internal/errors"
	authHTTP "github.com/allisson/keyvault/internal/auth/http"
	"github.com/allisson/keyvault/internal/httputil"
	"github.com/allisson/keyvault/internal/keys/http/dto"
	keysUseCase "github.com/allisson/keyvault/internal/keys/usecase"
	customValidation "github.com/allisson/keyvault/internal/validation"
)

// KeyHandler handles HTTP requests for key vault operations.
type KeyHandler struct {
	keyUseCase keysUseCase.KeyUseCase
	logger     *slog.Logger
}

// NewKeyHandler creates a new key handler with required dependencies.
func NewKeyHandler(keyUseCase keysUseCase.KeyUseCase, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{
		keyUseCase: keyUseCase,
		logger:     logger,
	}
}

// CreateHandler generates and stores a new password-protected keypair.
// POST /v1/keys - Returns 201 Created with the record summary.
func (h *KeyHandler) CreateHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	var req dto.CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	record, err := h.keyUseCase.Create(c.Request.Context(), owner, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSummaryToResponse(record.Summary()))
}

// ListHandler lists the caller's records, newest first.
// GET /v1/keys?offset=0&limit=50 - Returns 200 OK without key material.
func (h *KeyHandler) ListHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	summaries, err := h.keyUseCase.ListByOwner(c.Request.Context(), owner, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummariesToListResponse(summaries))
}

// GetPublicKeyHandler exports the PEM public key of a record.
// GET /v1/keys/:id/public-key - Returns 200 OK.
func (h *KeyHandler) GetPublicKeyHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	id, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	record, err := h.keyUseCase.GetPublicKey(c.Request.Context(), owner, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToPublicKeyResponse(record))
}

// DecryptHandler unlocks a record's private key with its password.
// POST /v1/keys/:id/decrypt - Returns 200 OK with the PEM private key.
func (h *KeyHandler) DecryptHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	id, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.DecryptKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	key, err := h.keyUseCase.DecryptPrivateKey(c.Request.Context(), owner, id, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer key.Zero()

	c.JSON(http.StatusOK, dto.MapDecryptedKeyToResponse(key))
}

// RenameHandler changes the title of a record.
// PATCH /v1/keys/:id - Returns 200 OK with the updated summary.
func (h *KeyHandler) RenameHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	id, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.RenameKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	summary, err := h.keyUseCase.Rename(c.Request.Context(), owner, id, req.Title)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummaryToResponse(summary))
}

// ToggleStatusHandler flips a record between active and inactive.
// POST /v1/keys/:id/toggle-status - Returns 200 OK with the updated summary.
func (h *KeyHandler) ToggleStatusHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	id, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	summary, err := h.keyUseCase.ToggleStatus(c.Request.Context(), owner, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummaryToResponse(summary))
}

// DeleteHandler permanently removes a record.
// DELETE /v1/keys/:id - Returns 204 No Content.
func (h *KeyHandler) DeleteHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	id, err := httputil.ParseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.keyUseCase.Delete(c.Request.Context(), owner, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// owner writes a 401 and returns false when no authenticated owner is present.
func (h *KeyHandler) owner(c *gin.Context) (string, bool) {
	owner, ok := authHTTP.GetOwner(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return "", false
	}
	return owner, true
}
