package handlers

import (
	"encoding/json"
	"net/http"

	"markbase-backend/application/services"
	"markbase-backend/pkg/auth"
	apperrors "markbase-backend/pkg/errors"
	"markbase-backend/pkg/utils"

	"go.uber.org/zap"
)

// TempBookmarkHandler handles temporary-bookmark HTTP requests. Saves run
// the enrichment pipeline before persisting.
type TempBookmarkHandler struct {
	service *services.TempBookmarkService
	logger  *zap.Logger
}

// NewTempBookmarkHandler creates a new temp bookmark handler
func NewTempBookmarkHandler(service *services.TempBookmarkService, logger *zap.Logger) *TempBookmarkHandler {
	return &TempBookmarkHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /tempBookmarks
func (h *TempBookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := h.service.List(r.Context(), userCtx.UserID)
	if err != nil {
		h.logger.Error("Failed to list temp bookmarks",
			zap.String("ownerID", userCtx.UserID),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "Failed to list temp bookmarks")
		return
	}

	h.respondJSON(w, http.StatusOK, records)
}

// Save handles POST and PUT /tempBookmarks
func (h *TempBookmarkHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	saved, enriched, err := h.service.Save(r.Context(), userCtx.UserID, req.toDomain())
	if err != nil {
		h.respondServiceError(w, err, "Failed to save temp bookmark", userCtx.UserID)
		return
	}

	if !enriched {
		h.logger.Info("Temp bookmark saved without enrichment",
			zap.String("ownerID", userCtx.UserID),
			zap.String("bookmarkID", saved.ID),
		)
	}

	h.respondJSON(w, http.StatusCreated, saved)
}

// Delete handles DELETE /tempBookmarks
func (h *TempBookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.Delete(r.Context(), userCtx.UserID, req.ID); err != nil {
		h.respondServiceError(w, err, "Failed to delete temp bookmark", userCtx.UserID)
		return
	}

	h.respondJSON(w, http.StatusOK, DeletedResponse{Deleted: []string{req.ID}})
}

func (h *TempBookmarkHandler) respondServiceError(w http.ResponseWriter, err error, fallback, ownerID string) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		switch {
		case apperrors.IsValidation(err):
			h.respondError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.IsForbidden(err):
			h.respondError(w, http.StatusForbidden, appErr.Message)
			return
		}
	}

	h.logger.Error(fallback,
		zap.String("ownerID", ownerID),
		zap.Error(err),
	)
	h.respondError(w, http.StatusInternalServerError, fallback)
}

func (h *TempBookmarkHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *TempBookmarkHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
