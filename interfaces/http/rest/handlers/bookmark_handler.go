package handlers

import (
	"encoding/json"
	"net/http"

	"markbase-backend/application/services"
	"markbase-backend/domain/bookmark"
	"markbase-backend/pkg/auth"
	apperrors "markbase-backend/pkg/errors"
	"markbase-backend/pkg/utils"

	"go.uber.org/zap"
)

// BookmarkHandler handles bookmark-related HTTP requests
type BookmarkHandler struct {
	service *services.BookmarkService
	logger  *zap.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(service *services.BookmarkService, logger *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		service: service,
		logger:  logger,
	}
}

// SaveBookmarkRequest represents the request body for saving a bookmark
type SaveBookmarkRequest struct {
	ID      string   `json:"_id,omitempty"`
	OwnerID string   `json:"ownerID,omitempty"`
	Path    string   `json:"path,omitempty" validate:"omitempty,max=1024"`
	URL     string   `json:"url,omitempty" validate:"omitempty,max=2048"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,max=25,dive,max=100"`
	Notes   string   `json:"notes,omitempty" validate:"omitempty,max=10000"`
}

func (r SaveBookmarkRequest) toDomain() bookmark.Bookmark {
	return bookmark.Bookmark{
		ID:      r.ID,
		OwnerID: r.OwnerID,
		Path:    r.Path,
		URL:     r.URL,
		Tags:    r.Tags,
		Notes:   r.Notes,
	}
}

// DeleteBookmarkRequest represents the request body for deleting a bookmark
type DeleteBookmarkRequest struct {
	ID string `json:"_id"`
}

// DeleteDirectoryRequest represents the request body for deleting a directory
type DeleteDirectoryRequest struct {
	Path string `json:"path"`
}

// DeletedResponse lists the IDs removed by a delete operation
type DeletedResponse struct {
	Deleted []string `json:"deleted"`
}

// List handles GET /bookmarks
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := h.service.List(r.Context(), userCtx.UserID)
	if err != nil {
		h.logger.Error("Failed to list bookmarks",
			zap.String("ownerID", userCtx.UserID),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "Failed to list bookmarks")
		return
	}

	h.respondJSON(w, http.StatusOK, records)
}

// Save handles POST and PUT /bookmarks
func (h *BookmarkHandler) Save(w http.ResponseWriter, r *http.Request) {
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

	saved, created, err := h.service.Save(r.Context(), userCtx.UserID, req.toDomain())
	if err != nil {
		h.respondServiceError(w, err, "Failed to save bookmark", userCtx.UserID)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.respondJSON(w, status, saved)
}

// Delete handles DELETE /bookmarks
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		h.respondServiceError(w, err, "Failed to delete bookmark", userCtx.UserID)
		return
	}

	h.respondJSON(w, http.StatusOK, DeletedResponse{Deleted: []string{req.ID}})
}

// DeleteDirectory handles DELETE /bookmarks/dir
func (h *BookmarkHandler) DeleteDirectory(w http.ResponseWriter, r *http.Request) {
	var req DeleteDirectoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	deleted, err := h.service.DeleteDirectory(r.Context(), userCtx.UserID, req.Path)
	if err != nil {
		h.respondServiceError(w, err, "Failed to delete directory", userCtx.UserID)
		return
	}

	h.respondJSON(w, http.StatusOK, DeletedResponse{Deleted: deleted})
}

// respondServiceError maps application errors onto HTTP responses. Internal
// detail is logged, never returned to the client.
func (h *BookmarkHandler) respondServiceError(w http.ResponseWriter, err error, fallback, ownerID string) {
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

func (h *BookmarkHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *BookmarkHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
