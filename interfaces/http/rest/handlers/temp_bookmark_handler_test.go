package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"markbase-backend/application/enrichment"
	"markbase-backend/application/services"
	"markbase-backend/domain/bookmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTempHandler(tempRepo, bookmarkRepo *MockBookmarkRepository, provider *MockSuggestionProvider) *TempBookmarkHandler {
	pipeline := enrichment.NewPipeline(provider, nil, nil, zap.NewNop())
	service := services.NewTempBookmarkService(tempRepo, bookmarkRepo, pipeline, nil, zap.NewNop())
	return NewTempBookmarkHandler(service, zap.NewNop())
}

func TestTempBookmarkHandler_Save_Enriched(t *testing.T) {
	// Arrange
	tempRepo := new(MockBookmarkRepository)
	bookmarkRepo := new(MockBookmarkRepository)
	provider := new(MockSuggestionProvider)
	handler := newTempHandler(tempRepo, bookmarkRepo, provider)

	bookmarkRepo.On("ListPathsByOwner", mock.Anything, "u1").Return([]string{"work/tools"}, nil)
	provider.On("Suggest", mock.Anything, mock.Anything).
		Return(`{"path":"work/tools","tags":["cli"],"notes":"a tool"}`, nil)
	tempRepo.On("Put", mock.Anything, mock.AnythingOfType("bookmark.Bookmark")).Return("tmp-1", nil)

	req := authedRequest(http.MethodPost, "/tempBookmarks", `{"url":"https://example.com/tool"}`)
	rec := httptest.NewRecorder()

	// Act
	handler.Save(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var saved bookmark.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "tmp-1", saved.ID)
	assert.Equal(t, "u1", saved.OwnerID)
	assert.Equal(t, "work/tools", saved.Path)
	assert.Equal(t, []string{"cli"}, saved.Tags)
}

func TestTempBookmarkHandler_Save_ProviderFailureStillSaves(t *testing.T) {
	// Arrange
	tempRepo := new(MockBookmarkRepository)
	bookmarkRepo := new(MockBookmarkRepository)
	provider := new(MockSuggestionProvider)
	handler := newTempHandler(tempRepo, bookmarkRepo, provider)

	bookmarkRepo.On("ListPathsByOwner", mock.Anything, "u1").Return([]string{}, nil)
	provider.On("Suggest", mock.Anything, mock.Anything).Return("", fmt.Errorf("provider down"))
	tempRepo.On("Put", mock.Anything, mock.AnythingOfType("bookmark.Bookmark")).Return("tmp-2", nil)

	req := authedRequest(http.MethodPost, "/tempBookmarks", `{"url":"https://example.com","path":"inbox"}`)
	rec := httptest.NewRecorder()

	// Act
	handler.Save(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var saved bookmark.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "tmp-2", saved.ID)
	assert.Equal(t, "inbox", saved.Path)
	assert.Empty(t, saved.Tags)
}

func TestTempBookmarkHandler_Save_ForeignOwnerForbidden(t *testing.T) {
	// Arrange
	tempRepo := new(MockBookmarkRepository)
	bookmarkRepo := new(MockBookmarkRepository)
	provider := new(MockSuggestionProvider)
	handler := newTempHandler(tempRepo, bookmarkRepo, provider)

	req := authedRequest(http.MethodPost, "/tempBookmarks", `{"ownerID":"u2","url":"https://example.com"}`)
	rec := httptest.NewRecorder()

	// Act
	handler.Save(rec, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	tempRepo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
}

func TestTempBookmarkHandler_List(t *testing.T) {
	// Arrange
	tempRepo := new(MockBookmarkRepository)
	handler := newTempHandler(tempRepo, new(MockBookmarkRepository), new(MockSuggestionProvider))

	tempRepo.On("ListByOwner", mock.Anything, "u1").Return([]bookmark.Bookmark{
		{ID: "t1", OwnerID: "u1", URL: "https://example.com"},
	}, nil)

	req := authedRequest(http.MethodGet, "/tempBookmarks", "")
	rec := httptest.NewRecorder()

	// Act
	handler.List(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var records []bookmark.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "t1", records[0].ID)
}

func TestTempBookmarkHandler_Delete(t *testing.T) {
	// Arrange
	tempRepo := new(MockBookmarkRepository)
	handler := newTempHandler(tempRepo, new(MockBookmarkRepository), new(MockSuggestionProvider))

	tempRepo.On("Get", mock.Anything, "u1", "t1").Return(&bookmark.Bookmark{ID: "t1", OwnerID: "u1"}, nil)
	tempRepo.On("Delete", mock.Anything, "u1", "t1").Return(nil)

	req := authedRequest(http.MethodDelete, "/tempBookmarks", `{"_id":"t1"}`)
	rec := httptest.NewRecorder()

	// Act
	handler.Delete(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp DeletedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"t1"}, resp.Deleted)
}

func TestTempBookmarkHandler_Delete_MissingRecordForbidden(t *testing.T) {
	// Arrange
	tempRepo := new(MockBookmarkRepository)
	handler := newTempHandler(tempRepo, new(MockBookmarkRepository), new(MockSuggestionProvider))

	tempRepo.On("Get", mock.Anything, "u1", "gone").Return(nil, nil)

	req := authedRequest(http.MethodDelete, "/tempBookmarks", `{"_id":"gone"}`)
	rec := httptest.NewRecorder()

	// Act
	handler.Delete(rec, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	tempRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
