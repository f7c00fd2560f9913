package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"markbase-backend/application/enrichment"
	"markbase-backend/domain/bookmark"
	apperrors "markbase-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTempService(tempRepo, bookmarkRepo *MockBookmarkRepository, provider *MockSuggestionProvider, events *MockEventPublisher) *TempBookmarkService {
	pipeline := enrichment.NewPipeline(provider, nil, nil, zap.NewNop())
	if events == nil {
		return NewTempBookmarkService(tempRepo, bookmarkRepo, pipeline, nil, zap.NewNop())
	}
	return NewTempBookmarkService(tempRepo, bookmarkRepo, pipeline, events, zap.NewNop())
}

func TestTempBookmarkService_Save_EnrichesFromTree(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tempRepo := new(MockBookmarkRepository)
	bookmarkRepo := new(MockBookmarkRepository)
	provider := new(MockSuggestionProvider)
	svc := newTempService(tempRepo, bookmarkRepo, provider, nil)

	bookmarkRepo.On("ListPathsByOwner", ctx, "u1").Return([]string{"work/a", "personal/x"}, nil)
	provider.On("Suggest", ctx, mock.MatchedBy(func(prompt string) bool {
		// The owner's existing structure reaches the provider as context
		return strings.Contains(prompt, `"work"`) && strings.Contains(prompt, `"personal"`)
	})).Return(`{"path":"work/new","tags":["a","b","c","d","e"],"notes":"n"}`, nil)
	tempRepo.On("Put", ctx, mock.AnythingOfType("bookmark.Bookmark")).Return("temp-id", nil)

	// Act
	saved, enriched, err := svc.Save(ctx, "u1", bookmark.Bookmark{URL: "https://example.com"})

	// Assert
	require.NoError(t, err)
	assert.True(t, enriched)
	assert.Equal(t, "temp-id", saved.ID)
	assert.Equal(t, "u1", saved.OwnerID)
	assert.Equal(t, "work/new", saved.Path)
	assert.Len(t, saved.Tags, 5)
	tempRepo.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestTempBookmarkService_Save_ProviderFailureSavesUnenriched(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tempRepo := new(MockBookmarkRepository)
	bookmarkRepo := new(MockBookmarkRepository)
	provider := new(MockSuggestionProvider)
	svc := newTempService(tempRepo, bookmarkRepo, provider, nil)

	bookmarkRepo.On("ListPathsByOwner", ctx, "u1").Return([]string{}, nil)
	provider.On("Suggest", ctx, mock.AnythingOfType("string")).
		Return("", errors.New("provider down"))

	var persisted bookmark.Bookmark
	tempRepo.On("Put", ctx, mock.AnythingOfType("bookmark.Bookmark")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(bookmark.Bookmark)
		}).
		Return("temp-id", nil)

	// Act
	saved, enriched, err := svc.Save(ctx, "u1", bookmark.Bookmark{URL: "https://example.com"})

	// Assert: saved record is the user payload plus identity, nothing more
	require.NoError(t, err)
	assert.False(t, enriched)
	assert.Equal(t, "temp-id", saved.ID)
	assert.Equal(t, "u1", persisted.OwnerID)
	assert.Equal(t, "https://example.com", persisted.URL)
	assert.Empty(t, persisted.Path)
	assert.Empty(t, persisted.Tags)
	assert.Empty(t, persisted.Notes)
}

func TestTempBookmarkService_Save_TreeFailureStillSaves(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tempRepo := new(MockBookmarkRepository)
	bookmarkRepo := new(MockBookmarkRepository)
	provider := new(MockSuggestionProvider)
	svc := newTempService(tempRepo, bookmarkRepo, provider, nil)

	// Reading the confirmed collection fails; enrichment proceeds with an
	// empty tree instead of failing the request.
	bookmarkRepo.On("ListPathsByOwner", ctx, "u1").Return(nil, errors.New("store down"))
	provider.On("Suggest", ctx, mock.AnythingOfType("string")).
		Return(`{"path":"news/tech","tags":["t"],"notes":"n"}`, nil)
	tempRepo.On("Put", ctx, mock.AnythingOfType("bookmark.Bookmark")).Return("temp-id", nil)

	// Act
	saved, enriched, err := svc.Save(ctx, "u1", bookmark.Bookmark{URL: "https://news.example.com"})

	// Assert
	require.NoError(t, err)
	assert.True(t, enriched)
	assert.Equal(t, "news/tech", saved.Path)
}

func TestTempBookmarkService_Save_AlwaysCreatesFreshRecord(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tempRepo := new(MockBookmarkRepository)
	bookmarkRepo := new(MockBookmarkRepository)
	provider := new(MockSuggestionProvider)
	svc := newTempService(tempRepo, bookmarkRepo, provider, nil)

	bookmarkRepo.On("ListPathsByOwner", ctx, "u1").Return([]string{}, nil)
	provider.On("Suggest", ctx, mock.AnythingOfType("string")).Return("{}", nil)

	var persisted bookmark.Bookmark
	tempRepo.On("Put", ctx, mock.AnythingOfType("bookmark.Bookmark")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(bookmark.Bookmark)
		}).
		Return("fresh-id", nil)

	// Act: client sends a stale ID with the payload
	saved, _, err := svc.Save(ctx, "u1", bookmark.Bookmark{ID: "stale-id", URL: "https://example.com"})

	// Assert: the stale ID is discarded, the store assigns a new one
	require.NoError(t, err)
	assert.Empty(t, persisted.ID)
	assert.Equal(t, "fresh-id", saved.ID)
}

func TestTempBookmarkService_Save_ForeignOwnerRejected(t *testing.T) {
	// Arrange
	tempRepo := new(MockBookmarkRepository)
	bookmarkRepo := new(MockBookmarkRepository)
	provider := new(MockSuggestionProvider)
	svc := newTempService(tempRepo, bookmarkRepo, provider, nil)

	// Act
	_, _, err := svc.Save(context.Background(), "u1", bookmark.Bookmark{OwnerID: "u2"})

	// Assert
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	tempRepo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
}

func TestTempBookmarkService_Delete(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tempRepo := new(MockBookmarkRepository)
	events := new(MockEventPublisher)
	svc := newTempService(tempRepo, new(MockBookmarkRepository), new(MockSuggestionProvider), events)

	tempRepo.On("Get", ctx, "u1", "id-1").Return(&bookmark.Bookmark{ID: "id-1", OwnerID: "u1"}, nil)
	tempRepo.On("Delete", ctx, "u1", "id-1").Return(nil)
	events.On("Publish", ctx, mock.AnythingOfType("ports.BookmarkEvent")).Return(nil)

	// Act
	err := svc.Delete(ctx, "u1", "id-1")

	// Assert
	require.NoError(t, err)
	tempRepo.AssertExpectations(t)
}

func TestTempBookmarkService_Delete_MissingRecordForbidden(t *testing.T) {
	// Arrange
	ctx := context.Background()
	tempRepo := new(MockBookmarkRepository)
	svc := newTempService(tempRepo, new(MockBookmarkRepository), new(MockSuggestionProvider), nil)

	tempRepo.On("Get", ctx, "u1", "missing").Return(nil, nil)

	// Act
	err := svc.Delete(ctx, "u1", "missing")

	// Assert
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestTempBookmarkService_Delete_MissingIDValidation(t *testing.T) {
	// Arrange
	svc := newTempService(new(MockBookmarkRepository), new(MockBookmarkRepository), new(MockSuggestionProvider), nil)

	// Act
	err := svc.Delete(context.Background(), "u1", "")

	// Assert
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
