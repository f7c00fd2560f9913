package services

import (
	"context"

	"markbase-backend/application/ports"
	"markbase-backend/domain/bookmark"
	"markbase-backend/domain/pathtree"

	"github.com/stretchr/testify/mock"
)

// MockBookmarkRepository mocks ports.BookmarkRepository
type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) ListByOwner(ctx context.Context, ownerID string) ([]bookmark.Bookmark, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bookmark.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) ListPathsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookmarkRepository) Get(ctx context.Context, ownerID, id string) (*bookmark.Bookmark, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookmark.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) Put(ctx context.Context, bm bookmark.Bookmark) (string, error) {
	args := m.Called(ctx, bm)
	return args.String(0), args.Error(1)
}

func (m *MockBookmarkRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockBookmarkRepository) DeleteRange(ctx context.Context, ownerID string, r pathtree.DirectoryRange) ([]string, error) {
	args := m.Called(ctx, ownerID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockEventPublisher mocks ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.BookmarkEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockSuggestionProvider mocks ports.SuggestionProvider
type MockSuggestionProvider struct {
	mock.Mock
}

func (m *MockSuggestionProvider) Suggest(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
