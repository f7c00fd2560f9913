package ports

import (
	"context"

	"markbase-backend/domain/bookmark"
	"markbase-backend/domain/pathtree"
)

// BookmarkRepository defines the interface for bookmark persistence over one
// flat collection. The confirmed and temporary collections are two instances
// of this port.
// This is a port in hexagonal architecture - the application doesn't know
// about the implementation.
type BookmarkRepository interface {
	// ListByOwner retrieves all records owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]bookmark.Bookmark, error)

	// ListPathsByOwner retrieves just the path attribute of every record
	// owned by ownerID. Records without a path are omitted.
	ListPathsByOwner(ctx context.Context, ownerID string) ([]string, error)

	// Get retrieves one record by ID within the owner's partition. A record
	// that does not exist there, including one owned by someone else,
	// returns (nil, nil).
	Get(ctx context.Context, ownerID, id string) (*bookmark.Bookmark, error)

	// Put persists a record (create or update) and returns its ID, assigning
	// a new one when the record has none.
	Put(ctx context.Context, bm bookmark.Bookmark) (string, error)

	// Delete removes one record from the owner's partition.
	Delete(ctx context.Context, ownerID, id string) error

	// DeleteRange removes every record whose path lies inside r, as one
	// atomic batch, and returns the IDs that were removed.
	DeleteRange(ctx context.Context, ownerID string, r pathtree.DirectoryRange) ([]string, error)
}

// SuggestionProvider defines the interface for the generative text provider
// used by the enrichment pipeline. It accepts a prompt and returns free-form
// text; parsing and fallback are the pipeline's job.
type SuggestionProvider interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}

// EventPublisher defines the interface for publishing bookmark lifecycle
// events. Publishing is best-effort; callers log failures and move on.
type EventPublisher interface {
	Publish(ctx context.Context, event BookmarkEvent) error
}

// BookmarkEvent describes one lifecycle change for downstream consumers.
type BookmarkEvent struct {
	Type        string   `json:"type"`
	OwnerID     string   `json:"ownerID"`
	BookmarkIDs []string `json:"bookmarkIDs"`
	Path        string   `json:"path,omitempty"`
}

// Event types published by the application services.
const (
	EventBookmarkSaved            = "bookmark.saved"
	EventBookmarkDeleted          = "bookmark.deleted"
	EventBookmarkDirectoryDeleted = "bookmark.directory_deleted"
	EventTempBookmarkSaved        = "tempbookmark.saved"
	EventTempBookmarkDeleted      = "tempbookmark.deleted"
)
