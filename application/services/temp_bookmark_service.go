package services

import (
	"context"

	"markbase-backend/application/enrichment"
	"markbase-backend/application/ports"
	"markbase-backend/domain/bookmark"
	"markbase-backend/domain/pathtree"
	"markbase-backend/pkg/errors"

	"go.uber.org/zap"
)

// TempBookmarkService manages the temporary collection: bookmarks awaiting
// AI-assisted enrichment before the user promotes or edits them. The
// directory-tree context for enrichment is derived from the confirmed
// collection, not the temporary one.
type TempBookmarkService struct {
	tempRepo     ports.BookmarkRepository
	bookmarkRepo ports.BookmarkRepository
	pipeline     *enrichment.Pipeline
	events       ports.EventPublisher
	logger       *zap.Logger
}

// NewTempBookmarkService creates a new temp bookmark service.
func NewTempBookmarkService(
	tempRepo ports.BookmarkRepository,
	bookmarkRepo ports.BookmarkRepository,
	pipeline *enrichment.Pipeline,
	events ports.EventPublisher,
	logger *zap.Logger,
) *TempBookmarkService {
	return &TempBookmarkService{
		tempRepo:     tempRepo,
		bookmarkRepo: bookmarkRepo,
		pipeline:     pipeline,
		events:       events,
		logger:       logger,
	}
}

// List returns every temp bookmark owned by ownerID.
func (s *TempBookmarkService) List(ctx context.Context, ownerID string) ([]bookmark.Bookmark, error) {
	s.logger.Debug("Listing temp bookmarks", zap.String("ownerID", ownerID))

	records, err := s.tempRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewDatabaseError("list temp bookmarks", err)
	}

	s.logger.Info("Found temp bookmarks",
		zap.String("ownerID", ownerID),
		zap.Int("count", len(records)),
	)
	return records, nil
}

// Save enriches the partial record and persists it as a new temp bookmark.
// The returned bool reports whether enrichment actually occurred; on any
// provider or parse failure the record is saved exactly as the user sent it.
func (s *TempBookmarkService) Save(ctx context.Context, ownerID string, bm bookmark.Bookmark) (bookmark.Bookmark, bool, error) {
	if err := claimOwner(&bm, ownerID, s.logger); err != nil {
		return bookmark.Bookmark{}, false, err
	}

	tree := s.directoryTree(ctx, ownerID)
	result := s.pipeline.Enrich(ctx, tree, bm)

	// A temp save always creates a fresh record; the client promotes or
	// edits it later through the confirmed collection.
	record := result.Bookmark
	record.ID = ""

	id, err := s.tempRepo.Put(ctx, record)
	if err != nil {
		return bookmark.Bookmark{}, false, errors.NewDatabaseError("save temp bookmark", err)
	}
	record.ID = id

	s.logger.Info("Saved temp bookmark",
		zap.String("ownerID", ownerID),
		zap.String("bookmarkID", id),
		zap.Bool("enriched", result.Enriched),
	)
	s.publish(ctx, ports.BookmarkEvent{
		Type:        ports.EventTempBookmarkSaved,
		OwnerID:     ownerID,
		BookmarkIDs: []string{id},
	})

	return record, result.Enriched, nil
}

// Delete removes one temp bookmark owned by the caller, folding missing and
// foreign IDs into the same forbidden error.
func (s *TempBookmarkService) Delete(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return errors.NewValidationError("_id is required")
	}

	existing, err := s.tempRepo.Get(ctx, ownerID, id)
	if err != nil {
		return errors.NewDatabaseError("load temp bookmark", err)
	}
	if existing == nil {
		s.logger.Warn("Permission denied deleting temp bookmark",
			zap.String("ownerID", ownerID),
			zap.String("bookmarkID", id),
		)
		return errors.NewForbiddenError("")
	}

	if err := s.tempRepo.Delete(ctx, ownerID, id); err != nil {
		return errors.NewDatabaseError("delete temp bookmark", err)
	}

	s.logger.Info("Deleted temp bookmark",
		zap.String("ownerID", ownerID),
		zap.String("bookmarkID", id),
	)
	s.publish(ctx, ports.BookmarkEvent{
		Type:        ports.EventTempBookmarkDeleted,
		OwnerID:     ownerID,
		BookmarkIDs: []string{id},
	})

	return nil
}

// directoryTree builds the owner's directory trie from the confirmed
// collection. Failures are non-fatal: enrichment proceeds with an empty
// tree rather than failing the save.
func (s *TempBookmarkService) directoryTree(ctx context.Context, ownerID string) pathtree.Tree {
	paths, err := s.bookmarkRepo.ListPathsByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Warn("Failed to build directory tree, enriching without context",
			zap.String("ownerID", ownerID),
			zap.Error(err),
		)
		return pathtree.New()
	}
	return pathtree.Build(paths)
}

func (s *TempBookmarkService) publish(ctx context.Context, event ports.BookmarkEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish bookmark event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}
