// Package services holds the application services behind the HTTP handlers.
// Every operation re-verifies ownership against the caller resolved by the
// authentication middleware before touching the store.
package services

import (
	"context"

	"markbase-backend/application/ports"
	"markbase-backend/domain/bookmark"
	"markbase-backend/domain/pathtree"
	"markbase-backend/pkg/errors"

	"go.uber.org/zap"
)

// BookmarkService provides list, save, delete, and directory-delete
// operations over the confirmed bookmark collection.
type BookmarkService struct {
	repo   ports.BookmarkRepository
	events ports.EventPublisher
	logger *zap.Logger
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(
	repo ports.BookmarkRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *BookmarkService {
	return &BookmarkService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// List returns every bookmark owned by ownerID.
func (s *BookmarkService) List(ctx context.Context, ownerID string) ([]bookmark.Bookmark, error) {
	s.logger.Debug("Listing bookmarks", zap.String("ownerID", ownerID))

	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewDatabaseError("list bookmarks", err)
	}

	s.logger.Debug("Found bookmarks",
		zap.String("ownerID", ownerID),
		zap.Int("count", len(records)),
	)
	return records, nil
}

// Save creates or updates a bookmark for the caller. The returned bool
// reports whether a new record was created. A payload claiming a different
// owner is rejected before anything is persisted; an update targeting an ID
// not found in the caller's partition is rejected the same way a foreign
// record would be.
func (s *BookmarkService) Save(ctx context.Context, ownerID string, bm bookmark.Bookmark) (bookmark.Bookmark, bool, error) {
	if err := claimOwner(&bm, ownerID, s.logger); err != nil {
		return bookmark.Bookmark{}, false, err
	}

	created := bm.ID == ""
	if !created {
		existing, err := s.repo.Get(ctx, ownerID, bm.ID)
		if err != nil {
			return bookmark.Bookmark{}, false, errors.NewDatabaseError("load bookmark", err)
		}
		if existing == nil {
			s.logger.Warn("Update target not found in caller partition",
				zap.String("ownerID", ownerID),
				zap.String("bookmarkID", bm.ID),
			)
			return bookmark.Bookmark{}, false, errors.NewForbiddenError("")
		}
	}

	id, err := s.repo.Put(ctx, bm)
	if err != nil {
		return bookmark.Bookmark{}, false, errors.NewDatabaseError("save bookmark", err)
	}
	bm.ID = id

	s.logger.Info("Saved bookmark",
		zap.String("ownerID", ownerID),
		zap.String("bookmarkID", id),
		zap.Bool("created", created),
	)
	s.publish(ctx, ports.BookmarkEvent{
		Type:        ports.EventBookmarkSaved,
		OwnerID:     ownerID,
		BookmarkIDs: []string{id},
	})

	return bm, created, nil
}

// Delete removes one bookmark owned by the caller. A missing or foreign ID
// yields the same forbidden error so existence is not leaked.
func (s *BookmarkService) Delete(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return errors.NewValidationError("_id is required")
	}

	existing, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return errors.NewDatabaseError("load bookmark", err)
	}
	if existing == nil {
		s.logger.Warn("Permission denied deleting bookmark",
			zap.String("ownerID", ownerID),
			zap.String("bookmarkID", id),
		)
		return errors.NewForbiddenError("")
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return errors.NewDatabaseError("delete bookmark", err)
	}

	s.logger.Info("Deleted bookmark",
		zap.String("ownerID", ownerID),
		zap.String("bookmarkID", id),
	)
	s.publish(ctx, ports.BookmarkEvent{
		Type:        ports.EventBookmarkDeleted,
		OwnerID:     ownerID,
		BookmarkIDs: []string{id},
	})

	return nil
}

// DeleteDirectory removes every bookmark whose path lies under dir and
// returns the removed IDs. The record whose path equals dir exactly, if any,
// is left alone: only the directory's contents are deleted.
func (s *BookmarkService) DeleteDirectory(ctx context.Context, ownerID, dir string) ([]string, error) {
	r, err := pathtree.RangeUnder(dir)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteRange(ctx, ownerID, r)
	if err != nil {
		return nil, errors.NewDatabaseError("delete directory", err)
	}

	s.logger.Info("Deleted directory contents",
		zap.String("ownerID", ownerID),
		zap.String("path", dir),
		zap.Int("count", len(deleted)),
	)
	s.publish(ctx, ports.BookmarkEvent{
		Type:        ports.EventBookmarkDirectoryDeleted,
		OwnerID:     ownerID,
		BookmarkIDs: deleted,
		Path:        dir,
	})

	return deleted, nil
}

func (s *BookmarkService) publish(ctx context.Context, event ports.BookmarkEvent) {
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

// claimOwner enforces the creation/update ownership rule: an absent ownerID
// is silently claimed for the caller, a differing one is forbidden.
func claimOwner(bm *bookmark.Bookmark, ownerID string, logger *zap.Logger) error {
	if bm.OwnerID != "" && bm.OwnerID != ownerID {
		logger.Warn("Caller attempted to write a record owned by another user",
			zap.String("callerID", ownerID),
			zap.String("payloadOwnerID", bm.OwnerID),
		)
		return errors.NewForbiddenError("")
	}
	bm.OwnerID = ownerID
	return nil
}
