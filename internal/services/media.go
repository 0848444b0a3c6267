package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediavault/mediavault-backend/internal/models"
	"github.com/mediavault/mediavault-backend/internal/storage"
	"github.com/mediavault/mediavault-backend/pkg/utils"
)

// MediaStore is the persistence port for media documents.
type MediaStore interface {
	Insert(ctx context.Context, media *models.Media) (*models.Media, error)
	FindByID(ctx context.Context, id string) (*models.Media, error)
	Find(ctx context.Context, limit, offset int64, searchText string) ([]*models.Media, error)
	MarkDeleted(ctx context.Context, id string) error
	ClearDeleted(ctx context.Context, id string) (*models.Media, error)
	ApplyUpdate(ctx context.Context, id string, upd models.MediaUpdate) (*models.Media, error)
	IncrementViewCount(ctx context.Context, sharableID string) (*models.Media, error)
}

// UploadMedia describes the file being uploaded.
type UploadMedia struct {
	FileName    string
	ContentType string
	Description string
	IsPublic    bool
	Tags        []string
	Size        int64
}

// MediaService owns the media lifecycle: upload, listing, partial edits,
// soft delete, restore and sharable-link reads. Byte storage is delegated
// to the configured backend.
type MediaService struct {
	store   MediaStore
	backend storage.Backend
}

func NewMediaService(store MediaStore, backend storage.Backend) *MediaService {
	return &MediaService{store: store, backend: backend}
}

// Upload stores the bytes first and only persists the record once the
// backend succeeded, so a failed upload leaves no orphaned metadata. The
// sharable id is generated here and never changes afterwards.
func (s *MediaService) Upload(ctx context.Context, meta UploadMedia, data []byte) (*models.Media, error) {
	url, err := s.backend.Upload(ctx, meta.FileName, data, meta.ContentType)
	if err != nil {
		return nil, err
	}

	return s.store.Insert(ctx, &models.Media{
		FileName:    meta.FileName,
		URL:         url,
		ContentType: meta.ContentType,
		Description: meta.Description,
		IsPublic:    meta.IsPublic,
		Size:        meta.Size,
		Tags:        meta.Tags,
		SharableID:  uuid.NewString(),
	})
}

func (s *MediaService) Get(ctx context.Context, id string) (*models.Media, error) {
	return s.store.FindByID(ctx, id)
}

// List returns visible media only. searchText filters by case-insensitive
// fileName substring.
func (s *MediaService) List(ctx context.Context, limit, offset int64, searchText string) ([]*models.Media, error) {
	offset, limit = utils.HandlePagination(offset, limit)
	return s.store.Find(ctx, limit, offset, searchText)
}

// SoftDelete removes the bytes from the backend and then marks the record
// deleted. A backend failure aborts the whole operation and the record
// stays active.
func (s *MediaService) SoftDelete(ctx context.Context, id string) error {
	media, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.backend.Delete(ctx, media.FileName); err != nil {
		return err
	}

	return s.store.MarkDeleted(ctx, id)
}

// Restore clears the soft-delete marker. A record that is missing or
// already active reports common.ErrMediaNotFound. The backend bytes were
// removed at soft-delete time and are NOT re-uploaded here: the restored
// record keeps its URL but the object behind it is gone until someone
// uploads it again.
func (s *MediaService) Restore(ctx context.Context, id string) (*models.Media, error) {
	return s.store.ClearDeleted(ctx, id)
}

// Update merges the provided fields only.
func (s *MediaService) Update(ctx context.Context, id string, upd models.MediaUpdate) (*models.Media, error) {
	return s.store.ApplyUpdate(ctx, id, upd)
}

// GetBySharableID resolves a sharable link. Every successful read through
// this path bumps viewCount by one, atomically; Get never does.
func (s *MediaService) GetBySharableID(ctx context.Context, sharableID string) (*models.Media, error) {
	return s.store.IncrementViewCount(ctx, sharableID)
}
