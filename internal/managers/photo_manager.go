package managers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/essaihub/dossier/internal/domain"
	"github.com/rs/zerolog/log"
)

// PhotoManager handles the image attachments of the Photos sub-folder.
// Every successful mutation is followed by a caller-driven refresh from
// the remote listing; local state is never treated as authoritative.
type PhotoManager struct {
	store FileStore
	now   func() time.Time
}

func NewPhotoManager(store FileStore) *PhotoManager {
	return &PhotoManager{
		store: store,
		now:   time.Now,
	}
}

// List returns the photos of the session's Photos sub-folder in remote
// listing order.
func (m *PhotoManager) List(ctx context.Context, s *domain.Session) ([]domain.PhotoEntry, error) {
	if err := ensurePhotosFolder(ctx, m.store, s, false); err != nil {
		return nil, err
	}

	children, err := m.store.ListChildren(ctx, s.Folder.DriveID, s.PhotosFolderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	var photos []domain.PhotoEntry
	for _, child := range children {
		if !child.IsFolder() && domain.IsImageName(child.Name) {
			photos = append(photos, domain.PhotoEntry{ID: child.ID, Name: child.Name})
		}
	}

	return photos, nil
}

// NextName derives the next photo file name for today's date. It
// re-lists the existing photos on every call so counters freed by
// out-of-order deletions are reused.
func (m *PhotoManager) NextName(ctx context.Context, s *domain.Session) (string, error) {
	photos, err := m.List(ctx, s)
	if err != nil {
		return "", err
	}

	names := make([]string, len(photos))
	for i, p := range photos {
		names[i] = p.Name
	}

	today := m.now()
	counter := domain.NextPhotoCounter(names, today, s.Identifier)
	return domain.PhotoName(today, s.Identifier, counter), nil
}

// Upload stores a local image under remoteName in the Photos
// sub-folder. The sub-folder handle is re-resolved from the parent
// listing on every upload, even when already known.
func (m *PhotoManager) Upload(ctx context.Context, s *domain.Session, localPath, remoteName string) (domain.PhotoEntry, error) {
	if err := ensurePhotosFolder(ctx, m.store, s, true); err != nil {
		return domain.PhotoEntry{}, err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return domain.PhotoEntry{}, fmt.Errorf("failed to open local photo %s: %w", localPath, err)
	}
	defer file.Close()

	item, err := m.store.Upload(ctx, s.Folder.DriveID, s.PhotosFolderID, remoteName, file)
	if err != nil {
		return domain.PhotoEntry{}, fmt.Errorf("failed to upload photo: %w", err)
	}

	log.Info().Str("photo", item.Name).Msg("Photo uploaded")
	return domain.PhotoEntry{ID: item.ID, Name: item.Name}, nil
}

// Download fetches a photo into destDir and returns the local path.
func (m *PhotoManager) Download(ctx context.Context, s *domain.Session, photo domain.PhotoEntry, destDir string) (string, error) {
	data, err := m.store.Download(ctx, s.Folder.DriveID, photo.ID)
	if err != nil {
		return "", fmt.Errorf("failed to download photo: %w", err)
	}

	if err := os.MkdirAll(destDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	localPath := filepath.Join(destDir, photo.Name)
	if err := os.WriteFile(localPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return localPath, nil
}

// Delete removes a photo by id. Confirmation happens before the call;
// the caller refreshes the session from remote afterwards.
func (m *PhotoManager) Delete(ctx context.Context, s *domain.Session, photoID string) error {
	if err := m.store.Delete(ctx, s.Folder.DriveID, photoID); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

// Refresh drops the cached sub-folder handles so the next operation
// re-resolves them from the remote source of truth.
func (m *PhotoManager) Refresh(s *domain.Session) {
	s.PhotosFolderID = ""
	s.PVFolderID = ""
}
