package managers

import (
	"context"
	"fmt"
	"io"

	"github.com/essaihub/dossier/internal/domain"
	"github.com/essaihub/dossier/pkg/graphfs"
)

// FileStore is the remote file-store surface the managers operate
// against. graphfs.Client satisfies it; tests use an in-memory fake.
type FileStore interface {
	ResolveSiteByPath(ctx context.Context, hostPath string) (graphfs.Site, error)
	ListSiteDrives(ctx context.Context, siteID string) ([]graphfs.Drive, error)
	GetItemByPath(ctx context.Context, driveID, itemPath string) (graphfs.Item, error)
	ListChildren(ctx context.Context, driveID, itemID string) ([]graphfs.Item, error)
	Download(ctx context.Context, driveID, itemID string) ([]byte, error)
	DownloadAs(ctx context.Context, driveID, itemID, format string) ([]byte, error)
	Upload(ctx context.Context, driveID, parentID, name string, content io.Reader) (graphfs.Item, error)
	Delete(ctx context.Context, driveID, itemID string) error
	Move(ctx context.Context, driveID, itemID, newParentID string) (graphfs.Item, error)
	Copy(ctx context.Context, driveID, itemID, targetParentID, newName string) (graphfs.CopyStatus, error)
	CreateEditLink(ctx context.Context, driveID, itemID string) (string, error)
}

// resolveSubFolder lists the main folder and returns the sub-folder
// with the given name, matched case-insensitively.
func resolveSubFolder(ctx context.Context, store FileStore, folder domain.FolderHandle, name string) (graphfs.Item, error) {
	children, err := store.ListChildren(ctx, folder.DriveID, folder.FolderID)
	if err != nil {
		return graphfs.Item{}, fmt.Errorf("failed to list main folder: %w", err)
	}

	for _, child := range children {
		if child.IsFolder() && domain.IsSubFolder(child.Name, name) {
			return child, nil
		}
	}

	return graphfs.Item{}, nil
}

// ensurePhotosFolder resolves the Photos sub-folder id into the
// session, re-resolving when forced or when no id is cached.
func ensurePhotosFolder(ctx context.Context, store FileStore, s *domain.Session, force bool) error {
	if s.PhotosFolderID != "" && !force {
		return nil
	}

	item, err := resolveSubFolder(ctx, store, s.Folder, domain.PhotosFolderName)
	if err != nil {
		return err
	}
	if item.ID == "" {
		s.PhotosFolderID = ""
		return domain.ErrPhotosFolderNotFound
	}

	s.PhotosFolderID = item.ID
	return nil
}

// ensurePVFolder resolves the PV sub-folder id into the session,
// caching it after the first successful resolution.
func ensurePVFolder(ctx context.Context, store FileStore, s *domain.Session) error {
	if s.PVFolderID != "" {
		return nil
	}

	item, err := resolveSubFolder(ctx, store, s.Folder, domain.PVFolderName)
	if err != nil {
		return err
	}
	if item.ID == "" {
		return domain.ErrPVFolderNotFound
	}

	s.PVFolderID = item.ID
	return nil
}
