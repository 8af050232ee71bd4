package managers

import (
	"context"
	"fmt"
	"strings"

	"github.com/essaihub/dossier/internal/domain"
	"github.com/rs/zerolog/log"
)

// FolderLocator resolves an affaire identifier to its main folder:
// site by canonical path, first drive of the site, then the single
// child of the working directory whose name contains the identifier.
type FolderLocator struct {
	store       FileStore
	sitePath    string
	workingPath string
}

func NewFolderLocator(store FileStore, sitePath, workingPath string) *FolderLocator {
	return &FolderLocator{
		store:       store,
		sitePath:    sitePath,
		workingPath: workingPath,
	}
}

// Locate opens a document session for the identifier. The returned
// session owns the folder handle and the client name derived from the
// folder naming convention.
func (l *FolderLocator) Locate(ctx context.Context, id domain.Identifier) (*domain.Session, error) {
	site, err := l.store.ResolveSiteByPath(ctx, l.sitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve site: %w", err)
	}

	drives, err := l.store.ListSiteDrives(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drives: %w", err)
	}
	if len(drives) == 0 {
		return nil, fmt.Errorf("site %s has no drives", site.ID)
	}
	drive := drives[0]

	workingFolder, err := l.store.GetItemByPath(ctx, drive.ID, l.workingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory %s: %w", l.workingPath, err)
	}

	children, err := l.store.ListChildren(ctx, drive.ID, workingFolder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working directory: %w", err)
	}

	var matches []int
	for i, child := range children {
		if child.IsFolder() && strings.Contains(child.Name, id.String()) {
			matches = append(matches, i)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrFolderNotFound, id)
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, idx := range matches {
			names[i] = children[idx].Name
		}
		// Listing order is not guaranteed stable by the remote API, so
		// which folder wins here can vary between calls.
		log.Warn().
			Str("identifier", id.String()).
			Strs("folders", names).
			Msg("Identifier matches multiple folders, using the first")
	}

	folder := children[matches[0]]

	log.Debug().
		Str("identifier", id.String()).
		Str("folder", folder.Name).
		Msg("Affaire folder located")

	return &domain.Session{
		Identifier: id,
		ClientName: domain.ClientNameFromFolder(folder.Name),
		FolderName: folder.Name,
		Folder: domain.FolderHandle{
			DriveID:  drive.ID,
			FolderID: folder.ID,
		},
	}, nil
}
