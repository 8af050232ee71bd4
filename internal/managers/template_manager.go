package managers

import (
	"context"
	"fmt"

	"github.com/essaihub/dossier/internal/domain"
	"github.com/essaihub/dossier/pkg/graphfs"
	"github.com/rs/zerolog/log"
)

// TemplateManager offers the PVEA standard documents as copy sources
// when the affaire has no PVEA document yet.
type TemplateManager struct {
	store         FileStore
	templatesPath string
}

func NewTemplateManager(store FileStore, templatesPath string) *TemplateManager {
	return &TemplateManager{
		store:         store,
		templatesPath: templatesPath,
	}
}

// List returns the templates of the fixed standards folder, filtered to
// the offered formats.
func (m *TemplateManager) List(ctx context.Context, driveID string) ([]domain.Template, error) {
	folder, err := m.store.GetItemByPath(ctx, driveID, m.templatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve templates folder %s: %w", m.templatesPath, err)
	}

	children, err := m.store.ListChildren(ctx, driveID, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	var templates []domain.Template
	for _, child := range children {
		if !child.IsFolder() && domain.IsTemplateName(child.Name) {
			templates = append(templates, domain.Template{ID: child.ID, Name: child.Name})
		}
	}

	return templates, nil
}

// CopyToPV copies the chosen template into the session's PV sub-folder
// under the conventional PVEA name. The store performs the copy
// asynchronously; acceptance is reported as success and the caller
// refreshes the folder listing.
func (m *TemplateManager) CopyToPV(ctx context.Context, s *domain.Session, t domain.Template) (string, graphfs.CopyStatus, error) {
	if err := ensurePVFolder(ctx, m.store, s); err != nil {
		return "", graphfs.CopyStatus{}, err
	}

	newName := domain.TemplateCopyName(s.Identifier, s.ClientName, t.Name)

	status, err := m.store.Copy(ctx, s.Folder.DriveID, t.ID, s.PVFolderID, newName)
	if err != nil {
		return "", graphfs.CopyStatus{}, fmt.Errorf("failed to copy template %s: %w", t.Name, err)
	}

	log.Info().
		Str("template", t.Name).
		Str("target", newName).
		Bool("accepted", status.Accepted).
		Msg("Template copy requested")

	return newName, status, nil
}
