package managers

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/essaihub/dossier/internal/domain"
	"github.com/essaihub/dossier/pkg/graphfs"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DocumentKind says how an opened document is edited.
type DocumentKind int

const (
	// KindLocalPDF is downloaded to a scratch file and edited locally;
	// changes are uploaded back on resume.
	KindLocalPDF DocumentKind = iota
	// KindWebLink is edited server-side through a web editor link; no
	// local copy exists.
	KindWebLink
)

// OpenedDocument is the result of resolving and opening a tracked
// document.
type OpenedDocument struct {
	Item graphfs.Item
	Kind DocumentKind

	// Local-PDF fields.
	LocalPath string
	ModTime   time.Time

	// Web-link field.
	WebURL string
}

// DocumentOpener resolves the FP/PVEE/PVEA documents of the PV
// sub-folder and prepares them for viewing or editing.
type DocumentOpener struct {
	store      FileStore
	scratchDir string
}

func NewDocumentOpener(store FileStore, scratchDir string) *DocumentOpener {
	return &DocumentOpener{
		store:      store,
		scratchDir: scratchDir,
	}
}

// Find returns the first PV document whose name starts with
// <prefix>_<identifier>, or ErrDocumentNotFound.
func (o *DocumentOpener) Find(ctx context.Context, s *domain.Session, prefix domain.DocPrefix) (graphfs.Item, error) {
	if err := ensurePVFolder(ctx, o.store, s); err != nil {
		return graphfs.Item{}, err
	}

	children, err := o.store.ListChildren(ctx, s.Folder.DriveID, s.PVFolderID)
	if err != nil {
		return graphfs.Item{}, fmt.Errorf("failed to list PV folder: %w", err)
	}

	namePrefix := domain.DocumentNamePrefix(prefix, s.Identifier)
	for _, child := range children {
		if !child.IsFolder() && strings.HasPrefix(child.Name, namePrefix) {
			return child, nil
		}
	}

	return graphfs.Item{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, namePrefix)
}

// Open resolves the document and prepares it for editing: PDFs are
// downloaded to a scratch location, web-editable formats get an edit
// link. Anything else is ErrUnsupportedFormat.
func (o *DocumentOpener) Open(ctx context.Context, s *domain.Session, prefix domain.DocPrefix) (*OpenedDocument, error) {
	item, err := o.Find(ctx, s, prefix)
	if err != nil {
		return nil, err
	}

	switch {
	case domain.IsPDFName(item.Name):
		return o.openLocalPDF(ctx, s, item)
	case domain.IsWebEditableName(item.Name):
		webURL, err := o.store.CreateEditLink(ctx, s.Folder.DriveID, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create edit link for %s: %w", item.Name, err)
		}
		return &OpenedDocument{Item: item, Kind: KindWebLink, WebURL: webURL}, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, item.Name)
	}
}

func (o *DocumentOpener) openLocalPDF(ctx context.Context, s *domain.Session, item graphfs.Item) (*OpenedDocument, error) {
	data, err := o.store.Download(ctx, s.Folder.DriveID, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", item.Name, err)
	}

	dir := filepath.Join(o.scratchDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	localPath := filepath.Join(dir, item.Name)
	if err := os.WriteFile(localPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scratch file: %w", err)
	}

	return &OpenedDocument{
		Item:      item,
		Kind:      KindLocalPDF,
		LocalPath: localPath,
		ModTime:   info.ModTime(),
	}, nil
}

// ReuploadIfEdited compares the scratch file's modification time to the
// one recorded at open and re-uploads the bytes under the same name
// when they differ. The caller clears its editing marker regardless of
// the outcome; a failed upload is reported, not retried.
func (o *DocumentOpener) ReuploadIfEdited(ctx context.Context, s *domain.Session, doc *OpenedDocument) (bool, error) {
	if doc.Kind != KindLocalPDF {
		return false, nil
	}

	info, err := os.Stat(doc.LocalPath)
	if err != nil {
		return false, fmt.Errorf("failed to stat local document: %w", err)
	}
	if info.ModTime().Equal(doc.ModTime) {
		return false, nil
	}

	data, err := os.ReadFile(doc.LocalPath)
	if err != nil {
		return false, fmt.Errorf("failed to read local document: %w", err)
	}

	if err := ensurePVFolder(ctx, o.store, s); err != nil {
		return false, err
	}

	if _, err := o.store.Upload(ctx, s.Folder.DriveID, s.PVFolderID, doc.Item.Name, bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("failed to upload edited document: %w", err)
	}

	log.Info().Str("document", doc.Item.Name).Msg("Edited document uploaded")
	return true, nil
}
