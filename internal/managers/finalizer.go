package managers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/essaihub/dossier/internal/domain"
	"github.com/essaihub/dossier/pkg/graphfs"
	"github.com/rs/zerolog/log"
)

// ConversionStage names the sub-step of a per-file conversion at which
// a failure occurred.
type ConversionStage string

const (
	StageConvert        ConversionStage = "convert"
	StageUpload         ConversionStage = "upload"
	StageDeleteOriginal ConversionStage = "delete_original"
)

// ConversionResult is the outcome of converting one Word document to
// PDF. A nil Err means the full convert/upload/delete sequence
// succeeded for this file.
type ConversionResult struct {
	Name  string
	Stage ConversionStage
	Err   error
}

// Failed reports whether this file's conversion stopped partway.
func (r ConversionResult) Failed() bool {
	return r.Err != nil
}

// FinalizeReport is the per-step outcome of a finalize run. Partial
// failure is expected: the conversion loop never aborts the batch, and
// only a failed folder move stops the sequence.
type FinalizeReport struct {
	ValidationDeleted bool
	Conversions       []ConversionResult
	Moved             bool
	ArchivedFolder    graphfs.Item
	ReminderCreated   bool
}

// FailedConversions returns the conversions that stopped partway.
func (r *FinalizeReport) FailedConversions() []ConversionResult {
	var failed []ConversionResult
	for _, c := range r.Conversions {
		if c.Failed() {
			failed = append(failed, c)
		}
	}
	return failed
}

// Finalizer runs the terminal archive sequence of an affaire: delete
// the validation record, convert residual Word documents to PDF, move
// the folder to the archive location and drop a reminder marker.
//
// The sequence is strictly ordered with no transactional guarantee and
// no resumability; re-running after an interruption is safe because
// each step only acts on what it still finds.
type Finalizer struct {
	store       FileStore
	archivePath string
}

func NewFinalizer(store FileStore, archivePath string) *Finalizer {
	return &Finalizer{
		store:       store,
		archivePath: archivePath,
	}
}

// Finalize runs the sequence. The returned report is non-nil whenever
// the run got past the initial folder listing, including on move
// failure; the error then says why the folder was not archived.
func (f *Finalizer) Finalize(ctx context.Context, s *domain.Session) (*FinalizeReport, error) {
	driveID := s.Folder.DriveID

	// Step 1: re-list the main folder; the PV sub-folder is required,
	// the validation record is optional.
	children, err := f.store.ListChildren(ctx, driveID, s.Folder.FolderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list main folder: %w", err)
	}

	var pvFolderID, validationID string
	for _, child := range children {
		switch {
		case child.IsFolder() && domain.IsSubFolder(child.Name, domain.PVFolderName):
			pvFolderID = child.ID
		case !child.IsFolder() && child.Name == domain.ValidationFileName:
			validationID = child.ID
		}
	}
	if pvFolderID == "" {
		return nil, domain.ErrPVFolderNotFound
	}

	// Step 2: collect the Word documents of the PV sub-folder.
	pvChildren, err := f.store.ListChildren(ctx, driveID, pvFolderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list PV folder: %w", err)
	}

	var wordDocs []graphfs.Item
	for _, child := range pvChildren {
		if !child.IsFolder() && child.MimeType() == domain.WordMimeType {
			wordDocs = append(wordDocs, child)
		}
	}

	report := &FinalizeReport{}

	// Step 3: delete the validation record. A failure here is logged
	// and swallowed; the sequence proceeds regardless.
	if validationID != "" {
		if err := f.store.Delete(ctx, driveID, validationID); err != nil {
			log.Warn().Err(err).Msg("Failed to delete validation record, continuing")
		} else {
			report.ValidationDeleted = true
		}
	}

	// Step 4: convert each Word document sequentially. A failure is
	// recorded and the loop advances to the next file.
	for _, doc := range wordDocs {
		report.Conversions = append(report.Conversions, f.convertOne(ctx, driveID, pvFolderID, doc))
	}

	// Step 5: move the main folder to the archive location.
	archiveFolder, err := f.store.GetItemByPath(ctx, driveID, f.archivePath)
	if err != nil {
		return report, fmt.Errorf("failed to resolve archive folder %s: %w", f.archivePath, err)
	}

	moved, err := f.store.Move(ctx, driveID, s.Folder.FolderID, archiveFolder.ID)
	if err != nil {
		return report, fmt.Errorf("failed to move folder to archive: %w", err)
	}
	report.Moved = true
	report.ArchivedFolder = moved

	// Step 6: drop the empty reminder marker into the moved folder.
	if _, err := f.store.Upload(ctx, driveID, moved.ID, domain.ReminderFileName, bytes.NewReader(nil)); err != nil {
		log.Warn().Err(err).Msg("Failed to create reminder marker in archived folder")
	} else {
		report.ReminderCreated = true
	}

	log.Info().
		Str("folder", s.FolderName).
		Int("conversions", len(report.Conversions)).
		Int("failed", len(report.FailedConversions())).
		Msg("Affaire finalized")

	return report, nil
}

// convertOne downloads the PDF-rendered form of one Word document,
// uploads it next to the original and deletes the original.
func (f *Finalizer) convertOne(ctx context.Context, driveID, pvFolderID string, doc graphfs.Item) ConversionResult {
	result := ConversionResult{Name: doc.Name}

	data, err := f.store.DownloadAs(ctx, driveID, doc.ID, "pdf")
	if err != nil {
		result.Stage = StageConvert
		result.Err = fmt.Errorf("failed to convert %s: %w", doc.Name, err)
		return result
	}

	pdfName := domain.PDFRenderedName(doc.Name)
	if _, err := f.store.Upload(ctx, driveID, pvFolderID, pdfName, bytes.NewReader(data)); err != nil {
		result.Stage = StageUpload
		result.Err = fmt.Errorf("failed to upload %s: %w", pdfName, err)
		return result
	}

	if err := f.store.Delete(ctx, driveID, doc.ID); err != nil {
		result.Stage = StageDeleteOriginal
		result.Err = fmt.Errorf("failed to delete original %s: %w", doc.Name, err)
		return result
	}

	return result
}
