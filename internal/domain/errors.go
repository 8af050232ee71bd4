package domain

import "errors"

var (
	// ErrInvalidIdentifier is returned for input that does not reduce to
	// an 8-character alphanumeric code.
	ErrInvalidIdentifier = errors.New("invalid affaire identifier")

	// ErrFolderNotFound means no folder in the working directory
	// contains the identifier in its name.
	ErrFolderNotFound = errors.New("affaire folder not found")

	// ErrPhotosFolderNotFound means the Photos sub-folder is absent.
	ErrPhotosFolderNotFound = errors.New("photos sub-folder not found")

	// ErrPVFolderNotFound means the PV sub-folder is absent.
	ErrPVFolderNotFound = errors.New("pv sub-folder not found")

	// ErrDocumentNotFound means no document with the requested prefix
	// exists in the PV sub-folder.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnsupportedFormat means a document exists but its extension is
	// neither locally viewable nor web-editable.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
