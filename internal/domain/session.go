package domain

import "strings"

// Sub-folder names inside a main folder, matched case-insensitively.
const (
	PhotosFolderName = "Photos"
	PVFolderName     = "PV"
)

// ClientNameFallback is used when the folder name does not follow the
// underscore-delimited naming convention.
const ClientNameFallback = "Client inconnu"

// FolderHandle identifies a remote folder. Both ids are opaque handles
// from the file store; the handle is only replaced by re-resolution,
// never mutated.
type FolderHandle struct {
	DriveID  string
	FolderID string
}

// Session is the per-opened-folder state. It owns the resolved main
// folder handle and caches the Photos and PV sub-folder ids once found;
// an empty id means not yet resolved (or absent at last look).
type Session struct {
	Identifier Identifier
	ClientName string
	FolderName string
	Folder     FolderHandle

	PhotosFolderID string
	PVFolderID     string
}

// ClientNameFromFolder derives the client name from the folder naming
// convention: the third underscore-delimited segment, e.g.
// "0001_ProjetX_ClientY_2024" yields "ClientY".
func ClientNameFromFolder(folderName string) string {
	segments := strings.Split(folderName, "_")
	if len(segments) < 3 || segments[2] == "" {
		return ClientNameFallback
	}
	return segments[2]
}

// IsSubFolder reports whether name designates the given sub-folder,
// ignoring case.
func IsSubFolder(name, subFolder string) bool {
	return strings.EqualFold(name, subFolder)
}
