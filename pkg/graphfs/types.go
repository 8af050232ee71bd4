package graphfs

import "time"

// Site identifies a SharePoint site.
type Site struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	WebURL      string `json:"webUrl"`
}

// Drive identifies a document library inside a site.
type Drive struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DriveType string `json:"driveType"`
	WebURL    string `json:"webUrl"`
}

// Item is a file or folder inside a drive. IDs are opaque handles
// assigned by the file store and are never interpreted locally.
type Item struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Size            int64          `json:"size"`
	WebURL          string         `json:"webUrl"`
	LastModified    time.Time      `json:"lastModifiedDateTime"`
	Folder          *FolderFacet   `json:"folder,omitempty"`
	File            *FileFacet     `json:"file,omitempty"`
	ParentReference *ItemReference `json:"parentReference,omitempty"`
}

// IsFolder reports whether the item carries a folder facet.
func (it Item) IsFolder() bool {
	return it.Folder != nil
}

// MimeType returns the file media type, or an empty string for folders.
func (it Item) MimeType() string {
	if it.File == nil {
		return ""
	}
	return it.File.MimeType
}

type FolderFacet struct {
	ChildCount int `json:"childCount"`
}

type FileFacet struct {
	MimeType string `json:"mimeType"`
}

// ItemReference points at a parent drive/item pair.
type ItemReference struct {
	DriveID string `json:"driveId,omitempty"`
	ID      string `json:"id,omitempty"`
	Path    string `json:"path,omitempty"`
}

// CopyStatus is the outcome of an asynchronous server-side copy. The
// store accepts the copy and completes it in the background; MonitorURL
// can be polled but acceptance is treated as success.
type CopyStatus struct {
	Accepted   bool
	MonitorURL string
}

// SharingLink is the result of a createLink call.
type SharingLink struct {
	ID   string `json:"id"`
	Link struct {
		Type   string `json:"type"`
		Scope  string `json:"scope"`
		WebURL string `json:"webUrl"`
	} `json:"link"`
}

type itemCollection struct {
	Value    []Item `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

type driveCollection struct {
	Value []Drive `json:"value"`
}
