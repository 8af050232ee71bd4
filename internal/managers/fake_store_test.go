package managers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/essaihub/dossier/pkg/graphfs"
)

// fakeStore is an in-memory FileStore. Items live in a flat list with
// parent pointers; listing order is insertion order, matching the
// stable-by-accident ordering of the real store closely enough for the
// managers.
type fakeStore struct {
	site   graphfs.Site
	drives []graphfs.Drive
	items  []*fakeItem

	nextID int

	// Per-operation error injection.
	listErr       map[string]error // keyed by parent id
	downloadErr   map[string]error // keyed by item id
	downloadAsErr map[string]error // keyed by item id
	uploadErr     map[string]error // keyed by file name
	deleteErr     map[string]error // keyed by item id
	moveErr       error
	copyErr       error
	editLinkErr   error

	// Rendered content returned by DownloadAs, keyed by item id.
	renditions map[string]string

	// Call records.
	copies    []copyCall
	editLinks []string
}

type fakeItem struct {
	id       string
	parentID string
	name     string
	folder   bool
	mimeType string
	content  []byte
}

type copyCall struct {
	itemID   string
	parentID string
	newName  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		site:          graphfs.Site{ID: "site-1", Name: "essais"},
		drives:        []graphfs.Drive{{ID: "drive-1", Name: "Documents"}},
		listErr:       map[string]error{},
		downloadErr:   map[string]error{},
		downloadAsErr: map[string]error{},
		uploadErr:     map[string]error{},
		deleteErr:     map[string]error{},
		renditions:    map[string]string{},
	}
}

func (f *fakeStore) addFolder(parentID, name string) string {
	return f.add(&fakeItem{parentID: parentID, name: name, folder: true})
}

func (f *fakeStore) addFile(parentID, name, content, mimeType string) string {
	return f.add(&fakeItem{parentID: parentID, name: name, content: []byte(content), mimeType: mimeType})
}

func (f *fakeStore) add(item *fakeItem) string {
	f.nextID++
	item.id = fmt.Sprintf("item-%d", f.nextID)
	f.items = append(f.items, item)
	return item.id
}

func (f *fakeStore) find(id string) *fakeItem {
	for _, item := range f.items {
		if item.id == id {
			return item
		}
	}
	return nil
}

func (f *fakeStore) findByName(parentID, name string) *fakeItem {
	for _, item := range f.items {
		if item.parentID == parentID && item.name == name {
			return item
		}
	}
	return nil
}

func (f *fakeStore) toItem(item *fakeItem) graphfs.Item {
	out := graphfs.Item{
		ID:   item.id,
		Name: item.name,
		Size: int64(len(item.content)),
		ParentReference: &graphfs.ItemReference{
			DriveID: f.drives[0].ID,
			ID:      item.parentID,
		},
	}
	if item.folder {
		out.Folder = &graphfs.FolderFacet{}
	} else {
		out.File = &graphfs.FileFacet{MimeType: item.mimeType}
	}
	return out
}

func (f *fakeStore) ResolveSiteByPath(ctx context.Context, hostPath string) (graphfs.Site, error) {
	return f.site, nil
}

func (f *fakeStore) ListSiteDrives(ctx context.Context, siteID string) ([]graphfs.Drive, error) {
	return f.drives, nil
}

// GetItemByPath walks the path segments from the drive root. Root items
// have an empty parent id.
func (f *fakeStore) GetItemByPath(ctx context.Context, driveID, itemPath string) (graphfs.Item, error) {
	parentID := ""
	var current *fakeItem

	for _, segment := range strings.Split(strings.Trim(itemPath, "/"), "/") {
		current = f.findByName(parentID, segment)
		if current == nil {
			return graphfs.Item{}, &graphfs.Error{StatusCode: 404, Code: "itemNotFound", Message: itemPath}
		}
		parentID = current.id
	}

	return f.toItem(current), nil
}

func (f *fakeStore) ListChildren(ctx context.Context, driveID, itemID string) ([]graphfs.Item, error) {
	if err := f.listErr[itemID]; err != nil {
		return nil, err
	}

	var children []graphfs.Item
	for _, item := range f.items {
		if item.parentID == itemID {
			children = append(children, f.toItem(item))
		}
	}
	return children, nil
}

func (f *fakeStore) Download(ctx context.Context, driveID, itemID string) ([]byte, error) {
	if err := f.downloadErr[itemID]; err != nil {
		return nil, err
	}

	item := f.find(itemID)
	if item == nil {
		return nil, &graphfs.Error{StatusCode: 404, Code: "itemNotFound"}
	}
	return item.content, nil
}

func (f *fakeStore) DownloadAs(ctx context.Context, driveID, itemID, format string) ([]byte, error) {
	if err := f.downloadAsErr[itemID]; err != nil {
		return nil, err
	}

	if rendered, ok := f.renditions[itemID]; ok {
		return []byte(rendered), nil
	}
	return nil, &graphfs.Error{StatusCode: 404, Code: "itemNotFound"}
}

func (f *fakeStore) Upload(ctx context.Context, driveID, parentID, name string, content io.Reader) (graphfs.Item, error) {
	if err := f.uploadErr[name]; err != nil {
		return graphfs.Item{}, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return graphfs.Item{}, err
	}

	if existing := f.findByName(parentID, name); existing != nil {
		existing.content = data
		return f.toItem(existing), nil
	}

	id := f.addFile(parentID, name, string(data), "")
	return f.toItem(f.find(id)), nil
}

func (f *fakeStore) Delete(ctx context.Context, driveID, itemID string) error {
	if err := f.deleteErr[itemID]; err != nil {
		return err
	}

	for i, item := range f.items {
		if item.id == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &graphfs.Error{StatusCode: 404, Code: "itemNotFound"}
}

func (f *fakeStore) Move(ctx context.Context, driveID, itemID, newParentID string) (graphfs.Item, error) {
	if f.moveErr != nil {
		return graphfs.Item{}, f.moveErr
	}

	item := f.find(itemID)
	if item == nil {
		return graphfs.Item{}, &graphfs.Error{StatusCode: 404, Code: "itemNotFound"}
	}
	item.parentID = newParentID
	return f.toItem(item), nil
}

func (f *fakeStore) Copy(ctx context.Context, driveID, itemID, targetParentID, newName string) (graphfs.CopyStatus, error) {
	if f.copyErr != nil {
		return graphfs.CopyStatus{}, f.copyErr
	}

	f.copies = append(f.copies, copyCall{itemID: itemID, parentID: targetParentID, newName: newName})
	return graphfs.CopyStatus{Accepted: true, MonitorURL: "https://store.example/monitor/1"}, nil
}

func (f *fakeStore) CreateEditLink(ctx context.Context, driveID, itemID string) (string, error) {
	if f.editLinkErr != nil {
		return "", f.editLinkErr
	}

	f.editLinks = append(f.editLinks, itemID)
	return "https://store.example/edit/" + itemID, nil
}
