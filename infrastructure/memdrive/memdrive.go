// Package memdrive is an in-memory storage.DriveClient. It backs the "memory"
// drive backend for local development and serves as a deterministic fake in tests.
package memdrive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"drive-upload-services/domain/storage"

	"github.com/google/uuid"
)

// Entry is a stored file or folder
type Entry struct {
	storage.FileInfo
	ParentID string
	Trashed  bool
	Content  []byte
}

// Drive holds files and folders in memory, in creation order
type Drive struct {
	mu      sync.Mutex
	entries []*Entry
	byID    map[string]*Entry
	now     func() time.Time

	// Calls counts DriveClient method invocations by method name
	Calls map[string]int
}

// Option configures a Drive
type Option func(*Drive)

// WithClock sets the clock used for created times
func WithClock(now func() time.Time) Option {
	return func(d *Drive) {
		d.now = now
	}
}

// WithFolder seeds a root folder under a fixed id, so configured folder ids
// resolve in a fresh Drive. Empty or repeated ids are ignored.
func WithFolder(id, name string) Option {
	return func(d *Drive) {
		if id == "" {
			return
		}
		if _, ok := d.byID[id]; ok {
			return
		}
		d.add("", storage.FileInfo{ID: id, Name: name, MimeType: storage.MimeTypeFolder}, nil)
	}
}

// New creates an empty Drive
func New(opts ...Option) *Drive {
	d := &Drive{
		byID:  make(map[string]*Entry),
		now:   time.Now,
		Calls: make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddFolder seeds a folder and returns its id. An empty parentID makes a root;
// driveID marks the folder as belonging to a shared drive.
func (d *Drive) AddFolder(parentID, name, driveID string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.add(parentID, storage.FileInfo{Name: name, MimeType: storage.MimeTypeFolder, DriveID: driveID}, nil).ID
}

// AddFile seeds a file and returns its id
func (d *Drive) AddFile(parentID, name, mimeType string, content []byte) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.add(parentID, storage.FileInfo{Name: name, MimeType: mimeType}, content).ID
}

// Trash marks an entry as trashed
func (d *Drive) Trash(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.byID[id]; ok {
		e.Trashed = true
	}
}

// Get returns a copy of the entry with the given id
func (d *Drive) Get(id string) (Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.byID[id]
	if !ok {
		return Entry{}, false
	}
	cp := *e
	cp.Content = bytes.Clone(e.Content)
	return cp, true
}

// Children returns copies of the non-trashed entries directly under parentID, in creation order
func (d *Drive) Children(parentID string) []Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Entry
	for _, e := range d.entries {
		if e.ParentID == parentID && !e.Trashed {
			cp := *e
			cp.Content = bytes.Clone(e.Content)
			out = append(out, cp)
		}
	}
	return out
}

func (d *Drive) add(parentID string, info storage.FileInfo, content []byte) *Entry {
	if info.ID == "" {
		info.ID = uuid.NewString()
	}
	info.Size = int64(len(content))
	info.CreatedTime = d.now().UTC()
	info.WebViewLink = fmt.Sprintf("https://drive.google.com/file/d/%s/view", info.ID)
	if parent, ok := d.byID[parentID]; ok && info.DriveID == "" {
		info.DriveID = parent.DriveID
	}

	e := &Entry{FileInfo: info, ParentID: parentID, Content: content}
	d.entries = append(d.entries, e)
	d.byID[info.ID] = e
	return e
}

func (d *Drive) parent(id string) (*Entry, error) {
	e, ok := d.byID[id]
	if !ok || e.Trashed {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return e, nil
}

// GetFile implements storage.DriveClient
func (d *Drive) GetFile(ctx context.Context, fileID string) (*storage.FileInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls["GetFile"]++

	e, err := d.parent(fileID)
	if err != nil {
		return nil, err
	}
	info := e.FileInfo
	return &info, nil
}

// FindFolders implements storage.DriveClient
func (d *Drive) FindFolders(ctx context.Context, parentID, name, driveID string) ([]storage.FileInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls["FindFolders"]++

	var out []storage.FileInfo
	for _, e := range d.entries {
		if e.Trashed || e.ParentID != parentID || !e.IsFolder() || e.Name != name {
			continue
		}
		if driveID != "" && e.DriveID != driveID {
			continue
		}
		out = append(out, e.FileInfo)
	}
	return out, nil
}

// CreateFolder implements storage.DriveClient
func (d *Drive) CreateFolder(ctx context.Context, parentID, name string) (*storage.FileInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls["CreateFolder"]++

	if _, err := d.parent(parentID); err != nil {
		return nil, err
	}
	info := d.add(parentID, storage.FileInfo{Name: name, MimeType: storage.MimeTypeFolder}, nil).FileInfo
	return &info, nil
}

// FindFileByName implements storage.DriveClient
func (d *Drive) FindFileByName(ctx context.Context, folderID, name string) (*storage.FileInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls["FindFileByName"]++

	for _, e := range d.entries {
		if !e.Trashed && e.ParentID == folderID && !e.IsFolder() && e.Name == name {
			info := e.FileInfo
			return &info, nil
		}
	}
	return nil, nil
}

// UploadFile implements storage.DriveClient
func (d *Drive) UploadFile(ctx context.Context, req storage.UploadRequest) (*storage.FileInfo, error) {
	content, err := io.ReadAll(req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls["UploadFile"]++

	if _, err := d.parent(req.FolderID); err != nil {
		return nil, err
	}
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = storage.MimeTypeOctetStream
	}
	info := d.add(req.FolderID, storage.FileInfo{Name: req.FileName, MimeType: mimeType}, content).FileInfo
	return &info, nil
}

// UpdateFileContent implements storage.DriveClient
func (d *Drive) UpdateFileContent(ctx context.Context, fileID, mimeType string, content io.Reader) (*storage.FileInfo, error) {
	b, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls["UpdateFileContent"]++

	e, err := d.parent(fileID)
	if err != nil {
		return nil, err
	}
	e.Content = b
	e.Size = int64(len(b))
	if mimeType != "" {
		e.MimeType = mimeType
	}
	info := e.FileInfo
	return &info, nil
}

var _ storage.DriveClient = (*Drive)(nil)
