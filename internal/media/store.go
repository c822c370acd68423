// Package media stores uploaded chat attachments. The gateway only ever deals
// in the returned file reference; where the bytes live is this package's
// concern.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredFile references an uploaded object: an opaque ID for bookkeeping and a
// URL clients can load.
type StoredFile struct {
	ID  string
	URL string
}

// FileStore persists uploaded files.
type FileStore interface {
	Save(file *multipart.FileHeader, scope string) (*StoredFile, error)
}

// DiskStore writes uploads to a local directory that the HTTP server exposes
// statically under BaseURL.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

var _ FileStore = (*DiskStore)(nil)

// Save copies the upload to disk under a collision-free name prefixed with the
// owning scope (couple or user ID).
func (s *DiskStore) Save(file *multipart.FileHeader, scope string) (*StoredFile, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s_%d_%s%s", scope, time.Now().Unix(), uuid.New().String(), ext)

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return nil, err
	}

	return &StoredFile{ID: name, URL: s.BaseURL + "/" + path.Base(name)}, nil
}
