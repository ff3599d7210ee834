package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store abstracts media storage for uploaded artwork files. Paths handed back
// and forth are relative to the static root (e.g. "uploads/artworks/x.jpg"),
// which is what gets persisted on artwork records and served by the router.
type Store interface {
	Save(originalName string, data io.Reader) (string, error)
	Delete(relPath string) error
	AbsPath(relPath string) string
}

// FileSystemStore keeps uploaded media on the local filesystem under a static
// root directory.
type FileSystemStore struct {
	staticRoot string // on-disk root served at /static
	uploadDir  string // subdirectory for artwork media, relative to staticRoot
}

// NewFileSystemStore creates the storage backend and its upload directory.
func NewFileSystemStore(staticRoot, uploadDir string) (*FileSystemStore, error) {
	uploadDir = strings.TrimPrefix(filepath.ToSlash(uploadDir), "static/")
	fs := &FileSystemStore{staticRoot: staticRoot, uploadDir: uploadDir}
	if err := os.MkdirAll(filepath.Join(staticRoot, uploadDir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return fs, nil
}

// Save writes the uploaded data under a timestamped unique name and returns
// the stored relative path.
func (fs *FileSystemStore) Save(originalName string, data io.Reader) (string, error) {
	name := filepath.Base(originalName)
	if name == "." || name == "" {
		name = "file"
	}
	// Timestamp keeps listings sortable on disk; the uuid segment makes the
	// name collision-proof for simultaneous uploads of the same file.
	unique := fmt.Sprintf("%s_%s_%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8], sanitizeName(name))
	relPath := filepath.ToSlash(filepath.Join(fs.uploadDir, unique))

	dst, err := os.Create(filepath.Join(fs.staticRoot, relPath))
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", relPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		// Drop the partial file so failed uploads leave nothing behind
		os.Remove(filepath.Join(fs.staticRoot, relPath))
		return "", fmt.Errorf("write file %s: %w", relPath, err)
	}
	return relPath, nil
}

// Delete removes a stored file. A file that is already gone is not an error.
func (fs *FileSystemStore) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	if err := os.Remove(fs.AbsPath(relPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file %s: %w", relPath, err)
	}
	return nil
}

// AbsPath resolves a stored relative path against the static root.
func (fs *FileSystemStore) AbsPath(relPath string) string {
	return filepath.Join(fs.staticRoot, filepath.FromSlash(relPath))
}

// sanitizeName strips characters that are unsafe in filenames across platforms.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
