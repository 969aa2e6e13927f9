// Package fs stores objects on the local filesystem and serves them from a URL prefix.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/reflet/internal/storage"
)

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // directory holding the objects
	URLPrefix string // public URL prefix, e.g. /uploads
}

// Backend is a filesystem implementation of storage.Store.
type Backend struct {
	mu        sync.RWMutex
	baseDir   string
	urlPrefix string
}

// New creates the base directory if needed.
func New(cfg Config) (*Backend, error) {
	if cfg.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	prefix := strings.TrimRight(cfg.URLPrefix, "/")
	if prefix == "" {
		prefix = "/uploads"
	}
	return &Backend{baseDir: cfg.BaseDir, urlPrefix: prefix}, nil
}

// BaseDir returns the directory served under the URL prefix.
func (b *Backend) BaseDir() string { return b.baseDir }

func (b *Backend) resolve(objectPath string) (string, string, error) {
	cleaned, err := storage.CleanPath(objectPath)
	if err != nil {
		return "", "", err
	}
	return cleaned, filepath.Join(b.baseDir, filepath.FromSlash(cleaned)), nil
}

// Upload writes r to objectPath. Without Overwrite the file is created exclusively.
func (b *Backend) Upload(ctx context.Context, objectPath string, r io.Reader, opts storage.UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, filePath, err := b.resolve(objectPath)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	file, err := os.OpenFile(filePath, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return storage.ErrObjectExists
		}
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(filePath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return file.Close()
}

// PublicURL returns the URL the file is served from.
func (b *Backend) PublicURL(objectPath string) string {
	cleaned, err := storage.CleanPath(objectPath)
	if err != nil {
		return ""
	}
	return b.urlPrefix + "/" + cleaned
}

// List returns the regular files directly inside folder.
func (b *Backend) List(ctx context.Context, folder string, opts storage.ListOptions) ([]storage.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := b.baseDir
	if strings.Trim(folder, "/") != "" {
		_, resolved, err := b.resolve(folder)
		if err != nil {
			return nil, err
		}
		dir = resolved
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []storage.ObjectInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	objects := make([]storage.ObjectInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || storage.Hidden(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		key := storage.JoinPath(folder, entry.Name())
		objects = append(objects, storage.ObjectInfo{
			Name:      entry.Name(),
			ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String(),
			CreatedAt: info.ModTime(),
			Size:      info.Size(),
		})
	}
	return storage.SortObjects(objects, opts), nil
}

// Remove deletes objectPath and prunes empty parent directories.
func (b *Backend) Remove(ctx context.Context, objectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, filePath, err := b.resolve(objectPath)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.ErrObjectNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	b.cleanupEmptyDirectories(filepath.Dir(filePath))
	return nil
}

func (b *Backend) cleanupEmptyDirectories(dir string) {
	if filepath.Clean(dir) == filepath.Clean(b.baseDir) {
		return
	}
	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		if os.Remove(dir) == nil {
			b.cleanupEmptyDirectories(filepath.Dir(dir))
		}
	}
}

var _ storage.Store = (*Backend)(nil)
