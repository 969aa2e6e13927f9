// Package storage defines the object store the media library writes to.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
	"time"
)

var (
	ErrObjectExists   = errors.New("object already exists")
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidPath    = errors.New("invalid object path")
)

// UploadOptions controls how an object is written.
type UploadOptions struct {
	ContentType  string
	CacheControl string
	// Overwrite replaces an existing object. When false an existing path yields ErrObjectExists.
	Overwrite bool
}

// Sort keys accepted by List.
const (
	SortByName      = "name"
	SortByCreatedAt = "created_at"
)

// ListOptions controls List.
type ListOptions struct {
	Limit  int
	SortBy string
	Desc   bool
}

// ObjectInfo describes one stored object. Name is relative to the listed folder.
type ObjectInfo struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

// Store is an object store addressed by slash separated paths.
type Store interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, opts UploadOptions) error
	PublicURL(objectPath string) string
	List(ctx context.Context, folder string, opts ListOptions) ([]ObjectInfo, error)
	Remove(ctx context.Context, objectPath string) error
}

// CleanPath normalises an object path and rejects anything escaping the store root.
func CleanPath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// JoinPath joins a folder and a name. An empty folder means the root.
func JoinPath(folder, name string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// SortObjects orders and truncates a listing in place per opts.
func SortObjects(objects []ObjectInfo, opts ListOptions) []ObjectInfo {
	less := func(i, j int) bool { return objects[i].Name < objects[j].Name }
	if opts.SortBy == SortByCreatedAt {
		less = func(i, j int) bool {
			if objects[i].CreatedAt.Equal(objects[j].CreatedAt) {
				return objects[i].Name < objects[j].Name
			}
			return objects[i].CreatedAt.Before(objects[j].CreatedAt)
		}
	}
	if opts.Desc {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(objects, less)
	if opts.Limit > 0 && len(objects) > opts.Limit {
		objects = objects[:opts.Limit]
	}
	return objects
}

// Hidden reports dot-files, which listings skip.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
