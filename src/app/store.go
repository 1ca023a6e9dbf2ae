package app

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned by ObjectStore.SignedURL when the object does not exist.
var ErrNotFound = errors.New("object not found")

type (
	// ObjectStore is the slice of a cloud bucket the gallery needs.
	ObjectStore interface {
		// List returns the objects and sub-prefixes directly under prefix.
		List(ctx context.Context, prefix string) (ListResult, error)
		// SignedURL returns a time-limited download URL for fullPath.
		SignedURL(ctx context.Context, fullPath string) (string, error)
	}

	ObjectItem struct {
		Name         string
		FullPath     string
		Size         int64
		LastModified time.Time
	}

	PrefixItem struct {
		Name     string
		FullPath string
	}

	ListResult struct {
		Items    []ObjectItem
		Prefixes []PrefixItem
	}

	// StoreOptions are shared by every ObjectStore backend.
	StoreOptions struct {
		// URLExpiry is the lifetime of signed URLs.
		URLExpiry time.Duration
		// Timeout bounds each call to the backend.
		Timeout time.Duration
	}
)

const (
	defaultURLExpiry    = time.Hour
	defaultStoreTimeout = 5 * time.Second
)

func (o StoreOptions) withDefaults() StoreOptions {
	if o.URLExpiry <= 0 {
		o.URLExpiry = defaultURLExpiry
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultStoreTimeout
	}
	return o
}

// folderPrefix turns a folder path into a listing prefix: "" stays the bucket
// root, anything else gets exactly one trailing slash.
func folderPrefix(folder string) string {
	folder = strings.TrimLeft(folder, "/")
	if folder == "" {
		return ""
	}
	return strings.TrimRight(folder, "/") + "/"
}

// baseName is the last segment of an object key or prefix.
func baseName(key string) string {
	return path.Base(strings.TrimRight(key, "/"))
}
