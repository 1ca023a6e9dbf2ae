package app

import "time"

// PhotoItem is one displayable gallery image.
type PhotoItem struct {
	// Base name of the object, unique within its folder.
	Name string `json:"name"`

	// Signed URL of the full resolution image.
	URL string `json:"url"`

	// Signed URL of a thumbnail variant, or URL when there is none.
	ThumbnailURL string `json:"thumbnailUrl"`

	// Full object path in the bucket.
	Path string `json:"path"`

	// Size in bytes, when the store reports it.
	Size *int64 `json:"size,omitempty"`

	// Upload time reported by the store.
	TimeCreated *time.Time `json:"timeCreated,omitempty"`
}

// Categories maps a category name to the photos of its folder.
type Categories map[string][]PhotoItem
