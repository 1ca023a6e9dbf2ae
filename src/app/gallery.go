package app

import (
	"context"
	"errors"
	"path"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// GeneralCategory is the category of the bucket root.
	GeneralCategory = "general"

	defaultWorkers = 8
)

var (
	// DefaultThumbnailSuffixes are the variants written by the resize pipeline, in probe order.
	DefaultThumbnailSuffixes = []string{"_200x200", "_400x400", "_300x300"}

	imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

	thumbnailPattern = regexp.MustCompile(`_\d+x\d+`)
)

type (
	// Gallery turns bucket folders into photo collections.
	Gallery struct {
		store    ObjectStore
		suffixes []string
		workers  int
		tracer   trace.Tracer
	}

	GalleryOption func(*Gallery)
)

// WithThumbnailSuffixes replaces the ordered list of thumbnail variants to probe.
func WithThumbnailSuffixes(suffixes []string) GalleryOption {
	return func(g *Gallery) {
		g.suffixes = slices.Clone(suffixes)
	}
}

// WithWorkers bounds how many objects of one folder are resolved at once.
func WithWorkers(n int) GalleryOption {
	return func(g *Gallery) {
		if n > 0 {
			g.workers = n
		}
	}
}

func NewGallery(store ObjectStore, opts ...GalleryOption) *Gallery {
	g := &Gallery{
		store:    store,
		suffixes: slices.Clone(DefaultThumbnailSuffixes),
		workers:  defaultWorkers,
		tracer:   otel.Tracer("portfolio/gallery"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RetrieveFolder returns the displayable photos directly under folderPath.
// It never fails: a listing error yields an empty slice.
func (g *Gallery) RetrieveFolder(ctx context.Context, folderPath string) []PhotoItem {
	ctx, span := g.tracer.Start(ctx, "retrieve_folder",
		trace.WithAttributes(attribute.String("gallery.folder", folderPath)))
	defer span.End()

	photos, err := g.retrieveFolder(ctx, folderPath)
	if err != nil {
		span.RecordError(err)
	}
	photos = softFail("retrieve_folder", folderPath, photos, err, []PhotoItem{})
	span.SetAttributes(attribute.Int("gallery.photos", len(photos)))
	return photos
}

// RetrieveCategories retrieves each folder in turn and keys the result by category name.
func (g *Gallery) RetrieveCategories(ctx context.Context, folderPaths []string) Categories {
	ctx, span := g.tracer.Start(ctx, "retrieve_categories",
		trace.WithAttributes(attribute.StringSlice("gallery.folders", folderPaths)))
	defer span.End()

	categories := make(Categories, len(folderPaths))
	for _, folder := range folderPaths {
		categories[CategoryName(folder)] = g.RetrieveFolder(ctx, folder)
	}
	return categories
}

// ListFolders returns the names of the sub-folders directly under basePath.
func (g *Gallery) ListFolders(ctx context.Context, basePath string) []string {
	ctx, span := g.tracer.Start(ctx, "list_folders",
		trace.WithAttributes(attribute.String("gallery.base", basePath)))
	defer span.End()

	listing, err := g.list(ctx, basePath)
	if err != nil {
		span.RecordError(err)
		return softFail[[]string]("list_folders", basePath, nil, err, []string{})
	}

	folders := make([]string, 0, len(listing.Prefixes))
	for _, prefix := range listing.Prefixes {
		folders = append(folders, prefix.Name)
	}
	return folders
}

// CategoryName derives a category key from a folder path.
func CategoryName(folder string) string {
	name := strings.ToLower(strings.TrimRight(folder, "/"))
	if name == "" {
		return GeneralCategory
	}
	return name
}

func (g *Gallery) retrieveFolder(ctx context.Context, folderPath string) ([]PhotoItem, error) {
	listing, err := g.list(ctx, folderPath)
	if err != nil {
		return nil, err
	}

	candidates := make([]ObjectItem, 0, len(listing.Items))
	for _, item := range listing.Items {
		if reason := skipReason(item.Name); reason != "" {
			gallerySkipped.WithLabelValues(reason).Inc()
			log.Debug().Str("object", item.FullPath).Str("reason", reason).Msg("skipping object")
			continue
		}
		candidates = append(candidates, item)
	}

	resolved := make([]*PhotoItem, len(candidates))
	var group errgroup.Group
	group.SetLimit(g.workers)
	for i, item := range candidates {
		group.Go(func() error {
			photo, err := g.resolvePhoto(ctx, item)
			if err != nil {
				// one broken object must not cost the whole folder
				gallerySkipped.WithLabelValues("error").Inc()
				log.Warn().Err(err).Str("object", item.FullPath).Msg("failed to resolve photo")
				return nil
			}
			resolved[i] = &photo
			return nil
		})
	}
	_ = group.Wait()

	photos := make([]PhotoItem, 0, len(candidates))
	for _, photo := range resolved {
		if photo != nil {
			photos = append(photos, *photo)
		}
	}
	SortPhotos(photos)
	galleryPhotos.Add(float64(len(photos)))
	return photos, nil
}

func (g *Gallery) resolvePhoto(ctx context.Context, item ObjectItem) (PhotoItem, error) {
	url, err := g.signedURL(ctx, item.FullPath)
	if err != nil {
		return PhotoItem{}, err
	}

	thumbnailURL, ok := g.resolveThumbnail(ctx, item.FullPath)
	if !ok {
		thumbnailURL = url
	}

	photo := PhotoItem{
		Name:         item.Name,
		URL:          url,
		ThumbnailURL: thumbnailURL,
		Path:         item.FullPath,
	}
	if item.Size > 0 {
		size := item.Size
		photo.Size = &size
	}
	if !item.LastModified.IsZero() {
		created := item.LastModified
		photo.TimeCreated = &created
	}
	return photo, nil
}

// resolveThumbnail probes the candidate variants in order and stops at the first one that exists.
func (g *Gallery) resolveThumbnail(ctx context.Context, fullPath string) (string, bool) {
	for _, suffix := range g.suffixes {
		candidate := ThumbnailPath(fullPath, suffix)
		url, err := g.signedURL(ctx, candidate)
		switch {
		case err == nil:
			thumbnailProbes.WithLabelValues("hit").Inc()
			return url, true
		case errors.Is(err, ErrNotFound):
			thumbnailProbes.WithLabelValues("miss").Inc()
		default:
			thumbnailProbes.WithLabelValues("error").Inc()
			log.Debug().Err(err).Str("candidate", candidate).Msg("thumbnail probe failed")
		}
		if ctx.Err() != nil {
			break
		}
	}
	return "", false
}

func (g *Gallery) list(ctx context.Context, prefix string) (ListResult, error) {
	start := time.Now()
	listing, err := g.store.List(ctx, prefix)
	observeStore("list", start, err)
	return listing, err
}

func (g *Gallery) signedURL(ctx context.Context, fullPath string) (string, error) {
	start := time.Now()
	url, err := g.store.SignedURL(ctx, fullPath)
	observeStore("sign", start, err)
	return url, err
}

func observeStore(op string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	storeRequestDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}

// skipReason tells why an object is not a gallery image, or "" when it is one.
func skipReason(name string) string {
	if IsThumbnail(name) {
		return "thumbnail"
	}
	if !IsImage(name) {
		return "extension"
	}
	return ""
}

// IsImage reports whether name carries one of the gallery image extensions.
func IsImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsThumbnail reports whether name looks like a derived WIDTHxHEIGHT variant.
func IsThumbnail(name string) bool {
	return thumbnailPattern.MatchString(name)
}

// ThumbnailPath inserts suffix right before the extension of fullPath.
func ThumbnailPath(fullPath, suffix string) string {
	ext := path.Ext(fullPath)
	return strings.TrimSuffix(fullPath, ext) + suffix + ext
}

// SortPhotos orders newest first when both photos carry a timestamp and by
// name otherwise, comparing names the way a browser's localeCompare does.
func SortPhotos(photos []PhotoItem) {
	col := collate.New(language.English)
	slices.SortStableFunc(photos, func(a, b PhotoItem) int {
		if a.TimeCreated != nil && b.TimeCreated != nil && !a.TimeCreated.Equal(*b.TimeCreated) {
			return b.TimeCreated.Compare(*a.TimeCreated)
		}
		return col.CompareString(a.Name, b.Name)
	})
}
