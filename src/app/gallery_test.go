package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio/src/app"
	storemock "portfolio/src/app/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func names(photos []app.PhotoItem) []string {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.Name)
	}
	return out
}

func TestRetrieveFolderFiltersObjects(t *testing.T) {
	store := storemock.NewMemory(
		"portfolio/cat.jpg",
		"portfolio/cat_200x200.jpg",
		"portfolio/dog_1024x768.png",
		"portfolio/notes.txt",
		"portfolio/README",
		"portfolio/video.MP4",
		"portfolio/Sunset.JPEG",
		"portfolio/logo.webp",
		"portfolio/loop.GIF",
		"portfolio/nested/deep.jpg",
	)
	gallery := app.NewGallery(store)

	photos := gallery.RetrieveFolder(context.Background(), "portfolio/")

	assert.Equal(t, []string{"cat.jpg", "logo.webp", "loop.GIF", "Sunset.JPEG"}, names(photos))
	for _, p := range photos {
		assert.NotRegexp(t, `_\d+x\d+`, p.Name)
	}
}

func TestRetrieveFolderUsesFirstThumbnail(t *testing.T) {
	store := storemock.NewMemory("portfolio/cat.jpg", "portfolio/cat_200x200.jpg", "portfolio/cat_400x400.jpg")
	gallery := app.NewGallery(store)

	photos := gallery.RetrieveFolder(context.Background(), "portfolio/")

	require.Len(t, photos, 1)
	assert.Equal(t, "cat.jpg", photos[0].Name)
	assert.Equal(t, "portfolio/cat.jpg", photos[0].Path)
	assert.Equal(t, storemock.URLFor("portfolio/cat.jpg"), photos[0].URL)
	assert.Equal(t, storemock.URLFor("portfolio/cat_200x200.jpg"), photos[0].ThumbnailURL)
	assert.NotContains(t, store.Signed(), "portfolio/cat_400x400.jpg")
}

func TestRetrieveFolderWithoutThumbnailFallsBackToURL(t *testing.T) {
	store := storemock.NewMemory("portfolio/cat.jpg")
	gallery := app.NewGallery(store)

	photos := gallery.RetrieveFolder(context.Background(), "portfolio")

	require.Len(t, photos, 1)
	assert.Equal(t, photos[0].URL, photos[0].ThumbnailURL)
	assert.Equal(t, []string{
		"portfolio/cat.jpg",
		"portfolio/cat_200x200.jpg",
		"portfolio/cat_400x400.jpg",
		"portfolio/cat_300x300.jpg",
	}, store.Signed())
}

func TestRetrieveFolderProbesInOrder(t *testing.T) {
	ctx := context.Background()
	store := &storemock.Store{}
	store.On("List", mock.Anything, "portfolio/").Return(app.ListResult{
		Items: []app.ObjectItem{{Name: "cat.jpg", FullPath: "portfolio/cat.jpg"}},
	}, nil)
	store.On("SignedURL", mock.Anything, "portfolio/cat.jpg").Return("https://cdn/cat.jpg", nil)
	store.On("SignedURL", mock.Anything, "portfolio/cat_200x200.jpg").Return("", app.ErrNotFound)
	store.On("SignedURL", mock.Anything, "portfolio/cat_400x400.jpg").Return("https://cdn/cat_400x400.jpg", nil)

	photos := app.NewGallery(store).RetrieveFolder(ctx, "portfolio/")

	require.Len(t, photos, 1)
	assert.Equal(t, "https://cdn/cat_400x400.jpg", photos[0].ThumbnailURL)
	store.AssertNotCalled(t, "SignedURL", mock.Anything, "portfolio/cat_300x300.jpg")

	var probed []string
	for _, call := range store.Calls {
		if call.Method == "SignedURL" {
			probed = append(probed, call.Arguments.String(1))
		}
	}
	assert.Equal(t, []string{"portfolio/cat.jpg", "portfolio/cat_200x200.jpg", "portfolio/cat_400x400.jpg"}, probed)
}

func TestRetrieveFolderCustomSuffixes(t *testing.T) {
	store := storemock.NewMemory("art/piece.png", "art/piece_64x64.png", "art/piece_200x200.png")
	gallery := app.NewGallery(store, app.WithThumbnailSuffixes([]string{"_64x64"}), app.WithWorkers(1))

	photos := gallery.RetrieveFolder(context.Background(), "art/")

	require.Len(t, photos, 1)
	assert.Equal(t, storemock.URLFor("art/piece_64x64.png"), photos[0].ThumbnailURL)
}

func TestRetrieveFolderThumbnailProbeErrorIsNegative(t *testing.T) {
	store := storemock.NewMemory("portfolio/cat.jpg", "portfolio/cat_400x400.jpg")
	store.SignErr["portfolio/cat_200x200.jpg"] = errors.New("connection reset")

	photos := app.NewGallery(store).RetrieveFolder(context.Background(), "portfolio/")

	require.Len(t, photos, 1)
	assert.Equal(t, storemock.URLFor("portfolio/cat_400x400.jpg"), photos[0].ThumbnailURL)
}

func TestRetrieveFolderSortsByNameCaseInsensitive(t *testing.T) {
	store := storemock.NewMemory("p/B.png", "p/a.png", "p/c.jpg")

	photos := app.NewGallery(store).RetrieveFolder(context.Background(), "p/")

	assert.Equal(t, []string{"a.png", "B.png", "c.jpg"}, names(photos))
}

func TestRetrieveFolderSortsNewestFirstWhenTimed(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := storemock.NewMemory()
	store.Put(app.ObjectItem{FullPath: "p/a.png", LastModified: base, Size: 10})
	store.Put(app.ObjectItem{FullPath: "p/b.png", LastModified: base.Add(time.Hour), Size: 20})
	store.Put(app.ObjectItem{FullPath: "p/c.png", LastModified: base.Add(-time.Hour), Size: 30})

	photos := app.NewGallery(store).RetrieveFolder(context.Background(), "p/")

	assert.Equal(t, []string{"b.png", "a.png", "c.png"}, names(photos))
	require.NotNil(t, photos[0].TimeCreated)
	require.NotNil(t, photos[0].Size)
	assert.Equal(t, int64(20), *photos[0].Size)
	assert.True(t, base.Add(time.Hour).Equal(*photos[0].TimeCreated))
}

func TestRetrieveFolderSkipsBrokenObject(t *testing.T) {
	store := storemock.NewMemory("p/good.jpg", "p/bad.jpg")
	store.SignErr["p/bad.jpg"] = errors.New("access denied")

	photos := app.NewGallery(store).RetrieveFolder(context.Background(), "p/")

	assert.Equal(t, []string{"good.jpg"}, names(photos))
}

func TestRetrieveFolderListingFailureIsEmpty(t *testing.T) {
	store := storemock.NewMemory("p/a.jpg")
	store.ListErr = errors.New("bucket unreachable")

	photos := app.NewGallery(store).RetrieveFolder(context.Background(), "p/")

	assert.NotNil(t, photos)
	assert.Empty(t, photos)
}

func TestRetrieveFolderEmptyFolder(t *testing.T) {
	photos := app.NewGallery(storemock.NewMemory()).RetrieveFolder(context.Background(), "missing/")

	assert.NotNil(t, photos)
	assert.Empty(t, photos)
}

func TestRetrieveCategories(t *testing.T) {
	store := storemock.NewMemory("Events/party.jpg", "root.png")
	gallery := app.NewGallery(store)

	t.Run("empty folders", func(t *testing.T) {
		categories := app.NewGallery(storemock.NewMemory()).RetrieveCategories(context.Background(), []string{"portfolio/", "events/"})
		assert.Equal(t, app.Categories{"portfolio": {}, "events": {}}, categories)
	})

	t.Run("keys are lowercased and root is general", func(t *testing.T) {
		categories := gallery.RetrieveCategories(context.Background(), []string{"Events/", ""})
		require.Contains(t, categories, "events")
		require.Contains(t, categories, "general")
		assert.Equal(t, []string{"party.jpg"}, names(categories["events"]))
		assert.Equal(t, []string{"root.png"}, names(categories["general"]))
	})

	t.Run("a failing folder does not block others", func(t *testing.T) {
		mocked := &storemock.Store{}
		mocked.On("List", mock.Anything, "broken/").Return(app.ListResult{}, errors.New("denied"))
		mocked.On("List", mock.Anything, "ok/").Return(app.ListResult{
			Items: []app.ObjectItem{{Name: "x.gif", FullPath: "ok/x.gif"}},
		}, nil)
		mocked.On("SignedURL", mock.Anything, "ok/x.gif").Return("https://cdn/x.gif", nil)
		mocked.On("SignedURL", mock.Anything, mock.Anything).Return("", app.ErrNotFound)

		categories := app.NewGallery(mocked).RetrieveCategories(context.Background(), []string{"broken/", "ok/"})
		assert.Empty(t, categories["broken"])
		assert.Equal(t, []string{"x.gif"}, names(categories["ok"]))
	})
}

func TestListFolders(t *testing.T) {
	store := storemock.NewMemory("portfolio/a.jpg", "events/b.jpg", "events/2024/c.jpg", "top.png")
	gallery := app.NewGallery(store)

	assert.Equal(t, []string{"events", "portfolio"}, gallery.ListFolders(context.Background(), ""))
	assert.Equal(t, []string{"2024"}, gallery.ListFolders(context.Background(), "events/"))

	store.ListErr = errors.New("timeout")
	folders := gallery.ListFolders(context.Background(), "")
	assert.NotNil(t, folders)
	assert.Empty(t, folders)
}

func TestCategoryName(t *testing.T) {
	tests := []struct {
		folder   string
		expected string
	}{
		{folder: "portfolio/", expected: "portfolio"},
		{folder: "Events/", expected: "events"},
		{folder: "Travel", expected: "travel"},
		{folder: "", expected: "general"},
		{folder: "/", expected: "general"},
		{folder: "art/2024//", expected: "art/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			assert.Equal(t, tt.expected, app.CategoryName(tt.folder))
		})
	}
}
