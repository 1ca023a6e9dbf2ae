package server

import (
	"context"
	"net/http"
	"time"

	app "portfolio/src/app"
	"portfolio/src/notify"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type (
	// GalleryService is the read side of the photo gallery.
	GalleryService interface {
		RetrieveFolder(ctx context.Context, folderPath string) []app.PhotoItem
		RetrieveCategories(ctx context.Context, folderPaths []string) app.Categories
		ListFolders(ctx context.Context, basePath string) []string
	}

	AppHandler struct {
		gallery        GalleryService
		galleryTimeout time.Duration
		mailer         notify.Mailer
		composer       *notify.Composer
		validate       *validator.Validate
	}

	HandlerOption func(*AppHandler)
)

// WithGalleryTimeout bounds each gallery request. Keep it below the server
// write timeout so a slow bucket still yields a (possibly empty) response.
func WithGalleryTimeout(d time.Duration) HandlerOption {
	return func(a *AppHandler) {
		if d > 0 {
			a.galleryTimeout = d
		}
	}
}

func NewHandler(gallery GalleryService, mailer notify.Mailer, composer *notify.Composer, opts ...HandlerOption) *AppHandler {
	a := &AppHandler{
		gallery:  gallery,
		mailer:   mailer,
		composer: composer,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *AppHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
