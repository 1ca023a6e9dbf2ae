package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	baseQueryParam   = "base"
	folderQueryParam = "folder"
)

func (a *AppHandler) galleryContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if a.galleryTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), a.galleryTimeout)
}

func (a *AppHandler) GetFolders(c *gin.Context) {
	ctx, cancel := a.galleryContext(c)
	defer cancel()

	folders := a.gallery.ListFolders(ctx, c.Query(baseQueryParam))
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

func (a *AppHandler) GetPhotos(c *gin.Context) {
	ctx, cancel := a.galleryContext(c)
	defer cancel()

	photos := a.gallery.RetrieveFolder(ctx, c.Query(folderQueryParam))
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

func (a *AppHandler) GetCategories(c *gin.Context) {
	folders := c.QueryArray(folderQueryParam)
	if len(folders) == 0 {
		badRequest(c, "At least one folder is required")
		return
	}

	ctx, cancel := a.galleryContext(c)
	defer cancel()

	categories := a.gallery.RetrieveCategories(ctx, folders)
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
