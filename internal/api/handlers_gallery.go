// handlers_gallery.go - Gallery layout and photo file handlers
package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/cuenta-regresiva/backend/internal/storage"
)

// GalleryHandlerImpl implements the GalleryHandler interface
type GalleryHandlerImpl struct {
	page     PageService
	sessions SessionManager
	store    storage.Store
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(page PageService, sessions SessionManager, store storage.Store) GalleryHandler {
	return &GalleryHandlerImpl{
		page:     page,
		sessions: sessions,
		store:    store,
	}
}

// HandleGallery returns the gallery for the requested folder.
// The city comes from ?city=, else from ?session=, else from the profile's
// default city when per-city galleries are enabled; otherwise the image root
// is used. A short folder still answers 200 with available=false.
func (h *GalleryHandlerImpl) HandleGallery(c echo.Context) error {
	city, err := h.galleryCity(c)
	if err != nil {
		return err
	}

	g, err := h.page.Gallery(city)
	if err != nil {
		return domainError(err, city)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GalleryHandlerImpl) galleryCity(c echo.Context) (string, error) {
	if city := c.QueryParam("city"); city != "" {
		return city, nil
	}

	if id := c.QueryParam("session"); id != "" {
		s, err := h.sessions.Get(id)
		if err != nil {
			return "", domainError(err, id)
		}
		if s.City != "" {
			return s.City, nil
		}
	}

	profile := h.page.Info().Profile
	if profile != nil && profile.Features.CityGallery {
		return profile.DefaultCity, nil
	}
	return "", nil
}

// HandlePhoto streams a file from the asset root
func (h *GalleryHandlerImpl) HandlePhoto(c echo.Context) error {
	rel := c.Param("*")
	if rel == "" {
		return NewValidationError("path")
	}
	if !storage.IsImage(rel) {
		return NewNotFoundError("photo", rel)
	}

	rc, err := h.store.Open(rel)
	if err != nil {
		if errors.Is(err, storage.ErrOutsideRoot) {
			return domainError(err, rel)
		}
		fmt.Printf("[Photos] Failed to open %s: %v\n", rel, err)
		return NewNotFoundError("photo", rel)
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(rel))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
