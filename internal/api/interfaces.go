// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/cuenta-regresiva/backend/internal/models"
)

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// PageHandler serves the page header, the countdown and the timeline chart
type PageHandler interface {
	HandlePage(c echo.Context) error
	HandleCountdown(c echo.Context) error
	HandleCountdownStream(c echo.Context) error
	HandleTimelineChart(c echo.Context) error
}

// CityHandler handles city table lookups
type CityHandler interface {
	HandleListCities(c echo.Context) error
	HandleGetCity(c echo.Context) error
	HandleGetCityMap(c echo.Context) error
}

// GalleryHandler serves the gallery layout and the photo files
type GalleryHandler interface {
	HandleGallery(c echo.Context) error
	HandlePhoto(c echo.Context) error
}

// SessionHandler handles viewer selection sessions
type SessionHandler interface {
	HandleCreateSession(c echo.Context) error
	HandleGetSession(c echo.Context) error
	HandleDeleteSession(c echo.Context) error
	HandleSelectCity(c echo.Context) error
}

// PushHandler pushes countdown ticks over a WebSocket
type PushHandler interface {
	HandleWebSocket(c echo.Context) error
}

// PageService renders page state. *page.Service implements it.
type PageService interface {
	Info() models.PageInfo
	Snapshot() models.Snapshot
	Chart(w io.Writer) error
	CityRecords() []models.CityRecord
	City(name string) (models.CityView, error)
	Map(name string) (models.MapView, error)
	Gallery(city string) (models.Gallery, error)
}

// SessionManager defines the interface for session management
// This allows mocking in tests
type SessionManager interface {
	Create(city string) (models.SelectionSession, error)
	Get(id string) (models.SelectionSession, error)
	Select(id, city string) (models.SelectionSession, error)
	TouchSession(id string) bool
	Delete(id string) error
}
