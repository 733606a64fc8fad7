// routes.go - Route registration helpers
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cuenta-regresiva/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Page            PageService
	Sessions        SessionManager
	Store           storage.Store
	Version         string
	RefreshInterval time.Duration
	// Lifetime ends every open stream when cancelled.
	Lifetime context.Context
}

// Handlers holds all handler instances
type Handlers struct {
	Health  HealthHandler
	Page    PageHandler
	City    CityHandler
	Gallery GalleryHandler
	Session SessionHandler
	Push    PushHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	profileID := ""
	if p := deps.Page.Info().Profile; p != nil {
		profileID = p.ID
	}
	return &Handlers{
		Health:  NewHealthHandler(deps.Version, profileID),
		Page:    NewPageHandler(deps.Page, deps.RefreshInterval, deps.Lifetime),
		City:    NewCityHandler(deps.Page),
		Gallery: NewGalleryHandler(deps.Page, deps.Sessions, deps.Store),
		Session: NewSessionHandler(deps.Sessions),
		Push:    NewWebSocketHandler(deps.Page, deps.Sessions, deps.RefreshInterval, deps.Lifetime),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Page and countdown
	apiGroup.GET("/page", handlers.Page.HandlePage)
	apiGroup.GET("/countdown", handlers.Page.HandleCountdown)
	apiGroup.GET("/countdown/stream", handlers.Page.HandleCountdownStream)
	apiGroup.GET("/timeline/chart.png", handlers.Page.HandleTimelineChart)

	// City table
	apiGroup.GET("/cities", handlers.City.HandleListCities)
	apiGroup.GET("/cities/:name", handlers.City.HandleGetCity)
	apiGroup.GET("/cities/:name/map", handlers.City.HandleGetCityMap)

	// Gallery and photo files
	apiGroup.GET("/gallery", handlers.Gallery.HandleGallery)
	apiGroup.GET("/photos/*", handlers.Gallery.HandlePhoto)

	// Selection sessions
	apiGroup.POST("/sessions", handlers.Session.HandleCreateSession)
	apiGroup.GET("/sessions/:id", handlers.Session.HandleGetSession)
	apiGroup.DELETE("/sessions/:id", handlers.Session.HandleDeleteSession)
	apiGroup.PUT("/sessions/:id/city", handlers.Session.HandleSelectCity)

	// WebSocket push
	apiGroup.GET("/ws", handlers.Push.HandleWebSocket)
}

// MiddlewareOptions selects the optional middleware
type MiddlewareOptions struct {
	RequestLogging   bool
	Compression      bool
	CompressionLevel int
	EnableCORS       bool
	AllowOrigins     string
}

// isStreaming reports whether the request holds its connection open.
func isStreaming(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasSuffix(path, "/stream") ||
		path == "/api/ws" ||
		c.Request().Header.Get("Accept") == "text/event-stream"
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, opts MiddlewareOptions) {
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !opts.RequestLogging {
				return true
			}
			return c.Request().URL.Path == "/api/health" || isStreaming(c)
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
	}))

	if opts.Compression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: opts.CompressionLevel,
			Skipper: func(c echo.Context) bool {
				return isStreaming(c) || strings.HasPrefix(c.Request().URL.Path, "/api/photos/")
			},
		}))
	}

	if opts.EnableCORS {
		origins := strings.Split(opts.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}
