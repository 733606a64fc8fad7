// handlers_session.go - Selection session handlers
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuenta-regresiva/backend/internal/session"
)

// SelectCityRequest is the body of session create and city selection requests
type SelectCityRequest struct {
	City string `json:"city"`
}

// SessionHandlerImpl implements the SessionHandler interface
type SessionHandlerImpl struct {
	sessions SessionManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions SessionManager) SessionHandler {
	return &SessionHandlerImpl{sessions: sessions}
}

// HandleCreateSession starts a selection session, optionally with a city
func (h *SessionHandlerImpl) HandleCreateSession(c echo.Context) error {
	var req SelectCityRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return NewBadRequestError("invalid request body", err)
		}
	}

	s, err := h.sessions.Create(req.City)
	if err != nil {
		return domainError(err, req.City)
	}
	return c.JSON(http.StatusCreated, s)
}

// HandleGetSession returns the session's current selection
func (h *SessionHandlerImpl) HandleGetSession(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		return domainError(err, id)
	}
	return c.JSON(http.StatusOK, s)
}

// HandleDeleteSession ends a session
func (h *SessionHandlerImpl) HandleDeleteSession(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.sessions.Delete(id); err != nil {
		return domainError(err, id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleSelectCity changes the session's selected city
func (h *SessionHandlerImpl) HandleSelectCity(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	var req SelectCityRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.City == "" {
		return NewValidationError("city")
	}

	s, err := h.sessions.Select(id, req.City)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return domainError(err, id)
		}
		return domainError(err, req.City)
	}
	return c.JSON(http.StatusOK, s)
}
