// handlers_cities.go - City table and map handlers
package api

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// CityHandlerImpl implements the CityHandler interface
type CityHandlerImpl struct {
	page PageService
}

// NewCityHandler creates a new city handler
func NewCityHandler(page PageService) CityHandler {
	return &CityHandlerImpl{page: page}
}

// HandleListCities returns the city table in declaration order
func (h *CityHandlerImpl) HandleListCities(c echo.Context) error {
	return c.JSON(http.StatusOK, h.page.CityRecords())
}

// HandleGetCity returns a resolved city with its map focus and photo folder
func (h *CityHandlerImpl) HandleGetCity(c echo.Context) error {
	name, err := cityParam(c)
	if err != nil {
		return err
	}

	view, err := h.page.City(name)
	if err != nil {
		return domainError(err, name)
	}
	return c.JSON(http.StatusOK, view)
}

// HandleGetCityMap returns the map focus and, when available, the country outline.
// A missing outline is reported in the body's warning field with status 200.
func (h *CityHandlerImpl) HandleGetCityMap(c echo.Context) error {
	name, err := cityParam(c)
	if err != nil {
		return err
	}

	view, err := h.page.Map(name)
	if err != nil {
		return domainError(err, name)
	}
	return c.JSON(http.StatusOK, view)
}

// cityParam returns the unescaped :name path parameter.
func cityParam(c echo.Context) (string, error) {
	raw := c.Param("name")
	if raw == "" {
		return "", NewValidationError("name")
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", NewBadRequestError("invalid city name", err)
	}
	return name, nil
}
