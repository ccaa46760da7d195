package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/stockroom/inventory-api/internal/repo"
	"github.com/stockroom/inventory-api/internal/service"
)

// httpError maps service and repo errors to the API's error contract.
// Duplicate sku/login intentionally answer 400, not 409. Storage failures
// collapse into a generic 500 without internal detail.
func httpError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrSelfDelete):
		return echo.NewHTTPError(http.StatusBadRequest, "you cannot delete your own user")
	case errors.Is(err, repo.ErrUserAlreadyExist):
		return echo.NewHTTPError(http.StatusBadRequest, "login already registered")
	case errors.Is(err, repo.ErrSKUAlreadyExist):
		return echo.NewHTTPError(http.StatusBadRequest, "sku already exists")
	case errors.Is(err, repo.ErrInsufficientStock):
		return echo.NewHTTPError(http.StatusBadRequest, "insufficient stock")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
