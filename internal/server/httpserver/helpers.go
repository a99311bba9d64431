package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/middleware"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/service"
)

func actorFrom(c echo.Context) service.Actor {
	userID, _ := c.Get(middleware.CtxUserID).(int64)
	username, _ := c.Get(middleware.CtxUsername).(string)
	raw, _ := c.Get(middleware.CtxRole).(string)
	role, _ := roles.Parse(raw)
	return service.Actor{UserID: userID, Username: username, Role: role}
}

// httpError maps service sentinels to statuses and keeps the service
// message in the body so clients can show it verbatim.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuth):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrLocked):
		return echo.NewHTTPError(http.StatusLocked, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
