package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/logging"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/service"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	role, err := roles.Parse(c.Param("role"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(ctx, req.Username, req.Password, role); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"username": req.Username})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    res.ExpiresIn,
		Token:        res.AccessToken, // legacy field for older clients
		Username:     res.Username,
		Role:         res.Role.String(),
		CustomerID:   res.CustomerID,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	actor := actorFrom(c)

	if err := h.Svc.Logout(ctx, actor.UserID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refreshToken required")
	}

	res, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    res.ExpiresIn,
		Token:        res.AccessToken,
		Username:     res.Username,
		Role:         res.Role.String(),
	})
}
