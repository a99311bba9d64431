package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/logging"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/service"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/transport"
)

type InvoiceHTTP struct {
	Svc *service.InvoiceService
}

func orderID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return id, nil
}

func (h *InvoiceHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	invoice, err := h.Svc.Create(ctx, req, actorFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, transport.OrderFromModel(invoice))
}

func (h *InvoiceHTTP) List(c echo.Context) error {
	invoices, err := h.Svc.List(c.Request().Context(), actorFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.OrdersFromModels(invoices))
}

func (h *InvoiceHTTP) Get(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	invoice, err := h.Svc.Get(c.Request().Context(), id, actorFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.OrderFromModel(invoice))
}

func (h *InvoiceHTTP) UpdateStatus(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	invoice, err := h.Svc.UpdateStatus(c.Request().Context(), id, req.Status, actorFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.OrderFromModel(invoice))
}
