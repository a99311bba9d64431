package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/models"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/service"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	products, err := h.Svc.ListProducts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	var p models.Product
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	p.ID = 0
	if err := h.Svc.SaveProduct(c.Request().Context(), &p); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var p models.Product
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	p.ID = id
	if err := h.Svc.SaveProduct(c.Request().Context(), &p); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListClients(c echo.Context) error {
	clients, err := h.Svc.ListClients(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, clients)
}

func (h *CatalogHTTP) CreateClient(c echo.Context) error {
	var cl models.Client
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	cl.ID = 0
	if err := h.Svc.SaveClient(c.Request().Context(), &cl); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cl)
}

func (h *CatalogHTTP) UpdateClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var cl models.Client
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	cl.ID = id
	if err := h.Svc.SaveClient(c.Request().Context(), &cl); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *CatalogHTTP) DeleteClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteClient(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
