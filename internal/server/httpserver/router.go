package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/middleware"
)

type Deps struct {
	Auth     *AuthHTTP
	Invoices *InvoiceHTTP
	Catalog  *CatalogHTTP
	Document *DocumentHTTP

	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/register/:role", d.Auth.Register)
	api.POST("/auth/refresh", d.Auth.Refresh)

	private := api.Group("", middleware.RequireAuth(d.JWTSecret))

	private.POST("/auth/logout", d.Auth.Logout)

	private.GET("/orders", d.Invoices.List)
	private.POST("/orders", d.Invoices.Create,
		middleware.RequireRole(roles.Seller, roles.Customer))
	private.GET("/orders/:id", d.Invoices.Get)
	private.PUT("/orders/:id/status", d.Invoices.UpdateStatus,
		middleware.RequireRole(roles.Admin, roles.Seller))
	private.GET("/orders/:id/document", d.Document.Download)

	private.GET("/products", d.Catalog.ListProducts)
	private.POST("/products", d.Catalog.CreateProduct,
		middleware.RequireRole(roles.Admin, roles.Seller))
	private.PUT("/products/:id", d.Catalog.UpdateProduct,
		middleware.RequireRole(roles.Admin, roles.Seller))
	private.DELETE("/products/:id", d.Catalog.DeleteProduct,
		middleware.RequireRole(roles.Admin, roles.Seller))

	clients := private.Group("/clients", middleware.RequireRole(roles.Admin, roles.Seller))
	clients.GET("", d.Catalog.ListClients)
	clients.POST("", d.Catalog.CreateClient)
	clients.PUT("/:id", d.Catalog.UpdateClient)
	clients.DELETE("/:id", d.Catalog.DeleteClient)
}
