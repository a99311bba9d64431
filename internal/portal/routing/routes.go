package routing

import "github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"

type Route string

const (
	RouteLogin        Route = "/login"
	RouteRegister     Route = "/register"
	RouteHome         Route = "/home"
	RouteAdminHome    Route = "/admin-dashboard"
	RouteSellerHome   Route = "/seller-dashboard"
	RouteCustomerHome Route = "/customer-dashboard"
	RouteClients      Route = "/clients"
	RouteProducts     Route = "/products"
	RouteInvoices     Route = "/invoices"
	RouteInvoiceNew   Route = "/invoices/create"
)

// publicRoutes need no session at all.
var publicRoutes = map[Route]bool{
	RouteLogin:    true,
	RouteRegister: true,
	RouteHome:     true,
}

// requiredRoles declares who may enter a guarded route. A route listed
// with no roles admits any logged-in user.
var requiredRoles = map[Route][]roles.Role{
	RouteAdminHome:    {roles.Admin},
	RouteSellerHome:   {roles.Seller},
	RouteCustomerHome: {roles.Customer},
	RouteClients:      {roles.Admin, roles.Seller},
	RouteProducts:     {roles.Admin, roles.Seller},
	RouteInvoices:     {roles.Admin, roles.Seller, roles.Customer},
	RouteInvoiceNew:   {roles.Seller, roles.Customer},
}

// HomeFor maps a role to its dashboard; anything unknown lands on the
// login screen.
func HomeFor(r roles.Role) Route {
	switch r {
	case roles.Admin:
		return RouteAdminHome
	case roles.Seller:
		return RouteSellerHome
	case roles.Customer:
		return RouteCustomerHome
	}
	return RouteLogin
}
