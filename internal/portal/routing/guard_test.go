package routing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
)

type fakeSession struct {
	loggedIn bool
	role     roles.Role
}

func (s fakeSession) IsLoggedIn() bool { return s.loggedIn }
func (s fakeSession) Role() roles.Role { return s.role }

func TestPublicRoutesAlwaysAllowed(t *testing.T) {
	for _, route := range []Route{RouteLogin, RouteRegister, RouteHome} {
		d := Authorize(route, fakeSession{})
		require.True(t, d.Allowed, "route %s", route)
	}
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	d := Authorize(RouteInvoices, fakeSession{})

	require.False(t, d.Allowed)
	require.Equal(t, RouteLogin, d.RedirectTo)
}

func TestWrongRoleRedirectedToOwnHomeNotLogin(t *testing.T) {
	d := Authorize(RouteAdminHome, fakeSession{loggedIn: true, role: roles.Seller})

	require.False(t, d.Allowed)
	require.Equal(t, RouteSellerHome, d.RedirectTo)
}

func TestCustomerKeptOutOfCatalogScreens(t *testing.T) {
	sess := fakeSession{loggedIn: true, role: roles.Customer}

	for _, route := range []Route{RouteClients, RouteProducts} {
		d := Authorize(route, sess)
		require.False(t, d.Allowed, "route %s", route)
		require.Equal(t, RouteCustomerHome, d.RedirectTo)
	}
}

func TestInvoicesOpenToEveryRole(t *testing.T) {
	for _, role := range roles.All() {
		d := Authorize(RouteInvoices, fakeSession{loggedIn: true, role: role})
		require.True(t, d.Allowed, "role %s", role)
	}
}

func TestAdminCannotCreateInvoices(t *testing.T) {
	d := Authorize(RouteInvoiceNew, fakeSession{loggedIn: true, role: roles.Admin})

	require.False(t, d.Allowed)
	require.Equal(t, RouteAdminHome, d.RedirectTo)
}

func TestHomeFor(t *testing.T) {
	require.Equal(t, RouteAdminHome, HomeFor(roles.Admin))
	require.Equal(t, RouteSellerHome, HomeFor(roles.Seller))
	require.Equal(t, RouteCustomerHome, HomeFor(roles.Customer))
	require.Equal(t, RouteLogin, HomeFor(roles.Role("GHOST")))
}

func TestNavigatorAppliesDecision(t *testing.T) {
	sess := &fakeSession{}
	nav := NewNavigator(sess)

	d := nav.Go(RouteInvoices)
	require.False(t, d.Allowed)
	require.Equal(t, RouteLogin, nav.Current())

	sess.loggedIn = true
	sess.role = roles.Seller
	d = nav.Go(RouteInvoices)
	require.True(t, d.Allowed)
	require.Equal(t, RouteInvoices, nav.Current())
}

func TestNavigatorEpochBumpsOnMove(t *testing.T) {
	sess := &fakeSession{loggedIn: true, role: roles.Seller}
	nav := NewNavigator(sess)

	before := nav.Epoch()
	nav.Go(RouteInvoices)

	require.False(t, nav.StillAt(before))
	require.True(t, nav.StillAt(nav.Epoch()))
}
