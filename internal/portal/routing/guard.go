package routing

import (
	"slices"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
)

// SessionInfo is the slice of the session store the guard reads. The
// guard only ever looks at already-persisted state, so it can run
// synchronously before a navigation completes.
type SessionInfo interface {
	IsLoggedIn() bool
	Role() roles.Role
}

type Decision struct {
	Allowed    bool
	RedirectTo Route
}

func allow() Decision            { return Decision{Allowed: true} }
func redirect(to Route) Decision { return Decision{RedirectTo: to} }

// Authorize is the navigation guard. It is advisory routing for the
// UI; the server stays the authority on every call.
func Authorize(route Route, sess SessionInfo) Decision {
	if publicRoutes[route] {
		return allow()
	}
	if !sess.IsLoggedIn() {
		return redirect(RouteLogin)
	}
	required := requiredRoles[route]
	if len(required) > 0 && !slices.Contains(required, sess.Role()) {
		return redirect(HomeFor(sess.Role()))
	}
	return allow()
}
