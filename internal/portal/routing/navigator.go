package routing

// Navigator applies guard decisions and tracks where the user is. Each
// completed navigation bumps the epoch; a screen that started a fetch
// before navigating away compares epochs and drops the stale response
// instead of applying it.
type Navigator struct {
	sess    SessionInfo
	current Route
	epoch   int
}

func NewNavigator(sess SessionInfo) *Navigator {
	return &Navigator{sess: sess, current: RouteHome}
}

// Go evaluates the guard for route and moves to it, or to the redirect
// target when denied. The guard runs synchronously on resident session
// state, so an in-flight login can never race a navigation.
func (n *Navigator) Go(route Route) Decision {
	d := Authorize(route, n.sess)
	target := route
	if !d.Allowed {
		target = d.RedirectTo
	}
	if target != n.current {
		n.current = target
		n.epoch++
	}
	return d
}

func (n *Navigator) Current() Route { return n.current }

func (n *Navigator) Epoch() int { return n.epoch }

// StillAt reports whether no navigation happened since epoch was
// captured.
func (n *Navigator) StillAt(epoch int) bool { return n.epoch == epoch }
