package screens

import (
	"context"
	"fmt"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/api"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/routing"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/session"
)

// Login drives the login form: local validation, session
// establishment, then navigation to the role's dashboard.
type Login struct {
	Session *session.Store
	Nav     *routing.Navigator
}

func (s *Login) Submit(ctx context.Context, username, password string) (routing.Route, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", api.ErrValidation)
	}
	sess, err := s.Session.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	s.Nav.Go(routing.HomeFor(sess.Role))
	return s.Nav.Current(), nil
}

// SignOut clears the session and lands on the login screen.
func (s *Login) SignOut(ctx context.Context) {
	s.Session.Logout(ctx)
	s.Nav.Go(routing.RouteLogin)
}
