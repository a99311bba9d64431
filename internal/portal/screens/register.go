package screens

import (
	"context"
	"fmt"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/api"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
)

const minPasswordLen = 6

type Registrar interface {
	Register(ctx context.Context, creds api.Credentials, role roles.Role) error
}

type Register struct {
	API Registrar
}

// Submit validates the form locally before any network call: empty
// fields, password confirmation mismatch, and the minimum length all
// fail fast.
func (s *Register) Submit(ctx context.Context, username, password, confirm string, role roles.Role) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", api.ErrValidation)
	}
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", api.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", api.ErrValidation, minPasswordLen)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role", api.ErrValidation)
	}
	return s.API.Register(ctx, api.Credentials{Username: username, Password: password}, role)
}
