package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return model.LoginResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, creds Credentials, role roles.Role) error {
	path := "/auth/register/" + strings.ToLower(role.String())
	return c.doJSON(ctx, http.MethodPost, path, creds, nil)
}

// Logout tells the server to invalidate the credential. Callers treat
// it as best effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil)
}
