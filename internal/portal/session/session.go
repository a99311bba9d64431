package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/logging"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/api"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/storage"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
)

// ErrProtocol covers login responses the store cannot turn into a
// session: no credential at all, an unknown role, or a customer login
// without a customer id.
var ErrProtocol = errors.New("protocol error")

// Persisted keys. keyToken is the single authoritative credential:
// IsLoggedIn is true iff it is present.
const (
	keyToken    = "token"
	keyAccess   = "accessToken"
	keyRefresh  = "refreshToken"
	keyUsername = "username"
	keyRole     = "role"
	keyCustomer = "customerId"
)

var sessionKeys = []string{keyToken, keyAccess, keyRefresh, keyUsername, keyRole, keyCustomer}

type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (model.LoginResponse, error)
	Logout(ctx context.Context) error
}

type Session struct {
	Credential string
	Username   string
	Role       roles.Role
	CustomerID *int64
}

// Store owns the authenticated identity. Nothing else writes the
// session keys.
type Store struct {
	kv   storage.KV
	auth AuthAPI
}

func New(kv storage.KV, auth AuthAPI) *Store {
	return &Store{kv: kv, auth: auth}
}

func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	resp, err := s.auth.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		return Session{}, err
	}
	return s.establish(resp)
}

// establish normalizes the two response shapes into one Session and
// persists it.
func (s *Store) establish(resp model.LoginResponse) (Session, error) {
	credential := resp.AccessToken
	if credential == "" {
		credential = resp.Token
	}
	if credential == "" {
		return Session{}, fmt.Errorf("%w: login response carried no credential", ErrProtocol)
	}

	role, err := roles.Parse(resp.Role)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	if role == roles.Customer && resp.CustomerID == nil {
		return Session{}, fmt.Errorf("%w: customer session without customer id", ErrProtocol)
	}

	if err := s.kv.Set(keyToken, credential); err != nil {
		return Session{}, fmt.Errorf("persist session: %w", err)
	}
	if resp.AccessToken != "" {
		if err := s.kv.Set(keyAccess, resp.AccessToken); err != nil {
			return Session{}, fmt.Errorf("persist session: %w", err)
		}
		if resp.RefreshToken != "" {
			if err := s.kv.Set(keyRefresh, resp.RefreshToken); err != nil {
				return Session{}, fmt.Errorf("persist session: %w", err)
			}
		}
	}
	if err := s.kv.Set(keyUsername, resp.Username); err != nil {
		return Session{}, fmt.Errorf("persist session: %w", err)
	}
	if err := s.kv.Set(keyRole, role.String()); err != nil {
		return Session{}, fmt.Errorf("persist session: %w", err)
	}
	if resp.CustomerID != nil {
		if err := s.kv.Set(keyCustomer, strconv.FormatInt(*resp.CustomerID, 10)); err != nil {
			return Session{}, fmt.Errorf("persist session: %w", err)
		}
	}

	return Session{
		Credential: credential,
		Username:   resp.Username,
		Role:       role,
		CustomerID: resp.CustomerID,
	}, nil
}

// Logout notifies the server, best effort, then unconditionally clears
// every persisted session key, whatever the server said.
func (s *Store) Logout(ctx context.Context) {
	if s.IsLoggedIn() && s.auth != nil {
		if err := s.auth.Logout(ctx); err != nil {
			logging.FromContext(ctx).Warn("server logout failed", "error", err)
		}
	}
	s.Clear()
}

func (s *Store) Clear() {
	for _, k := range sessionKeys {
		s.kv.Delete(k)
	}
}

func (s *Store) Token() string {
	v, _, _ := s.kv.Get(keyToken)
	return v
}

func (s *Store) IsLoggedIn() bool {
	return s.Token() != ""
}

func (s *Store) Username() string {
	v, _, _ := s.kv.Get(keyUsername)
	return v
}

// Role returns the stored role, or "" when not logged in.
func (s *Store) Role() roles.Role {
	if !s.IsLoggedIn() {
		return ""
	}
	v, ok, _ := s.kv.Get(keyRole)
	if !ok {
		return ""
	}
	r, err := roles.Parse(v)
	if err != nil {
		return ""
	}
	return r
}

func (s *Store) HasRole(r roles.Role) bool {
	return s.IsLoggedIn() && s.Role() == r
}

func (s *Store) HasAnyRole(rs ...roles.Role) bool {
	if !s.IsLoggedIn() {
		return false
	}
	current := s.Role()
	for _, r := range rs {
		if current == r {
			return true
		}
	}
	return false
}

func (s *Store) CustomerID() (int64, bool) {
	if !s.IsLoggedIn() {
		return 0, false
	}
	v, ok, _ := s.kv.Get(keyCustomer)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
