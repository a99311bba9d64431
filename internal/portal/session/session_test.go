package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/api"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/storage"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
)

type fakeAuth struct {
	resp       model.LoginResponse
	loginErr   error
	logoutErr  error
	loginCalls int
	logoutCall int
}

func (f *fakeAuth) Login(_ context.Context, _ api.Credentials) (model.LoginResponse, error) {
	f.loginCalls++
	return f.resp, f.loginErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCall++
	return f.logoutErr
}

func customerID(id int64) *int64 { return &id }

func TestLoginModernResponse(t *testing.T) {
	kv := storage.NewMemory()
	auth := &fakeAuth{resp: model.LoginResponse{
		AccessToken:  "acc-1",
		RefreshToken: "ref-1",
		Username:     "amina",
		Role:         "CUSTOMER",
		CustomerID:   customerID(7),
	}}
	store := New(kv, auth)

	sess, err := store.Login(context.Background(), "amina", "secret")
	require.NoError(t, err)
	require.Equal(t, "acc-1", sess.Credential)
	require.Equal(t, roles.Customer, sess.Role)

	require.True(t, store.IsLoggedIn())
	require.Equal(t, "acc-1", store.Token())
	require.Equal(t, "amina", store.Username())
	require.Equal(t, roles.Customer, store.Role())

	id, ok := store.CustomerID()
	require.True(t, ok)
	require.Equal(t, int64(7), id)

	refresh, ok, err := kv.Get("refreshToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ref-1", refresh)
}

func TestLoginLegacyTokenOnlyResponse(t *testing.T) {
	kv := storage.NewMemory()
	auth := &fakeAuth{resp: model.LoginResponse{
		Token:    "legacy-1",
		Username: "sofia",
		Role:     "SELLER",
	}}
	store := New(kv, auth)

	sess, err := store.Login(context.Background(), "sofia", "secret")
	require.NoError(t, err)
	require.Equal(t, "legacy-1", sess.Credential)

	require.True(t, store.IsLoggedIn())
	require.Equal(t, "legacy-1", store.Token())
	require.Equal(t, roles.Seller, store.Role())

	_, ok, _ := kv.Get("accessToken")
	require.False(t, ok)
}

func TestLoginWithoutCredentialFails(t *testing.T) {
	store := New(storage.NewMemory(), &fakeAuth{resp: model.LoginResponse{
		Username: "amina",
		Role:     "CUSTOMER",
	}})

	_, err := store.Login(context.Background(), "amina", "secret")
	require.ErrorIs(t, err, ErrProtocol)
	require.False(t, store.IsLoggedIn())
}

func TestLoginUnknownRoleFails(t *testing.T) {
	store := New(storage.NewMemory(), &fakeAuth{resp: model.LoginResponse{
		Token:    "t",
		Username: "amina",
		Role:     "SUPERVISOR",
	}})

	_, err := store.Login(context.Background(), "amina", "secret")
	require.ErrorIs(t, err, ErrProtocol)
	require.False(t, store.IsLoggedIn())
}

func TestCustomerLoginRequiresCustomerID(t *testing.T) {
	store := New(storage.NewMemory(), &fakeAuth{resp: model.LoginResponse{
		Token:    "t",
		Username: "amina",
		Role:     "CUSTOMER",
	}})

	_, err := store.Login(context.Background(), "amina", "secret")
	require.ErrorIs(t, err, ErrProtocol)
}

func TestLoginErrorPropagates(t *testing.T) {
	wantErr := errors.New("invalid credentials")
	store := New(storage.NewMemory(), &fakeAuth{loginErr: wantErr})

	_, err := store.Login(context.Background(), "amina", "wrong")
	require.ErrorIs(t, err, wantErr)
	require.False(t, store.IsLoggedIn())
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	kv := storage.NewMemory()
	auth := &fakeAuth{
		resp:      model.LoginResponse{Token: "t", Username: "admin", Role: "ADMIN"},
		logoutErr: errors.New("server unreachable"),
	}
	store := New(kv, auth)

	_, err := store.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	store.Logout(context.Background())

	require.Equal(t, 1, auth.logoutCall)
	require.False(t, store.IsLoggedIn())
	require.Empty(t, store.Username())
	require.Empty(t, store.Role())
	_, ok := store.CustomerID()
	require.False(t, ok)
}

func TestLogoutWhenNotLoggedInSkipsServerCall(t *testing.T) {
	auth := &fakeAuth{}
	store := New(storage.NewMemory(), auth)

	store.Logout(context.Background())

	require.Zero(t, auth.logoutCall)
}

func TestSessionSurvivesStoreRestart(t *testing.T) {
	kv := storage.NewMemory()
	auth := &fakeAuth{resp: model.LoginResponse{
		AccessToken: "acc",
		Username:    "sofia",
		Role:        "SELLER",
	}}

	_, err := New(kv, auth).Login(context.Background(), "sofia", "secret")
	require.NoError(t, err)

	reopened := New(kv, &fakeAuth{})
	require.True(t, reopened.IsLoggedIn())
	require.Equal(t, "sofia", reopened.Username())
	require.Equal(t, roles.Seller, reopened.Role())
}

func TestHasAnyRole(t *testing.T) {
	kv := storage.NewMemory()
	auth := &fakeAuth{resp: model.LoginResponse{Token: "t", Username: "sofia", Role: "SELLER"}}
	store := New(kv, auth)

	_, err := store.Login(context.Background(), "sofia", "secret")
	require.NoError(t, err)

	require.True(t, store.HasRole(roles.Seller))
	require.False(t, store.HasRole(roles.Admin))
	require.True(t, store.HasAnyRole(roles.Admin, roles.Seller))
	require.False(t, store.HasAnyRole(roles.Admin, roles.Customer))

	store.Clear()
	require.False(t, store.HasAnyRole(roles.Admin, roles.Seller, roles.Customer))
}
