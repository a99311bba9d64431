package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/models"
)

var (
	testJWTSecret     = []byte("test-jwt-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.LoginAttempt{},
		&models.Client{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceLine{},
	)
	require.NoError(t, err, "failed to migrate tables")
	return db
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		DB:            initTestDB(t),
		JWTSecret:     testJWTSecret,
		RefreshSecret: testRefreshSecret,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "sofia", "secret1", roles.Seller))

	var user models.User
	require.NoError(t, svc.DB.Where("username = ?", "sofia").First(&user).Error)
	require.Equal(t, "SELLER", user.Role)
	require.NotEqual(t, "secret1", user.PasswordHash)

	res, err := svc.Login(ctx, "sofia", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.Equal(t, roles.Seller, res.Role)
	require.Nil(t, res.CustomerID)
}

func TestRegisterValidations(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.Register(ctx, "", "secret1", roles.Seller), ErrValidation)
	require.ErrorIs(t, svc.Register(ctx, "sofia", "short", roles.Seller), ErrValidation)
	require.ErrorIs(t, svc.Register(ctx, "sofia", "secret1", roles.Role("GHOST")), ErrValidation)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "sofia", "secret1", roles.Seller))
	require.ErrorIs(t, svc.Register(ctx, "sofia", "secret2", roles.Admin), ErrConflict)
}

func TestRegisterCustomerCreatesClientRecord(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "amina", "secret1", roles.Customer))

	var user models.User
	require.NoError(t, svc.DB.Where("username = ?", "amina").First(&user).Error)
	var client models.Client
	require.NoError(t, svc.DB.Where("user_id = ?", user.ID).First(&client).Error)

	res, err := svc.Login(ctx, "amina", "secret1")
	require.NoError(t, err)
	require.NotNil(t, res.CustomerID)
	require.Equal(t, client.ID, *res.CustomerID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "sofia", "secret1", roles.Seller))

	_, err := svc.Login(ctx, "sofia", "wrong")
	require.ErrorIs(t, err, ErrAuth)

	_, err = svc.Login(ctx, "nobody", "secret1")
	require.ErrorIs(t, err, ErrAuth)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "sofia", "secret1", roles.Seller))

	for i := 0; i < maxFailedLogins; i++ {
		_, err := svc.Login(ctx, "sofia", "wrong")
		require.ErrorIs(t, err, ErrAuth)
	}

	_, err := svc.Login(ctx, "sofia", "secret1")
	require.ErrorIs(t, err, ErrLocked)

	// Other accounts are unaffected.
	require.NoError(t, svc.Register(ctx, "amina", "secret1", roles.Customer))
	_, err = svc.Login(ctx, "amina", "secret1")
	require.NoError(t, err)
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "sofia", "secret1", roles.Seller))
	res, err := svc.Login(ctx, "sofia", "secret1")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, svc.DB.Where("username = ?", "sofia").First(&user).Error)
	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.Refresh(ctx, res.RefreshToken)
	require.ErrorIs(t, err, ErrAuth)
}

func TestRefreshRotatesAndRevokesOnUse(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "sofia", "secret1", roles.Seller))
	res, err := svc.Login(ctx, "sofia", "secret1")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEqual(t, res.RefreshToken, rotated.RefreshToken)

	// The spent token is gone for good.
	_, err = svc.Refresh(ctx, res.RefreshToken)
	require.ErrorIs(t, err, ErrAuth)

	// The rotated one still works.
	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrAuth)
}
