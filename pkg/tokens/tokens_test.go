package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := IssueAccess(secret, "42", "sofia", "SELLER", time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := ParseAccess(tok, secret)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "sofia", claims.Username)
	require.Equal(t, "SELLER", claims.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := IssueAccess(secret, "42", "sofia", "SELLER", time.Now().Add(time.Minute))
	require.NoError(t, err)

	_, err = ParseAccess(tok, []byte("other-secret"))
	require.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := IssueAccess(secret, "42", "sofia", "SELLER", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseAccess(tok, secret)
	require.Error(t, err)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	jti := NewJTI()
	tok, err := IssueRefresh(secret, "42", jti, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ParseRefresh(tok, secret)
	require.NoError(t, err)
	require.Equal(t, jti, claims.ID)
	require.Equal(t, "42", claims.Subject)
}

func TestRefreshSecretNotInterchangeable(t *testing.T) {
	tok, err := IssueRefresh(secret, "42", NewJTI(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = ParseRefresh(tok, []byte("access-secret"))
	require.Error(t, err)
}
