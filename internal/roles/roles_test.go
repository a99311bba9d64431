package roles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNormalizesCase(t *testing.T) {
	for in, want := range map[string]Role{
		"ADMIN":    Admin,
		"admin":    Admin,
		" Seller ": Seller,
		"customer": Customer,
		"CUSTOMER": Customer,
	} {
		got, err := Parse(in)
		require.NoError(t, err, "input %q", in)
		require.Equal(t, want, got)
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "SUPERVISOR", "role"} {
		_, err := Parse(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestValid(t *testing.T) {
	for _, r := range All() {
		require.True(t, r.Valid())
	}
	require.False(t, Role("GHOST").Valid())
	require.False(t, Role("").Valid())
}
