package roles

import (
	"fmt"
	"strings"
)

// Role is the closed set of portal roles. Anything the server sends
// outside this set is rejected at the session boundary.
type Role string

const (
	Admin    Role = "ADMIN"
	Seller   Role = "SELLER"
	Customer Role = "CUSTOMER"
)

func Parse(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case Admin:
		return Admin, nil
	case Seller:
		return Seller, nil
	case Customer:
		return Customer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return string(r) }

func (r Role) Valid() bool {
	return r == Admin || r == Seller || r == Customer
}

func All() []Role {
	return []Role{Admin, Seller, Customer}
}
