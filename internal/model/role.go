package model

import "fmt"

// Role is the closed set of access tiers known to the application.
// Every authorization boundary matches on this type rather than on a
// raw string so that an unknown tier can never slip through a
// comparison unnoticed.
type Role string

const (
    RoleUser   Role = "user"   // regular guest account, can book listings
    RoleSeller Role = "seller" // owns listings and manages their own inventory
    RoleAdmin  Role = "admin"  // full access to the admin namespace
)

// ParseRole converts a raw string into a Role. It returns an error for
// any value outside the closed set; callers decide whether to reject
// the input or fall back to RoleUser.
func ParseRole(s string) (Role, error) {
    switch Role(s) {
    case RoleUser:
        return RoleUser, nil
    case RoleSeller:
        return RoleSeller, nil
    case RoleAdmin:
        return RoleAdmin, nil
    }
    return "", fmt.Errorf("unknown role %q", s)
}

// String returns the wire representation of the role.
func (r Role) String() string { return string(r) }

// CanManageListings reports whether the role is allowed to create or
// edit listings (sellers manage their own, admins manage all).
func (r Role) CanManageListings() bool { return r == RoleSeller || r == RoleAdmin }
