// Package access holds the resource access policy: a pure decision function
// over the verified claims and the owner of the addressed resource. It never
// touches the store, so it is testable in isolation.
package access

import (
	"github.com/codebin/codebin/internal/models"
	"github.com/codebin/codebin/internal/tokens"
)

// Operation enumerates the resource operations gated by the policy.
type Operation int

const (
	ReadAll Operation = iota
	ReadOne
	Create
	Update
	Delete
)

// CanAccess reports whether the authenticated identity may perform op on a
// resource owned by ownerID. Listing and creating are always allowed; the
// per-instance operations require ownership or the admin role.
func CanAccess(claims *tokens.Claims, ownerID string, op Operation) bool {
	if claims == nil {
		return false
	}
	switch op {
	case ReadAll, Create:
		return true
	}
	if claims.Role == models.RoleAdmin {
		return true
	}
	return claims.Subject != "" && claims.Subject == ownerID
}
