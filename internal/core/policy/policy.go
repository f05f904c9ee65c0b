// Package policy holds the pure access-control predicates. Functions here
// have no side effects and no storage access; handlers and services call
// them before touching any record.
package policy

import "quartermaster/internal/core/domain"

// Actor is the identity a policy decision runs against, derived from
// verified session claims.
type Actor struct {
	UserID   uint
	Username string
	Role     domain.Role
	BaseID   *uint
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// CanAccessBase decides whether the actor may read or write records of the
// target base. Admins always may; commanders and logistics officers only
// for their home base. The switch is exhaustive over the role set.
func CanAccessBase(a Actor, targetBaseID uint) bool {
	switch a.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleBaseCommander, domain.RoleLogisticsOfficer:
		return a.BaseID != nil && *a.BaseID == targetBaseID
	}
	return false
}

// HasRole reports whether the actor's role is in the allowed set
func HasRole(a Actor, allowed ...domain.Role) bool {
	for _, r := range allowed {
		if a.Role == r {
			return true
		}
	}
	return false
}

// CanAdvanceTransfer decides whether the actor may advance a transfer
// between the given bases (pending -> in_transit -> completed). Admins
// always may; a commander may when the source or destination is their home
// base (destination covers incoming approval).
func CanAdvanceTransfer(a Actor, fromBaseID, toBaseID uint) bool {
	switch a.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleBaseCommander:
		return a.BaseID != nil && (*a.BaseID == fromBaseID || *a.BaseID == toBaseID)
	case domain.RoleLogisticsOfficer:
		return false
	}
	return false
}

// CanCancelTransfer decides whether the actor may cancel a transfer they
// did not necessarily request. Requester and admin only.
func CanCancelTransfer(a Actor, requestedBy uint) bool {
	return a.IsAdmin() || a.UserID == requestedBy
}
