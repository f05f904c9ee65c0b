package services

import "quartermaster/internal/core/policy"

// scopeBaseID resolves the base filter for a list operation. Admins see
// everything and may narrow to a requested base; everyone else is pinned to
// their home base. The second return value signals that the result set must
// be empty (a non-admin without a home base), which narrows rather than
// errors.
func scopeBaseID(actor policy.Actor, requested *uint) (baseID *uint, empty bool) {
	if actor.IsAdmin() {
		return requested, false
	}
	if actor.BaseID == nil {
		return nil, true
	}
	return actor.BaseID, false
}
