package authz

// Can decides whether the principal may perform action on resource within
// the requested scope. It is the single entry point every protected route
// and affordance goes through.
//
// Evaluation short-circuits on the first role entry that grants:
//
//  1. A nil principal (unauthenticated) is always denied.
//  2. An entry holding MANAGE on "*" grants immediately, regardless of the
//     requested scope or the entry's own scope.
//  3. Otherwise an entry grants when it holds a matching permission
//     (resource equal or wildcard, action equal or MANAGE) AND its scope
//     covers the requested scope.
//
// The zero Scope requests global applicability. Per Scope.Covers, an
// unscoped request is satisfied by an entry of ANY scope, so a check that
// guards tenant data must always pass the tenant's site ID explicitly.
//
// Can never returns an error: anything missing or ambiguous denies. It is
// re-evaluated on every call over the immutable Principal snapshot, so a
// rebuilt Principal is all it takes for role edits to take effect.
func Can(principal *Principal, action Action, resource Resource, scope Scope) bool {
	if principal == nil {
		return false
	}

	for _, entry := range principal.Roles {
		if entry.isSuperAdmin() {
			return true
		}

		if !entry.allows(action, resource) {
			continue
		}

		if !entry.Scope.Covers(scope) {
			continue
		}

		return true
	}

	return false
}
