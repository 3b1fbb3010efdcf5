// Package auth connects the authorization core to the rest of the console:
// authentication against the local user table, principal loading from the
// database, and Fiber middleware for route protection.
//
// # Authentication
//
// LocalProvider handles email/password authentication with Argon2id password
// hashing, plus the administrative user lifecycle (create, update, password
// reset, activate/deactivate, soft delete).
//
// # Principal loading
//
// Service.LoadPrincipal fetches the user, its role assignments and the role
// and permission catalogs, then hands them to authz.BuildPrincipal. The
// session stores only the user's identity; every request rebuilds the
// principal from fresh reads, so role edits take effect on the next request
// without touching live sessions. Database failures here fail closed: the
// request is denied, never elevated.
//
// # Middleware
//
//   - RequireAuthenticated: valid session or 401.
//   - RequirePermission: unscoped authz.Can check. Use only for global
//     affordances; an unscoped check matches site-scoped roles too.
//   - RequireSitePermission: authz.Can with the site scope taken from the
//     :siteId route parameter. Every tenant-sensitive route uses this form.
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	app.Get("/api/sites/:siteId/settings",
//	    auth.RequireSitePermission(authService, authz.ActionRead, authz.ResourceSettings),
//	    handler,
//	)
package auth
