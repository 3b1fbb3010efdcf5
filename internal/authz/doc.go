// Package authz implements the authorization core of the ecosystem console:
// a pure, stateless permission evaluation engine over an immutable Principal
// snapshot.
//
// # Model
//
// A permission is an (action, resource) pair. Actions form a closed set
// (CREATE, READ, UPDATE, DELETE, MANAGE, EXPORT, IMPORT); MANAGE subsumes
// every other action on its resource. Resources are string identifiers such
// as "site" or "conference_portal"; the wildcard "*" matches every resource.
// A role holding MANAGE on "*" is a super admin and passes every check.
//
// Roles reach users through role assignments, each optionally scoped to a
// site and/or campus. One user can hold different roles in different tenants
// at the same time without cross-contamination: every hydrated role entry
// carries its own scope.
//
// # Principal
//
// BuildPrincipal hydrates a raw user record plus its role assignments into a
// Principal, resolving each role's permission bundle through the role and
// permission catalogs. Assignments pointing at deleted roles and links
// pointing at deleted permissions are skipped silently (treated as revoked)
// so a Principal is always constructable even from partially stale data;
// a StaleRefFunc hook lets operators observe the drift without changing the
// authorization outcome.
//
// The Principal is immutable once built and must never be persisted: the
// session stores only the raw user identity, and the Principal is rebuilt
// from fresh catalog reads on every login and session restore. That keeps
// the effective permission set from drifting behind role edits.
//
// # Decision function
//
// Can answers "may this principal perform this action on this resource,
// optionally within this scope". It is evaluated against the Principal
// snapshot alone: no I/O, no state, never an error. Every failure mode
// (nil principal, empty role set, stale data) degrades to deny.
//
// Grants are purely additive. There is no deny rule and no precedence:
// access is granted if any single role entry grants it.
//
// A request with no scope matches role entries of any scope. Call sites
// gating tenant data must therefore always pass an explicit site scope;
// see Can for details.
package authz
