// Package main provides the entry point for the ecosystem console.
// It initializes and runs a web server using the Fiber framework that hosts
// the management console for a multi-tenant site ecosystem: sites and
// campuses, user accounts, roles with scoped assignments, and per-site
// versioned settings. Every route is guarded by a permission engine that
// rebuilds the caller's access rights from the database on each request.
package main
