package handler

import "github.com/fwm-platform/ecosystem-console/internal/authz"

// RoleView is the JSON shape of one hydrated role entry.
type RoleView struct {
	Name        string           `json:"name"`
	SiteID      string           `json:"siteId,omitempty"`
	CampusID    string           `json:"campusId,omitempty"`
	Permissions []PermissionView `json:"permissions"`
}

// PermissionView is the JSON shape of a hydrated permission.
type PermissionView struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
}

// PrincipalView is the JSON shape of the authenticated user handed to the
// SPA client: identity plus resolved role/permission/scope entries, the
// password hash never included.
type PrincipalView struct {
	ID        uint64     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
	Roles     []RoleView `json:"roles"`
}

// NewPrincipalView converts a hydrated principal into its JSON shape.
func NewPrincipalView(principal *authz.Principal) PrincipalView {
	view := PrincipalView{
		ID:        principal.UserID,
		Email:     principal.Email,
		FirstName: principal.FirstName,
		LastName:  principal.LastName,
		Roles:     make([]RoleView, 0, len(principal.Roles)),
	}

	for _, entry := range principal.Roles {
		roleView := RoleView{
			Name:        entry.RoleName,
			SiteID:      entry.Scope.SiteID,
			CampusID:    entry.Scope.CampusID,
			Permissions: make([]PermissionView, 0, len(entry.Grants)),
		}

		for _, grant := range entry.Grants {
			roleView.Permissions = append(roleView.Permissions, PermissionView{
				Action:   string(grant.Action),
				Resource: string(grant.Resource),
			})
		}

		view.Roles = append(view.Roles, roleView)
	}

	return view
}
