package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/fwm-platform/ecosystem-console/internal/authz"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/assignment"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/permission"
	"github.com/fwm-platform/ecosystem-console/internal/db/controller/role"
	"github.com/fwm-platform/ecosystem-console/internal/db/models"
)

// Service loads principals for authenticated users and answers permission
// checks for the web layer.
type Service struct {
	db      *gorm.DB
	onStale authz.StaleRefFunc
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SetStaleRefHook installs a diagnostic hook observing dangling references
// dropped during principal hydration. Operators use it to detect drift
// between assignments and the role/permission catalog; it never changes an
// authorization outcome.
func (s *Service) SetStaleRefHook(hook authz.StaleRefFunc) {
	s.onStale = hook
}

// LoadPrincipal fetches the user, its assignments and the catalogs, and
// hydrates a fresh Principal. Called on every request carrying a session:
// the hydrated permission set is never stored, so an admin editing a role
// is reflected on the subject's very next request.
//
// Any database failure returns an error and the caller denies the request
// (fail closed).
func (s *Service) LoadPrincipal(userID uint64) (*authz.Principal, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	assignments, err := assignment.ListByUser(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role assignments: %w", err)
	}

	roles, err := role.ListAll(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load role catalog: %w", err)
	}

	links, err := role.ListLinks(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}

	permissions, err := permission.List(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load permission catalog: %w", err)
	}

	principal := authz.BuildPrincipal(user, assignments, roles, links, permissions, s.onStale)

	return &principal, nil
}

// Can loads the user's principal and evaluates the request against it.
// Any load failure denies.
func (s *Service) Can(userID uint64, action authz.Action, resource authz.Resource, scope authz.Scope) bool {
	principal, err := s.LoadPrincipal(userID)
	if err != nil {
		return false
	}

	return authz.Can(principal, action, resource, scope)
}
