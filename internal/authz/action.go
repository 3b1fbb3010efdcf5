package authz

// Action identifies what a permission allows on its resource.
// The set of actions is closed; unknown values never enter a Principal
// because BuildPrincipal drops permissions it cannot parse.
type Action string

const (
	// ActionCreate allows creating new records of a resource.
	ActionCreate Action = "CREATE"
	// ActionRead allows viewing a resource.
	ActionRead Action = "READ"
	// ActionUpdate allows editing a resource.
	ActionUpdate Action = "UPDATE"
	// ActionDelete allows deleting a resource.
	ActionDelete Action = "DELETE"
	// ActionManage subsumes every other action on its resource.
	// Combined with the wildcard resource it makes a role super admin.
	ActionManage Action = "MANAGE"
	// ActionExport allows exporting a resource's data.
	ActionExport Action = "EXPORT"
	// ActionImport allows importing data into a resource.
	ActionImport Action = "IMPORT"
)

// ParseAction converts a stored action string into an Action.
// Returns false for anything outside the closed set.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete,
		ActionManage, ActionExport, ActionImport:
		return Action(s), true
	default:
		return "", false
	}
}
