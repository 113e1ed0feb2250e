package permissions

// Table answers role→permission membership questions. It is built once at
// process start and never mutated afterwards; tests may construct alternate
// tables and inject them wherever a Checker is expected.
type Table struct {
	grants map[Role]map[Permission]struct{}
	order  map[Role][]Permission
}

// Checker is the read surface every authorization call site depends on.
type Checker interface {
	HasPermission(role Role, permission Permission) bool
	HasAnyPermission(role Role, permissions []Permission) bool
	HasAllPermissions(role Role, permissions []Permission) bool
	UserPermissions(role Role) []Permission
	UserPermissionGroups(role Role) []string
}

// NewTable builds the standard role-permission table.
func NewTable() *Table {
	return NewTableFrom(rolePermissions())
}

// NewTableFrom builds a table from an explicit mapping. The input is copied,
// so the caller cannot mutate the table afterwards.
func NewTableFrom(grants map[Role][]Permission) *Table {
	t := &Table{
		grants: make(map[Role]map[Permission]struct{}, len(grants)),
		order:  make(map[Role][]Permission, len(grants)),
	}
	for role, perms := range grants {
		set := make(map[Permission]struct{}, len(perms))
		ordered := make([]Permission, 0, len(perms))
		for _, p := range perms {
			if _, ok := set[p]; ok {
				continue
			}
			set[p] = struct{}{}
			ordered = append(ordered, p)
		}
		t.grants[role] = set
		t.order[role] = ordered
	}
	return t
}

// HasPermission reports whether the role holds the permission. Unknown
// roles hold nothing; they are treated as no access, never as an error.
func (t *Table) HasPermission(role Role, permission Permission) bool {
	set, ok := t.grants[role]
	if !ok {
		return false
	}
	_, ok = set[permission]
	return ok
}

// HasAnyPermission reports whether the role holds at least one of the given
// permissions, short-circuiting on the first match.
func (t *Table) HasAnyPermission(role Role, permissions []Permission) bool {
	for _, p := range permissions {
		if t.HasPermission(role, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the role holds every given permission.
// An empty input is vacuously true.
func (t *Table) HasAllPermissions(role Role, permissions []Permission) bool {
	for _, p := range permissions {
		if !t.HasPermission(role, p) {
			return false
		}
	}
	return true
}

// UserPermissions returns a copy of the role's full permission set, empty
// for unknown roles.
func (t *Table) UserPermissions(role Role) []Permission {
	ordered, ok := t.order[role]
	if !ok {
		return []Permission{}
	}
	out := make([]Permission, len(ordered))
	copy(out, ordered)
	return out
}

// UserPermissionGroups returns the names of every capability bundle with a
// non-empty intersection with the role's permission set. Display only.
func (t *Table) UserPermissionGroups(role Role) []string {
	var groups []string
	for _, name := range groupOrder {
		if t.HasAnyPermission(role, Groups[name]) {
			groups = append(groups, name)
		}
	}
	return groups
}

// EffectivePermissions unions the role's base grant with the admin's custom
// permissions. Custom permissions are an extension point that currently has
// no storage or merge logic behind it; call sites always pass the empty
// set, and this helper keeps the contract in one place until they do not.
func (t *Table) EffectivePermissions(role Role, custom []Permission) []Permission {
	base := t.UserPermissions(role)
	if len(custom) == 0 {
		return base
	}
	seen := make(map[Permission]struct{}, len(base))
	for _, p := range base {
		seen[p] = struct{}{}
	}
	for _, p := range custom {
		if _, ok := seen[p]; !ok {
			base = append(base, p)
		}
	}
	return base
}
