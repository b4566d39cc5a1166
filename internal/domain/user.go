package domain

import "time"

// Role names a set of capabilities. Authorization decisions depend only on
// the capability set, never on the role name itself.
type Role string

const (
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Capability is a single privileged action a role may hold.
type Capability string

const (
	CapCreateTask      Capability = "task:create"
	CapUpdateTask      Capability = "task:update"
	CapDeleteTask      Capability = "task:delete"
	CapAssignTask      Capability = "task:assign"
	CapAddDependencies Capability = "task:add-dependencies"
	CapViewAllTasks    Capability = "task:view-all"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleManager: {
		CapCreateTask:      true,
		CapUpdateTask:      true,
		CapDeleteTask:      true,
		CapAssignTask:      true,
		CapAddDependencies: true,
		CapViewAllTasks:    true,
	},
	RoleUser: {},
}

// Can reports whether the role holds the given capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// IsValid reports whether the role is a known role.
func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// User represents an account in the system.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
