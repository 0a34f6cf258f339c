package pipeline

import "fmt"

// Role selects which handlers a process serves.
type Role string

const (
	RoleAll        Role = "all"
	RoleEntrypoint Role = "entrypoint"
	RoleWorker     Role = "worker"
)

// ParseRole validates a role name. The empty string means RoleAll.
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case "", RoleAll:
		return RoleAll, nil
	case RoleEntrypoint, RoleWorker:
		return Role(name), nil
	default:
		return "", fmt.Errorf("unknown server role %q", name)
	}
}

func (r Role) servesEntrypoint() bool {
	return r == RoleAll || r == RoleEntrypoint
}

func (r Role) servesWorker() bool {
	return r == RoleAll || r == RoleWorker
}
