package model

// Role is one of a closed set of role names assigned to users at creation.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleReader Role = "Reader"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleReader:
		return true
	}
	return false
}
