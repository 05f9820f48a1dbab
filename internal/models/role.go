package models

// Role is the closed set of capability labels. Checks are plain equality,
// an admin does not implicitly satisfy any other role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleGuest:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
