package domain

import "time"

// Role enumerates workspace access levels.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
	RoleViewer Role = "Viewer"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// MemberStatus represents lifecycle states for a team member.
type MemberStatus string

const (
	MemberStatusInvited MemberStatus = "INVITED"
	MemberStatusActive  MemberStatus = "ACTIVE"
)

// Member models a workspace team member. Alias holds the contact email;
// its format is validated at invite time only.
type Member struct {
	ID           string
	Name         string
	Alias        string
	JobTitle     string
	Role         Role
	AvatarURL    string
	PasswordHash string
	Status       MemberStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
