package models

// Role is an authorization scope such as "ROLE_USER" or "ROLE_ADMIN".
// Roles are created lazily on first reference and never modified afterwards.
type Role struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"uniqueIndex;not null;size:50"`
}

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)
