package models

import "time"

const (
	PermissionRead  = "read"
	PermissionWrite = "write"
	PermissionOwner = "owner"
)

// ValidPermission reports whether p is a grantable collaborator permission.
// Owner is implicit and never stored in a collaboration row.
func ValidPermission(p string) bool {
	return p == PermissionRead || p == PermissionWrite
}

type Collaboration struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID      uint      `gorm:"not null;uniqueIndex:idx_project_collaborator" json:"project_id"`
	OwnerID        uint      `gorm:"not null;index" json:"owner_id"`
	CollaboratorID uint      `gorm:"not null;uniqueIndex:idx_project_collaborator" json:"collaborator_id"`
	Permission     string    `gorm:"type:varchar(10);not null;default:read" json:"permission"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
