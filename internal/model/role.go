package model

import (
	"time"

	"gorm.io/gorm"
)

// Role status values.
const (
	RoleStatusEnabled  = 0
	RoleStatusDisabled = 1
)

// AdminRoleKey is the reserved role key granting admin access through the
// role-binding path.
const AdminRoleKey = "ADMIN"

// Role is a catalog entry. RoleKey is unique among non-deleted rows only;
// soft-deleted keys may be reused.
type Role struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	RoleKey     string         `json:"roleKey" gorm:"size:64;not null;index"`
	RoleName    string         `json:"roleName" gorm:"size:64;not null"`
	Description string         `json:"description,omitempty" gorm:"size:512"`
	Status      int            `json:"status" gorm:"default:0;index"`
	CreatedAt   time.Time      `json:"createTime"`
	UpdatedAt   time.Time      `json:"updateTime"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName overrides the default pluralized table name.
func (Role) TableName() string {
	return "role"
}
