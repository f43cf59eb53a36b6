package model

import "time"

// UserRole binds a user to a role. The relation is shaped many-to-many but the
// binding service enforces at most one row per user.
type UserRole struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	RoleID    int64     `json:"roleId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createTime"`
}

// TableName overrides the default pluralized table name.
func (UserRole) TableName() string {
	return "user_role"
}
