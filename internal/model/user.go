package model

import (
	"time"

	"gorm.io/gorm"
)

// User status values.
const (
	StatusActive = 0
	StatusBanned = 1
)

// Coarse role flag values. The flag predates the role table and is still
// authoritative: the admin gate checks it before the role bindings.
const (
	RoleOrdinary = 0
	RoleAdmin    = 1
)

// User represents an account holder in the system.
type User struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string         `json:"name" gorm:"size:255"`
	UserAccount  string         `json:"userAccount" gorm:"size:255;not null;index"`
	Email        string         `json:"email,omitempty" gorm:"size:255"`
	Phone        string         `json:"phone,omitempty" gorm:"size:64"`
	AvatarURL    string         `json:"avatarUrl,omitempty" gorm:"size:1024"`
	Gender       int            `json:"gender"`
	UserPassword string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	UserStatus   int            `json:"userStatus" gorm:"default:0;index"`
	UserRole     int            `json:"userRole" gorm:"default:0;index"`
	CreatedAt    time.Time      `json:"createTime"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName overrides the default pluralized table name.
func (User) TableName() string {
	return "user"
}

// SafeUser is a sanitized copy of a user record with the password digest
// removed, safe to expose externally and to store as a session snapshot.
// Role fields are filled only on admin search responses.
type SafeUser struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	UserAccount string    `json:"userAccount"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Gender      int       `json:"gender"`
	UserStatus  int       `json:"userStatus"`
	UserRole    int       `json:"userRole"`
	RoleID      int64     `json:"roleId,omitempty"`
	RoleName    string    `json:"roleName,omitempty"`
	RoleKey     string    `json:"roleKey,omitempty"`
	CreateTime  time.Time `json:"createTime"`
}

// Sanitize returns the externally safe view of the user.
func (u *User) Sanitize() *SafeUser {
	if u == nil {
		return nil
	}
	return &SafeUser{
		ID:          u.ID,
		Name:        u.Name,
		UserAccount: u.UserAccount,
		Email:       u.Email,
		Phone:       u.Phone,
		AvatarURL:   u.AvatarURL,
		Gender:      u.Gender,
		UserStatus:  u.UserStatus,
		UserRole:    u.UserRole,
		CreateTime:  u.CreatedAt,
	}
}
