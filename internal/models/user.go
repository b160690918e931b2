package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:80;not null"`
	PasswordHash string   `gorm:"size:120;not null"`
	Role         UserRole `gorm:"type:varchar(50);default:'user'"`
}

func (u *User) ToResponse() map[string]any {
	return map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"role":     u.Role,
	}
}
