package model

import (
	"time"
)

type Role string

const (
	RoleRegular Role = "Regular"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleRegular, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"type:varchar(191);not null;uniqueIndex"`
	DisplayName  string `gorm:"type:varchar(100)"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'Regular'"`
	// 仅当 Role 为 Manager 时有意义
	ManagedClubID *uint `gorm:"index"`
	IsActive      bool  `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
