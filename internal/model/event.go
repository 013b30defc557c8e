package model

import (
	"time"
)

type Event struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"type:varchar(200);not null"`
	Location        string    `gorm:"type:varchar(200);not null"`
	StartAt         time.Time `gorm:"not null;index"`
	EndAt           *time.Time
	Quota           int     `gorm:"not null"`
	ClubID          uint    `gorm:"not null;index"`
	Description     *string `gorm:"type:text"`
	IsCancelled     bool    `gorm:"not null;default:false;index"`
	CreatedByUserID uint    `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Club Club `gorm:"foreignKey:ClubID"`
}
