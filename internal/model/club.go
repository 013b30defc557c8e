package model

import (
	"time"
)

type Club struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_club_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
