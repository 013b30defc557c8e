package model

import (
	"time"
)

// ClubMember 表示用户关注了某个俱乐部, 行存在即关注
type ClubMember struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	ClubID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Club Club `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}
