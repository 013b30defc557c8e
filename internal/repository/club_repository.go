package repository

import (
	"context"
	"errors"

	"uni-meet/internal/model"
	"uni-meet/pkg/db"

	"gorm.io/gorm"
)

type ClubRepository struct {
	db *gorm.DB
}

func NewClubRepository() *ClubRepository {
	return &ClubRepository{db: db.DB}
}

// 创建新俱乐部
func (r *ClubRepository) Create(ctx context.Context, club *model.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

// 根据ID查找俱乐部
func (r *ClubRepository) FindByID(ctx context.Context, clubID uint) (*model.Club, error) {
	var club model.Club
	err := r.db.WithContext(ctx).First(&club, clubID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // club not found
		}
		return nil, err
	}
	return &club, nil
}

// 按名称排序返回全部俱乐部
func (r *ClubRepository) FindAll(ctx context.Context) ([]model.Club, error) {
	var clubs []model.Club
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&clubs).Error
	return clubs, err
}

// 查找用户关注的所有俱乐部
func (r *ClubRepository) FindFollowedBy(ctx context.Context, userID uint) ([]model.Club, error) {
	var clubs []model.Club
	err := r.db.WithContext(ctx).
		Joins("JOIN club_members ON clubs.id = club_members.club_id").
		Where("club_members.user_id = ?", userID).
		Order("clubs.name ASC").
		Find(&clubs).Error
	return clubs, err
}

// 修改俱乐部名称
func (r *ClubRepository) Rename(ctx context.Context, clubID uint, name string) error {
	return r.db.WithContext(ctx).Model(&model.Club{}).Where("id = ?", clubID).Update("name", name).Error
}
