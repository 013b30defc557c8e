package repository

import (
	"context"

	"uni-meet/internal/model"
	"uni-meet/pkg/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClubMemberRepository stores the follow relation between users and clubs.
type ClubMemberRepository struct {
	db *gorm.DB
}

func NewClubMemberRepository() *ClubMemberRepository {
	return &ClubMemberRepository{db: db.DB}
}

// Follow inserts the (user, club) row. An existing row is left untouched;
// the composite primary key makes concurrent calls for the same pair safe.
func (r *ClubMemberRepository) Follow(ctx context.Context, userID, clubID uint) error {
	member := &model.ClubMember{
		UserID: userID,
		ClubID: clubID,
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member).Error
}

// 取消关注, 行不存在时不报错
func (r *ClubMemberRepository) Unfollow(ctx context.Context, userID, clubID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Delete(&model.ClubMember{}).Error
}

// 获取用户关注的俱乐部ID列表
func (r *ClubMemberRepository) FindFollowedClubIDs(ctx context.Context, userID uint) ([]uint, error) {
	clubIDs := []uint{}
	err := r.db.WithContext(ctx).Model(&model.ClubMember{}).
		Where("user_id = ?", userID).
		Order("club_id ASC").
		Pluck("club_id", &clubIDs).Error
	return clubIDs, err
}

// 统计某个关注关系的行数 (0 或 1)
func (r *ClubMemberRepository) Count(ctx context.Context, userID, clubID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ClubMember{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	return count, err
}
