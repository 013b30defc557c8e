package interfaces

import (
	"context"

	"uni-meet/internal/model"
	"uni-meet/internal/repository"
)

// 以下接口由 repository 包中的 gorm 实现满足
// service 层只依赖这些接口, 测试中可替换

// repository.UserRepository 实现
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// repository.ClubRepository 实现
type ClubStore interface {
	FindByID(ctx context.Context, clubID uint) (*model.Club, error)
	FindAll(ctx context.Context) ([]model.Club, error)
	FindFollowedBy(ctx context.Context, userID uint) ([]model.Club, error)
}

// repository.ClubMemberRepository 实现
type FollowStore interface {
	Follow(ctx context.Context, userID, clubID uint) error
	Unfollow(ctx context.Context, userID, clubID uint) error
	FindFollowedClubIDs(ctx context.Context, userID uint) ([]uint, error)
}

// repository.EventRepository 实现
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, eventID uint) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Cancel(ctx context.Context, eventID uint) error
	FindEvents(ctx context.Context, f repository.EventFilter) ([]model.Event, error)
}

var (
	_ UserStore   = (*repository.UserRepository)(nil)
	_ ClubStore   = (*repository.ClubRepository)(nil)
	_ FollowStore = (*repository.ClubMemberRepository)(nil)
	_ EventStore  = (*repository.EventRepository)(nil)
)
