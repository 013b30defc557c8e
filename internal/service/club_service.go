package service

import (
	"context"
	"fmt"

	"uni-meet/internal/interfaces"
	"uni-meet/pkg/logger"

	"go.uber.org/zap"
)

type ClubDTO struct {
	ClubID uint   `json:"clubId"`
	Name   string `json:"name"`
}

type ClubWithFollowingDTO struct {
	ClubID      uint   `json:"clubId"`
	Name        string `json:"name"`
	IsFollowing bool   `json:"isFollowing"`
}

// ClubService 处理俱乐部列表和关注关系
type ClubService struct {
	clubs   interfaces.ClubStore
	follows interfaces.FollowStore
}

func NewClubService(clubs interfaces.ClubStore, follows interfaces.FollowStore) *ClubService {
	return &ClubService{
		clubs:   clubs,
		follows: follows,
	}
}

// 按名称返回全部俱乐部
func (s *ClubService) ListClubs(ctx context.Context) ([]ClubDTO, error) {
	clubs, err := s.clubs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ClubDTO, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, ClubDTO{ClubID: c.ID, Name: c.Name})
	}
	return out, nil
}

// 全部俱乐部, 附带调用者是否已关注
func (s *ClubService) ListClubsWithFollowing(ctx context.Context, userID uint) ([]ClubWithFollowingDTO, error) {
	clubs, err := s.clubs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	followed, err := s.follows.FindFollowedClubIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[uint]struct{}, len(followed))
	for _, id := range followed {
		set[id] = struct{}{}
	}

	out := make([]ClubWithFollowingDTO, 0, len(clubs))
	for _, c := range clubs {
		_, ok := set[c.ID]
		out = append(out, ClubWithFollowingDTO{ClubID: c.ID, Name: c.Name, IsFollowing: ok})
	}
	return out, nil
}

// 调用者关注的俱乐部
func (s *ClubService) ListJoined(ctx context.Context, userID uint) ([]ClubDTO, error) {
	clubs, err := s.clubs.FindFollowedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ClubDTO, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, ClubDTO{ClubID: c.ID, Name: c.Name})
	}
	return out, nil
}

// Follow is idempotent; following twice leaves a single relation.
func (s *ClubService) Follow(ctx context.Context, userID, clubID uint) error {
	club, err := s.clubs.FindByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return fmt.Errorf("%w: club %d does not exist", ErrNotFound, clubID)
	}
	if err := s.follows.Follow(ctx, userID, clubID); err != nil {
		logger.L.Error("Failed to follow club", zap.Uint("userID", userID), zap.Uint("clubID", clubID), zap.Error(err))
		return err
	}
	return nil
}

// 取消关注, 未关注时什么也不做
func (s *ClubService) Unfollow(ctx context.Context, userID, clubID uint) error {
	if err := s.follows.Unfollow(ctx, userID, clubID); err != nil {
		logger.L.Error("Failed to unfollow club", zap.Uint("userID", userID), zap.Uint("clubID", clubID), zap.Error(err))
		return err
	}
	return nil
}

// 调用者关注的俱乐部ID
func (s *ClubService) ListFollowed(ctx context.Context, userID uint) ([]uint, error) {
	return s.follows.FindFollowedClubIDs(ctx, userID)
}
