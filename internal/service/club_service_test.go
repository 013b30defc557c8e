package service

import (
	"context"
	"testing"

	"uni-meet/internal/model"
	"uni-meet/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClubService() *ClubService {
	return NewClubService(repository.NewClubRepository(), repository.NewClubMemberRepository())
}

func seedClub(t *testing.T, id uint, name string) *model.Club {
	club := &model.Club{ID: id, Name: name}
	require.NoError(t, repository.NewClubRepository().Create(context.Background(), club))
	return club
}

func seedUser(t *testing.T, email string, role model.Role, managedClubID *uint, active bool) *model.User {
	user := &model.User{
		Email:         email,
		DisplayName:   email,
		PasswordHash:  "hash",
		Role:          role,
		ManagedClubID: managedClubID,
		IsActive:      active,
	}
	require.NoError(t, repository.NewUserRepository().Create(context.Background(), user))
	return user
}

func TestClubService_FollowTwiceKeepsOneRelation(t *testing.T) {
	setupTestDB(t)
	svc := newTestClubService()
	ctx := context.Background()

	user := seedUser(t, "a@example.com", model.RoleRegular, nil, true)
	club := seedClub(t, 1, "Chess")

	require.NoError(t, svc.Follow(ctx, user.ID, club.ID))
	require.NoError(t, svc.Follow(ctx, user.ID, club.ID))

	count, err := repository.NewClubMemberRepository().Count(ctx, user.ID, club.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	followed, err := svc.ListFollowed(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{club.ID}, followed)
}

func TestClubService_FollowThenUnfollow(t *testing.T) {
	setupTestDB(t)
	svc := newTestClubService()
	ctx := context.Background()

	user := seedUser(t, "b@example.com", model.RoleRegular, nil, true)
	club := seedClub(t, 1, "Chess")

	require.NoError(t, svc.Follow(ctx, user.ID, club.ID))
	require.NoError(t, svc.Unfollow(ctx, user.ID, club.ID))

	followed, err := svc.ListFollowed(ctx, user.ID)
	require.NoError(t, err)
	assert.NotContains(t, followed, club.ID)

	// 未关注时取消关注是空操作
	assert.NoError(t, svc.Unfollow(ctx, user.ID, club.ID))
}

func TestClubService_FollowUnknownClub(t *testing.T) {
	setupTestDB(t)
	svc := newTestClubService()

	user := seedUser(t, "c@example.com", model.RoleRegular, nil, true)

	err := svc.Follow(context.Background(), user.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClubService_Listings(t *testing.T) {
	setupTestDB(t)
	svc := newTestClubService()
	ctx := context.Background()

	user := seedUser(t, "d@example.com", model.RoleRegular, nil, true)
	seedClub(t, 1, "Music")
	seedClub(t, 2, "Astronomy")
	seedClub(t, 3, "Photography")
	require.NoError(t, svc.Follow(ctx, user.ID, 3))

	clubs, err := svc.ListClubs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ClubDTO{
		{ClubID: 2, Name: "Astronomy"},
		{ClubID: 1, Name: "Music"},
		{ClubID: 3, Name: "Photography"},
	}, clubs)

	withFollowing, err := svc.ListClubsWithFollowing(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []ClubWithFollowingDTO{
		{ClubID: 2, Name: "Astronomy", IsFollowing: false},
		{ClubID: 1, Name: "Music", IsFollowing: false},
		{ClubID: 3, Name: "Photography", IsFollowing: true},
	}, withFollowing)

	joined, err := svc.ListJoined(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []ClubDTO{{ClubID: 3, Name: "Photography"}}, joined)
}
