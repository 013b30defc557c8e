package repository

import (
	"context"
	"sync"
	"testing"

	"uni-meet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClubRepository_FindAll_OrderedByName(t *testing.T) {
	setupTestDB(t)
	repo := NewClubRepository()
	ctx := context.Background()

	createTestClub(t, repo, "Photography")
	createTestClub(t, repo, "Astronomy")
	createTestClub(t, repo, "Music")

	clubs, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, clubs, 3)
	assert.Equal(t, "Astronomy", clubs[0].Name)
	assert.Equal(t, "Music", clubs[1].Name)
	assert.Equal(t, "Photography", clubs[2].Name)
}

func TestClubRepository_Create_UniqueName(t *testing.T) {
	setupTestDB(t)
	repo := NewClubRepository()

	createTestClub(t, repo, "Debate")
	err := repo.Create(context.Background(), &model.Club{Name: "Debate"})
	assert.Error(t, err, "club names are unique")
}

func TestClubRepository_FindByID(t *testing.T) {
	setupTestDB(t)
	repo := NewClubRepository()
	ctx := context.Background()

	club := createTestClub(t, repo, "Hiking")

	found, err := repo.FindByID(ctx, club.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Hiking", found.Name)

	missing, err := repo.FindByID(ctx, 424242)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClubMemberRepository_FollowIsIdempotent(t *testing.T) {
	setupTestDB(t)
	userRepo := NewUserRepository()
	clubRepo := NewClubRepository()
	memberRepo := NewClubMemberRepository()
	ctx := context.Background()

	user := createTestUser(t, userRepo, "follower", model.RoleRegular, nil)
	club := createTestClub(t, clubRepo, "Theatre")

	require.NoError(t, memberRepo.Follow(ctx, user.ID, club.ID))
	require.NoError(t, memberRepo.Follow(ctx, user.ID, club.ID))

	count, err := memberRepo.Count(ctx, user.ID, club.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClubMemberRepository_ConcurrentFollow(t *testing.T) {
	setupTestDB(t)
	userRepo := NewUserRepository()
	clubRepo := NewClubRepository()
	memberRepo := NewClubMemberRepository()
	ctx := context.Background()

	user := createTestUser(t, userRepo, "racer", model.RoleRegular, nil)
	club := createTestClub(t, clubRepo, "Cycling")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- memberRepo.Follow(ctx, user.ID, club.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	count, err := memberRepo.Count(ctx, user.ID, club.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClubMemberRepository_Unfollow(t *testing.T) {
	setupTestDB(t)
	userRepo := NewUserRepository()
	clubRepo := NewClubRepository()
	memberRepo := NewClubMemberRepository()
	ctx := context.Background()

	user := createTestUser(t, userRepo, "leaver", model.RoleRegular, nil)
	club1 := createTestClub(t, clubRepo, "Go Club")
	club2 := createTestClub(t, clubRepo, "Rust Club")

	require.NoError(t, memberRepo.Follow(ctx, user.ID, club1.ID))
	require.NoError(t, memberRepo.Follow(ctx, user.ID, club2.ID))
	require.NoError(t, memberRepo.Unfollow(ctx, user.ID, club1.ID))
	// 重复取消关注不是错误
	require.NoError(t, memberRepo.Unfollow(ctx, user.ID, club1.ID))

	ids, err := memberRepo.FindFollowedClubIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{club2.ID}, ids)

	followed, err := clubRepo.FindFollowedBy(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, "Rust Club", followed[0].Name)
}

func TestClubMemberRepository_FindFollowedClubIDs_Empty(t *testing.T) {
	setupTestDB(t)
	userRepo := NewUserRepository()
	memberRepo := NewClubMemberRepository()

	user := createTestUser(t, userRepo, "loner", model.RoleRegular, nil)

	ids, err := memberRepo.FindFollowedClubIDs(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}
