// Package authz decides which clubs a user may manage events for.
package authz

import (
	"fmt"

	"uni-meet/internal/model"
)

// Permission answers CanManage for one user.
type Permission interface {
	CanManage(clubID uint) bool
	// ManagedClubs describes the managed set, for error messages.
	ManagedClubs() string
}

// For returns the permission matching the user's role. A nil or inactive
// user gets no permissions.
func For(user *model.User) Permission {
	if user == nil || !user.IsActive {
		return none{}
	}
	switch user.Role {
	case model.RoleAdmin:
		return all{}
	case model.RoleManager:
		if user.ManagedClubID == nil {
			return none{}
		}
		return owned{clubID: *user.ManagedClubID}
	default:
		return none{}
	}
}

// CanManage reports whether user may create, update or cancel events of clubID.
func CanManage(user *model.User, clubID uint) bool {
	return For(user).CanManage(clubID)
}

// 管理员: 所有俱乐部
type all struct{}

func (all) CanManage(uint) bool { return true }
func (all) ManagedClubs() string { return "all" }

// 俱乐部经理: 只有自己管理的俱乐部
type owned struct {
	clubID uint
}

func (p owned) CanManage(clubID uint) bool { return clubID == p.clubID }
func (p owned) ManagedClubs() string { return fmt.Sprintf("%d", p.clubID) }

// 普通用户
type none struct{}

func (none) CanManage(uint) bool { return false }
func (none) ManagedClubs() string { return "none" }
