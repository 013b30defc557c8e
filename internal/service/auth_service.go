package service

import (
	"context"
	"fmt"
	"strings"

	"uni-meet/internal/interfaces"
	"uni-meet/internal/model"
	"uni-meet/pkg/logger"
	"uni-meet/pkg/utils"
	"uni-meet/pkg/validator"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// 处理认证相关业务逻辑
type AuthService struct {
	users interfaces.UserStore
}

// 创建一个新的认证服务实例
func NewAuthService(users interfaces.UserStore) *AuthService {
	return &AuthService{
		users: users,
	}
}

// 用户注册请求
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=191"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	DisplayName string `json:"displayName" validate:"notblank,max=100"`
}

// 用户登陆请求
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the public view of a user.
type UserDTO struct {
	UserID        uint       `json:"userId"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"displayName"`
	Role          model.Role `json:"role"`
	ManagedClubID *uint      `json:"managedClubId"`
}

func NewUserDTO(u *model.User) UserDTO {
	return UserDTO{
		UserID:        u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Role:          u.Role,
		ManagedClubID: u.ManagedClubID,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// 注册新用户, 新用户总是普通用户
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := validator.Validate(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	// 检查邮箱是否已存在
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already exists", ErrConflict)
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleRegular,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.L.Info("User registered", zap.Uint("userID", user.ID))
	return user, nil
}

// 用户登陆, 返回令牌和用户
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, *model.User, error) {
	if err := validator.Validate(ctx, req); err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	// 查找用户
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: account is disabled", ErrUnauthenticated)
	}

	// 生成JWT令牌
	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// resolveActiveUser loads the caller and rejects unknown or deactivated accounts.
func resolveActiveUser(ctx context.Context, users interfaces.UserStore, userID uint) (*model.User, error) {
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("%w: user is not active", ErrUnauthenticated)
	}
	return user, nil
}
