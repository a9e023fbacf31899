// Package auth 提供注册登录与令牌管理能力
package auth

import (
	"context"
	"time"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
	"campus-life-api/pkg/logger"
	"campus-life-api/pkg/utils"
)

// LoginResult 登录结果
type LoginResult struct {
	User   *entity.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

// Service 认证服务
type Service struct {
	users      repository.UserRepository
	jwt        *utils.JWTManager
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService 创建认证服务
func NewService(users repository.UserRepository, jwt *utils.JWTManager, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		jwt:        jwt,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register 注册新用户
func (s *Service) Register(ctx context.Context, username, email, password, nickname string) (*entity.User, error) {
	if len(username) < 3 {
		return nil, errors.ErrValidationFailed.WithDetail("用户名至少 3 个字符")
	}
	if len(password) < 6 {
		return nil, errors.ErrValidationFailed.WithDetail("密码至少 6 个字符")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to check username")
	}
	if existing != nil {
		return nil, errors.ErrConflict.WithDetail("用户名已被占用")
	}

	user, err := entity.NewUser(username, email, password, nickname)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to hash password")
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to create user")
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// Login 用户登录，签发双 Token
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get user")
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, errors.ErrUnauthorized.WithDetail("用户名或密码错误")
	}
	if !user.IsActive() {
		return nil, errors.ErrForbidden.WithDetail("账号已被禁用")
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID, string(user.Role), s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to generate tokens")
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh 使用 refresh token 换取新的双 Token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := s.jwt.ParseToken(refreshToken)
	if err != nil {
		if err == utils.ErrExpiredToken {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid
	}
	if claims.Type != "refresh" {
		return nil, errors.ErrTokenInvalid.WithDetail("不是 refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get user")
	}
	if user == nil || !user.IsActive() {
		return nil, errors.ErrUnauthorized
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID, string(user.Role), s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to generate tokens")
	}
	return tokens, nil
}

// Profile 查询当前用户信息
func (s *Service) Profile(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get user")
	}
	if user == nil {
		return nil, errors.ErrNotFound
	}
	return user, nil
}
