package repository

import (
	"context"

	"campus-life-api/internal/domain/entity"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *entity.User) error

	// GetByID 按 ID 查询用户，不存在时返回 nil
	GetByID(ctx context.Context, id int64) (*entity.User, error)

	// GetByUsername 按用户名查询用户，不存在时返回 nil
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Update 更新用户
	Update(ctx context.Context, user *entity.User) error
}
