package repository

import (
	"context"

	"campus-life-api/internal/domain/entity"
)

// BadgeRepository 勋章仓储接口
type BadgeRepository interface {
	// Create 创建勋章
	Create(ctx context.Context, badge *entity.Badge) error

	// GetByID 按 ID 查询勋章，不存在时返回 nil
	GetByID(ctx context.Context, id int64) (*entity.Badge, error)

	// List 查询勋章，enabledOnly 为真时仅返回启用的勋章
	List(ctx context.Context, enabledOnly bool) ([]*entity.Badge, error)

	// Update 更新勋章
	Update(ctx context.Context, badge *entity.Badge) error

	// Delete 删除勋章
	Delete(ctx context.Context, id int64) error
}
