package repository

import (
	"context"

	"campus-life-api/internal/domain/entity"
)

// SaveRepository 存档仓储接口
type SaveRepository interface {
	// Create 创建存档
	Create(ctx context.Context, save *entity.Save) error

	// GetByID 按 ID 查询存档，不存在时返回 nil
	GetByID(ctx context.Context, id int64) (*entity.Save, error)

	// ListByUser 查询用户的全部存档
	ListByUser(ctx context.Context, userID int64) ([]*entity.Save, error)

	// UpdateProgress 按版本号条件更新存档进度
	// 版本不匹配时返回 errors.ErrSaveConflict
	UpdateProgress(ctx context.Context, save *entity.Save) error

	// Rename 更新存档名称
	Rename(ctx context.Context, id int64, name string) error

	// Delete 删除存档
	Delete(ctx context.Context, id int64) error

	// CountByUser 统计用户存档数量
	CountByUser(ctx context.Context, userID int64) (int64, error)
}
