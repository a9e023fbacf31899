package repository

import (
	"context"

	"campus-life-api/internal/domain/entity"
)

// ScriptFilter 剧本查询过滤条件
type ScriptFilter struct {
	Location    entity.ScriptLocation
	EnabledOnly bool
}

// ScriptRepository 剧本仓储接口
type ScriptRepository interface {
	// Create 创建剧本
	Create(ctx context.Context, script *entity.Script) error

	// GetByID 按 ID 查询剧本，不存在时返回 nil
	GetByID(ctx context.Context, id int64) (*entity.Script, error)

	// List 按过滤条件查询剧本
	List(ctx context.Context, filter ScriptFilter) ([]*entity.Script, error)

	// ListPaged 分页查询剧本
	ListPaged(ctx context.Context, filter ScriptFilter, page Pagination) (*PagedResult[*entity.Script], error)

	// Update 更新剧本
	Update(ctx context.Context, script *entity.Script) error

	// Delete 删除剧本
	Delete(ctx context.Context, id int64) error
}
