package repository

import (
	"context"

	"campus-life-api/internal/domain/entity"
)

// WorkshopRepository 创意工坊仓储接口
type WorkshopRepository interface {
	// CreateChain 创建剧本链
	CreateChain(ctx context.Context, chain *entity.WorkshopChain) error

	// GetChain 按 ID 查询剧本链，不存在时返回 nil
	GetChain(ctx context.Context, id int64) (*entity.WorkshopChain, error)

	// ListChainsByOwner 查询创作者的剧本链
	ListChainsByOwner(ctx context.Context, ownerID int64, page Pagination) (*PagedResult[*entity.WorkshopChain], error)

	// UpdateChain 更新剧本链
	UpdateChain(ctx context.Context, chain *entity.WorkshopChain) error

	// DeleteChain 删除剧本链及其全部节点
	DeleteChain(ctx context.Context, id int64) error

	// CreateNode 创建节点
	CreateNode(ctx context.Context, node *entity.WorkshopScript) error

	// GetNode 按 ID 查询节点，不存在时返回 nil
	GetNode(ctx context.Context, id int64) (*entity.WorkshopScript, error)

	// ListNodes 查询剧本链的全部节点
	ListNodes(ctx context.Context, chainID int64) ([]*entity.WorkshopScript, error)

	// UpdateNode 更新节点
	UpdateNode(ctx context.Context, node *entity.WorkshopScript) error

	// DeleteNode 删除节点
	DeleteNode(ctx context.Context, id int64) error

	// ClearEntryFlags 清除剧本链内全部节点的入口标记
	ClearEntryFlags(ctx context.Context, chainID int64) error

	// UpdatePositions 批量更新节点坐标
	UpdatePositions(ctx context.Context, chainID int64, updates []entity.PositionUpdate) error

	// CountNodes 统计剧本链的节点数量
	CountNodes(ctx context.Context, chainID int64) (int64, error)
}
