// Package workshop 提供创意工坊剧本链的编辑能力
package workshop

import (
	"context"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
	"campus-life-api/pkg/logger"
)

// ChainDetail 剧本链及其全部节点
type ChainDetail struct {
	Chain *entity.WorkshopChain    `json:"chain"`
	Nodes []*entity.WorkshopScript `json:"nodes"`
}

// Service 创意工坊服务
type Service struct {
	repo repository.WorkshopRepository
	tx   repository.Transactor
}

// NewService 创建工坊服务
func NewService(repo repository.WorkshopRepository, tx repository.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

// ChainParams 剧本链基础信息
type ChainParams struct {
	Title       string
	Description string
	Location    string
	CoverImage  string
}

// CreateChain 创建剧本链
func (s *Service) CreateChain(ctx context.Context, ownerID int64, params ChainParams) (*entity.WorkshopChain, error) {
	if params.Title == "" {
		return nil, errors.ErrValidationFailed.WithDetail("剧本链标题不能为空")
	}
	chain := &entity.WorkshopChain{
		OwnerID:     ownerID,
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		CoverImage:  params.CoverImage,
	}
	if err := s.repo.CreateChain(ctx, chain); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to create chain")
	}
	return chain, nil
}

// GetChainDetail 查询剧本链及其节点
func (s *Service) GetChainDetail(ctx context.Context, ownerID, chainID int64) (*ChainDetail, error) {
	chain, err := s.loadOwnedChain(ctx, ownerID, chainID)
	if err != nil {
		return nil, err
	}
	nodes, err := s.repo.ListNodes(ctx, chainID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list nodes")
	}
	return &ChainDetail{Chain: chain, Nodes: nodes}, nil
}

// ListChains 分页查询创作者的剧本链
func (s *Service) ListChains(ctx context.Context, ownerID int64, page repository.Pagination) (*repository.PagedResult[*entity.WorkshopChain], error) {
	result, err := s.repo.ListChainsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list chains")
	}
	return result, nil
}

// UpdateChain 更新剧本链的基础信息，空字段保持原值
func (s *Service) UpdateChain(ctx context.Context, ownerID, chainID int64, params ChainParams) (*entity.WorkshopChain, error) {
	chain, err := s.loadOwnedChain(ctx, ownerID, chainID)
	if err != nil {
		return nil, err
	}
	if params.Title != "" {
		chain.Title = params.Title
	}
	if params.Description != "" {
		chain.Description = params.Description
	}
	if params.Location != "" {
		chain.Location = params.Location
	}
	if params.CoverImage != "" {
		chain.CoverImage = params.CoverImage
	}
	if err := s.repo.UpdateChain(ctx, chain); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to update chain")
	}
	return chain, nil
}

// DeleteChain 删除剧本链及其全部节点
func (s *Service) DeleteChain(ctx context.Context, ownerID, chainID int64) error {
	if _, err := s.loadOwnedChain(ctx, ownerID, chainID); err != nil {
		return err
	}
	if err := s.repo.DeleteChain(ctx, chainID); err != nil {
		return errors.Wrap(err, errors.CodeInternalError, "failed to delete chain")
	}
	logger.Info(ctx, "workshop chain deleted", "chain_id", chainID)
	return nil
}

// CreateNode 在剧本链中创建节点。
// 节点标记为入口时，先清除链内其他入口并同步链的入口缓存。
func (s *Service) CreateNode(ctx context.Context, ownerID int64, node *entity.WorkshopScript) (*entity.WorkshopScript, error) {
	chain, err := s.loadOwnedChain(ctx, ownerID, node.ChainID)
	if err != nil {
		return nil, err
	}
	if node.Title == "" {
		return nil, errors.ErrValidationFailed.WithDetail("节点标题不能为空")
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if node.IsEntry {
			if err := s.repo.ClearEntryFlags(ctx, chain.ID); err != nil {
				return err
			}
		}
		if err := s.repo.CreateNode(ctx, node); err != nil {
			return err
		}
		if node.IsEntry {
			chain.RootScriptID = &node.ID
			return s.repo.UpdateChain(ctx, chain)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to create node")
	}
	return node, nil
}

// UpdateNode 更新节点。
// 入口标记的唯一性与链的入口缓存在同一事务内维护。
func (s *Service) UpdateNode(ctx context.Context, ownerID int64, node *entity.WorkshopScript) (*entity.WorkshopScript, error) {
	chain, err := s.loadOwnedChain(ctx, ownerID, node.ChainID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetNode(ctx, node.ID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get node")
	}
	if existing == nil || existing.ChainID != chain.ID {
		return nil, errors.ErrNodeNotFound
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if node.IsEntry && !existing.IsEntry {
			if err := s.repo.ClearEntryFlags(ctx, chain.ID); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateNode(ctx, node); err != nil {
			return err
		}
		switch {
		case node.IsEntry:
			chain.RootScriptID = &node.ID
			return s.repo.UpdateChain(ctx, chain)
		case existing.IsEntry:
			// 入口标记被取消，清空链的入口缓存
			chain.RootScriptID = nil
			return s.repo.UpdateChain(ctx, chain)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to update node")
	}
	return node, nil
}

// DeleteNode 删除节点。
// 入口节点被删除时清空链的入口缓存，
// 其余节点指向该节点的选项边一并清除。
func (s *Service) DeleteNode(ctx context.Context, ownerID, chainID, nodeID int64) error {
	chain, err := s.loadOwnedChain(ctx, ownerID, chainID)
	if err != nil {
		return err
	}
	node, err := s.repo.GetNode(ctx, nodeID)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternalError, "failed to get node")
	}
	if node == nil || node.ChainID != chainID {
		return errors.ErrNodeNotFound
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteNode(ctx, nodeID); err != nil {
			return err
		}

		if node.IsEntry {
			chain.RootScriptID = nil
			if err := s.repo.UpdateChain(ctx, chain); err != nil {
				return err
			}
		}

		// 清除悬空的选项边
		siblings, err := s.repo.ListNodes(ctx, chainID)
		if err != nil {
			return err
		}
		for _, sibling := range siblings {
			changed := false
			for i := range sibling.Options {
				next := sibling.Options[i].NextScriptID
				if next != nil && *next == nodeID {
					sibling.Options[i].NextScriptID = nil
					changed = true
				}
			}
			if changed {
				if err := s.repo.UpdateNode(ctx, sibling); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeInternalError, "failed to delete node")
	}
	logger.Info(ctx, "workshop node deleted", "chain_id", chainID, "node_id", nodeID)
	return nil
}

// UpdatePositions 批量更新节点画布坐标
func (s *Service) UpdatePositions(ctx context.Context, ownerID, chainID int64, updates []entity.PositionUpdate) error {
	if _, err := s.loadOwnedChain(ctx, ownerID, chainID); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.repo.UpdatePositions(ctx, chainID, updates); err != nil {
		return errors.Wrap(err, errors.CodeInternalError, "failed to update positions")
	}
	return nil
}

// ToggleImport 标记剧本链已导入或取消导入。
// 导入要求链已设置入口节点且至少包含一个节点。
func (s *Service) ToggleImport(ctx context.Context, ownerID, chainID int64, imported bool) (*entity.WorkshopChain, error) {
	chain, err := s.loadOwnedChain(ctx, ownerID, chainID)
	if err != nil {
		return nil, err
	}

	if imported {
		if chain.RootScriptID == nil {
			return nil, errors.ErrChainNoEntry
		}
		count, err := s.repo.CountNodes(ctx, chainID)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternalError, "failed to count nodes")
		}
		if count == 0 {
			return nil, errors.ErrChainNoEntry.WithDetail("剧本链没有任何节点")
		}
	}

	chain.IsImported = imported
	if err := s.repo.UpdateChain(ctx, chain); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to update chain")
	}
	logger.Info(ctx, "workshop chain import toggled", "chain_id", chainID, "imported", imported)
	return chain, nil
}

// loadOwnedChain 加载剧本链并校验归属
func (s *Service) loadOwnedChain(ctx context.Context, ownerID, chainID int64) (*entity.WorkshopChain, error) {
	chain, err := s.repo.GetChain(ctx, chainID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get chain")
	}
	if chain == nil {
		return nil, errors.ErrChainNotFound
	}
	if chain.OwnerID != ownerID {
		return nil, errors.ErrForbidden
	}
	return chain, nil
}
