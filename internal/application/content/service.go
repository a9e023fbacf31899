// Package content 提供剧本与勋章的管理能力
package content

import (
	"context"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
	"campus-life-api/pkg/logger"
)

// CacheInvalidator 目录缓存失效接口
type CacheInvalidator interface {
	InvalidateScripts(ctx context.Context, location entity.ScriptLocation) error
}

// Service 内容管理服务
type Service struct {
	scripts     repository.ScriptRepository
	badges      repository.BadgeRepository
	invalidator CacheInvalidator
}

// NewService 创建内容管理服务
func NewService(scripts repository.ScriptRepository, badges repository.BadgeRepository, invalidator CacheInvalidator) *Service {
	return &Service{scripts: scripts, badges: badges, invalidator: invalidator}
}

// CreateScript 创建剧本
func (s *Service) CreateScript(ctx context.Context, script *entity.Script) (*entity.Script, error) {
	if err := validateScript(script); err != nil {
		return nil, err
	}
	if err := s.scripts.Create(ctx, script); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to create script")
	}
	s.invalidateScripts(ctx, script.Location)
	logger.Info(ctx, "script created", "script_id", script.ID, "location", script.Location)
	return script, nil
}

// GetScript 查询剧本
func (s *Service) GetScript(ctx context.Context, id int64) (*entity.Script, error) {
	script, err := s.scripts.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get script")
	}
	if script == nil {
		return nil, errors.ErrScriptNotFound
	}
	return script, nil
}

// ListScripts 分页查询剧本
func (s *Service) ListScripts(ctx context.Context, filter repository.ScriptFilter, page repository.Pagination) (*repository.PagedResult[*entity.Script], error) {
	result, err := s.scripts.ListPaged(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list scripts")
	}
	return result, nil
}

// UpdateScript 更新剧本
func (s *Service) UpdateScript(ctx context.Context, script *entity.Script) (*entity.Script, error) {
	existing, err := s.GetScript(ctx, script.ID)
	if err != nil {
		return nil, err
	}
	if err := validateScript(script); err != nil {
		return nil, err
	}
	if err := s.scripts.Update(ctx, script); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to update script")
	}
	s.invalidateScripts(ctx, script.Location)
	if existing.Location != script.Location {
		s.invalidateScripts(ctx, existing.Location)
	}
	return script, nil
}

// DeleteScript 删除剧本
func (s *Service) DeleteScript(ctx context.Context, id int64) error {
	script, err := s.GetScript(ctx, id)
	if err != nil {
		return err
	}
	if err := s.scripts.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.CodeInternalError, "failed to delete script")
	}
	s.invalidateScripts(ctx, script.Location)
	logger.Info(ctx, "script deleted", "script_id", id)
	return nil
}

// CreateBadge 创建勋章
func (s *Service) CreateBadge(ctx context.Context, badge *entity.Badge) (*entity.Badge, error) {
	if badge.Name == "" {
		return nil, errors.ErrValidationFailed.WithDetail("勋章名称不能为空")
	}
	if err := s.badges.Create(ctx, badge); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to create badge")
	}
	logger.Info(ctx, "badge created", "badge_id", badge.ID)
	return badge, nil
}

// GetBadge 查询勋章
func (s *Service) GetBadge(ctx context.Context, id int64) (*entity.Badge, error) {
	badge, err := s.badges.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get badge")
	}
	if badge == nil {
		return nil, errors.ErrBadgeNotFound
	}
	return badge, nil
}

// ListBadges 查询全部勋章
func (s *Service) ListBadges(ctx context.Context, enabledOnly bool) ([]*entity.Badge, error) {
	badges, err := s.badges.List(ctx, enabledOnly)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list badges")
	}
	return badges, nil
}

// UpdateBadge 更新勋章
func (s *Service) UpdateBadge(ctx context.Context, badge *entity.Badge) (*entity.Badge, error) {
	if _, err := s.GetBadge(ctx, badge.ID); err != nil {
		return nil, err
	}
	if err := s.badges.Update(ctx, badge); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to update badge")
	}
	return badge, nil
}

// DeleteBadge 删除勋章
func (s *Service) DeleteBadge(ctx context.Context, id int64) error {
	if _, err := s.GetBadge(ctx, id); err != nil {
		return err
	}
	if err := s.badges.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.CodeInternalError, "failed to delete badge")
	}
	logger.Info(ctx, "badge deleted", "badge_id", id)
	return nil
}

// invalidateScripts 使指定地点的目录缓存失效，失败只记日志
func (s *Service) invalidateScripts(ctx context.Context, location entity.ScriptLocation) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateScripts(ctx, location); err != nil {
		logger.Warn(ctx, "failed to invalidate script catalog cache",
			"location", location, "error", err.Error())
	}
}

func validateScript(script *entity.Script) error {
	if script.Title == "" {
		return errors.ErrValidationFailed.WithDetail("剧本标题不能为空")
	}
	if !entity.ValidLocation(script.Location) {
		return errors.ErrValidationFailed.WithDetail("未知的地点")
	}
	if !entity.ValidScriptType(script.Type) {
		return errors.ErrValidationFailed.WithDetail("未知的剧本类型")
	}
	if len(script.Options) == 0 {
		return errors.ErrValidationFailed.WithDetail("剧本至少需要一个选项")
	}
	seen := make(map[int]bool, len(script.Options))
	for _, opt := range script.Options {
		if opt.Text == "" {
			return errors.ErrValidationFailed.WithDetail("选项文本不能为空")
		}
		if seen[opt.ID] {
			return errors.ErrValidationFailed.WithDetail("选项 ID 重复")
		}
		seen[opt.ID] = true
	}
	return nil
}
