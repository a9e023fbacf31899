// Package badge 提供勋章扫描与查询能力
package badge

import (
	"context"
	"time"

	"campus-life-api/internal/application/unlock"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
	"campus-life-api/pkg/logger"
	"campus-life-api/pkg/metrics"
)

// BadgeView 带解锁状态的勋章视图
type BadgeView struct {
	Badge    *entity.Badge `json:"badge"`
	Unlocked bool          `json:"unlocked"`
}

// Scanner 勋章扫描器
type Scanner struct {
	badges repository.BadgeRepository
	saves  repository.SaveRepository
}

// NewScanner 创建勋章扫描器
func NewScanner(badges repository.BadgeRepository, saves repository.SaveRepository) *Scanner {
	return &Scanner{badges: badges, saves: saves}
}

// Scan 对存档扫描全部启用的勋章，将新满足条件的追加到存档。
// 已解锁的勋章不会被移除，重复扫描不会产生新的解锁。
// 调用方负责持久化存档。
func (s *Scanner) Scan(ctx context.Context, save *entity.Save) ([]*entity.Badge, error) {
	start := time.Now()
	defer func() {
		metrics.BadgeScanDuration.Observe(time.Since(start).Seconds())
	}()

	badges, err := s.badges.List(ctx, true)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list badges")
	}

	var newlyUnlocked []*entity.Badge
	for _, b := range badges {
		if save.HasBadge(b.ID) {
			continue
		}
		if unlock.EvaluateBadgeCondition(save, b.UnlockCondition) {
			save.UnlockedBadges = append(save.UnlockedBadges, b.ID)
			newlyUnlocked = append(newlyUnlocked, b)
		}
	}

	if len(newlyUnlocked) > 0 {
		metrics.BadgesUnlockedTotal.Add(float64(len(newlyUnlocked)))
		logger.Info(ctx, "badges unlocked",
			"save_id", save.ID,
			"count", len(newlyUnlocked),
		)
	}
	return newlyUnlocked, nil
}

// ScanAndPersist 扫描并在有新解锁时持久化存档。
// 没有新解锁时不产生写入。
func (s *Scanner) ScanAndPersist(ctx context.Context, save *entity.Save) ([]*entity.Badge, error) {
	newlyUnlocked, err := s.Scan(ctx, save)
	if err != nil {
		return nil, err
	}
	if len(newlyUnlocked) == 0 {
		return nil, nil
	}
	if err := s.saves.UpdateProgress(ctx, save); err != nil {
		return nil, err
	}
	return newlyUnlocked, nil
}

// ListWithStatus 列出全部启用的勋章并标注存档的解锁状态
func (s *Scanner) ListWithStatus(ctx context.Context, save *entity.Save) ([]BadgeView, error) {
	badges, err := s.badges.List(ctx, true)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list badges")
	}
	views := make([]BadgeView, 0, len(badges))
	for _, b := range badges {
		views = append(views, BadgeView{Badge: b, Unlocked: save.HasBadge(b.ID)})
	}
	return views, nil
}

// ListUnlocked 列出存档已解锁的勋章
func (s *Scanner) ListUnlocked(ctx context.Context, save *entity.Save) ([]*entity.Badge, error) {
	badges, err := s.badges.List(ctx, true)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list badges")
	}
	var unlocked []*entity.Badge
	for _, b := range badges {
		if save.HasBadge(b.ID) {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked, nil
}
