package settlement

import (
	"context"

	"campus-life-api/internal/config"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
	"campus-life-api/pkg/logger"
	"campus-life-api/pkg/metrics"
)

// Report 结算报告
type Report struct {
	Phase      entity.Phase           `json:"phase"`
	PhaseLabel string                 `json:"phase_label"`
	Evaluation []string               `json:"evaluation"`
	Attributes entity.AttributeVector `json:"attributes"`
	Next       Transition             `json:"next"`
}

// ConfirmResult 结算确认结果
type ConfirmResult struct {
	Report         *Report         `json:"report"`
	Save           *entity.Save    `json:"save"`
	UnlockedBadges []*entity.Badge `json:"unlocked_badges,omitempty"`
}

// BadgeScanner 勋章扫描接口
type BadgeScanner interface {
	Scan(ctx context.Context, save *entity.Save) ([]*entity.Badge, error)
}

// Service 结算服务
type Service struct {
	saves   repository.SaveRepository
	scanner BadgeScanner
	tx      repository.Transactor
	game    config.GameConfig
}

// NewService 创建结算服务
func NewService(saves repository.SaveRepository, scanner BadgeScanner, tx repository.Transactor, game config.GameConfig) *Service {
	return &Service{saves: saves, scanner: scanner, tx: tx, game: game}
}

// Preview 生成当前阶段的结算报告，不修改存档
func (s *Service) Preview(ctx context.Context, userID, saveID int64) (*Report, error) {
	save, err := s.loadOwnedSave(ctx, userID, saveID)
	if err != nil {
		return nil, err
	}
	return s.buildReport(save), nil
}

// Confirm 确认结算并推进阶段。
// 在事务内推进学期、周次与阶段，重置事件额度，清除待结算标记，
// 扫描勋章并以版本号条件写回。仅当存档处于待结算状态时允许确认。
func (s *Service) Confirm(ctx context.Context, userID, saveID int64) (*ConfirmResult, error) {
	var result *ConfirmResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		save, err := s.loadOwnedSave(ctx, userID, saveID)
		if err != nil {
			return err
		}
		if !save.SettlementDue {
			return errors.ErrConflict.WithDetail("当前没有待确认的结算")
		}

		report := s.buildReport(save)
		confirmedPhase := save.Phase

		save.Semester = report.Next.Semester
		save.Week = report.Next.Week
		save.Phase = report.Next.Phase
		save.RemainingEvents = s.game.EventsPerPhase
		save.SettlementDue = false

		badges, err := s.scanner.Scan(ctx, save)
		if err != nil {
			return err
		}

		if err := s.saves.UpdateProgress(ctx, save); err != nil {
			return err
		}

		metrics.SettlementsTotal.WithLabelValues(string(confirmedPhase)).Inc()
		result = &ConfirmResult{
			Report:         report,
			Save:           save,
			UnlockedBadges: badges,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "settlement confirmed",
		"save_id", saveID,
		"semester", result.Save.Semester,
		"week", result.Save.Week,
		"phase", result.Save.Phase,
	)
	return result, nil
}

// buildReport 生成结算报告
func (s *Service) buildReport(save *entity.Save) *Report {
	return &Report{
		Phase:      save.Phase,
		PhaseLabel: save.Phase.Label(),
		Evaluation: GenerateEvaluation(save.Attributes),
		Attributes: save.Attributes,
		Next:       Next(save.Semester, save.Week, save.Phase, s.game),
	}
}

func (s *Service) loadOwnedSave(ctx context.Context, userID, saveID int64) (*entity.Save, error) {
	save, err := s.saves.GetByID(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get save")
	}
	if save == nil {
		return nil, errors.ErrSaveNotFound
	}
	if save.UserID != userID {
		return nil, errors.ErrForbidden
	}
	return save, nil
}
