// Package play 提供剧本列表与选项执行能力
package play

import (
	"context"
	"time"

	"campus-life-api/internal/application/unlock"
	"campus-life-api/internal/config"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
	"campus-life-api/pkg/logger"
	"campus-life-api/pkg/metrics"
)

// ScriptStatus 剧本相对于存档的状态
type ScriptStatus string

const (
	StatusCompleted ScriptStatus = "completed"
	StatusAvailable ScriptStatus = "available"
	StatusLocked    ScriptStatus = "locked"
)

// ScriptView 带状态标注的剧本视图
type ScriptView struct {
	Script     *entity.Script `json:"script"`
	Status     ScriptStatus   `json:"status"`
	LockReason string         `json:"lock_reason,omitempty"`
}

// ExecuteResult 选项执行结果
type ExecuteResult struct {
	Save           *entity.Save    `json:"save"`
	NextScriptID   *int64          `json:"next_script_id,omitempty"`
	UnlockedBadges []*entity.Badge `json:"unlocked_badges,omitempty"`
}

// Catalog 剧本目录读取接口，实现方可以带缓存
type Catalog interface {
	ListByLocation(ctx context.Context, location entity.ScriptLocation) ([]*entity.Script, error)
}

// BadgeScanner 勋章扫描接口
// Scan 将新解锁的勋章追加到存档并返回勋章列表
type BadgeScanner interface {
	Scan(ctx context.Context, save *entity.Save) ([]*entity.Badge, error)
}

// Service 玩法服务
type Service struct {
	saves   repository.SaveRepository
	scripts repository.ScriptRepository
	catalog Catalog
	scanner BadgeScanner
	tx      repository.Transactor
	game    config.GameConfig
}

// NewService 创建玩法服务
func NewService(
	saves repository.SaveRepository,
	scripts repository.ScriptRepository,
	catalog Catalog,
	scanner BadgeScanner,
	tx repository.Transactor,
	game config.GameConfig,
) *Service {
	return &Service{
		saves:   saves,
		scripts: scripts,
		catalog: catalog,
		scanner: scanner,
		tx:      tx,
		game:    game,
	}
}

// ListScripts 列出剧本并标注状态。
// 地点为空或 all 时跨全部地点聚合；
// includeAll 为假时仅返回可用剧本，为真时连同已完成和锁定的一起返回。
func (s *Service) ListScripts(ctx context.Context, userID, saveID int64, location entity.ScriptLocation, includeAll bool) ([]ScriptView, error) {
	allLocations := location == "" || location == entity.LocationAll
	if allLocations {
		location = entity.LocationAll
	} else if !entity.ValidLocation(location) {
		return nil, errors.ErrInvalidParam.WithDetail("未知的地点")
	}

	start := time.Now()
	defer func() {
		metrics.ScriptListDuration.WithLabelValues(string(location)).Observe(time.Since(start).Seconds())
	}()

	save, err := s.loadOwnedSave(ctx, userID, saveID)
	if err != nil {
		return nil, err
	}

	locations := []entity.ScriptLocation{location}
	if allLocations {
		locations = entity.Locations
	}

	views := make([]ScriptView, 0)
	for _, loc := range locations {
		scripts, err := s.catalog.ListByLocation(ctx, loc)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list scripts")
		}
		for _, script := range scripts {
			view := s.classify(save, script)
			if !includeAll && view.Status != StatusAvailable {
				continue
			}
			views = append(views, view)
		}
	}
	return views, nil
}

// classify 判定剧本对存档的状态
func (s *Service) classify(save *entity.Save, script *entity.Script) ScriptView {
	if save.HasCompleted(script.ID) {
		return ScriptView{Script: script, Status: StatusCompleted}
	}
	gate := unlock.EvaluateScriptGate(save, script.TriggerCondition)
	if !gate.Unlocked {
		return ScriptView{Script: script, Status: StatusLocked, LockReason: gate.Reason}
	}
	return ScriptView{Script: script, Status: StatusAvailable}
}

// Execute 执行剧本选项。
// 在事务内完成：解锁门复核、属性结算、完成记录、事件额度扣减、
// 勋章扫描与带版本号的进度写入。版本冲突返回 ErrSaveConflict。
func (s *Service) Execute(ctx context.Context, userID, saveID, scriptID int64, optionID int) (*ExecuteResult, error) {
	script, err := s.scripts.GetByID(ctx, scriptID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get script")
	}
	if script == nil || !script.Enabled {
		s.countExecution("", "not_found")
		return nil, errors.ErrScriptNotFound
	}

	var result *ExecuteResult
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		save, err := s.loadOwnedSave(ctx, userID, saveID)
		if err != nil {
			return err
		}

		if save.HasCompleted(scriptID) {
			return errors.ErrScriptCompleted
		}

		// 执行前复核解锁条件，防止绕过列表直接调用
		gate := unlock.EvaluateScriptGate(save, script.TriggerCondition)
		if !gate.Unlocked {
			return errors.ErrScriptLocked.WithDetail(gate.Reason)
		}

		option := script.FindOption(optionID)
		if option == nil {
			return errors.ErrInvalidOption
		}

		save.Attributes = save.Attributes.ApplyDelta(option.AttributeChanges)
		save.MarkCompleted(scriptID)
		save.ConsumeEvent()

		badges, err := s.scanner.Scan(ctx, save)
		if err != nil {
			return err
		}

		if err := s.saves.UpdateProgress(ctx, save); err != nil {
			return err
		}

		result = &ExecuteResult{
			Save:           save,
			NextScriptID:   option.NextScriptID,
			UnlockedBadges: badges,
		}
		return nil
	})
	if err != nil {
		s.countExecution(script.Location, executionStatus(err))
		return nil, err
	}

	s.countExecution(script.Location, "ok")
	logger.Info(ctx, "script executed",
		"save_id", saveID,
		"script_id", scriptID,
		"option_id", optionID,
		"remaining_events", result.Save.RemainingEvents,
		"settlement_due", result.Save.SettlementDue,
	)
	return result, nil
}

// loadOwnedSave 加载存档并校验归属
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

func (s *Service) countExecution(location entity.ScriptLocation, status string) {
	metrics.ScriptExecutionsTotal.WithLabelValues(string(location), status).Inc()
}

func executionStatus(err error) string {
	appErr := errors.AsAppError(err)
	switch appErr.Code {
	case errors.CodeScriptLocked:
		return "locked"
	case errors.CodeScriptCompleted:
		return "completed"
	case errors.CodeSaveConflict:
		return "conflict"
	case errors.CodeInvalidOption:
		return "invalid_option"
	default:
		return "error"
	}
}
