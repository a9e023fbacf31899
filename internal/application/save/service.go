// Package save 提供存档管理能力
package save

import (
	"context"
	"fmt"

	"campus-life-api/internal/config"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
	"campus-life-api/pkg/logger"
)

// 建档时单维属性的默认值
const defaultAttributeValue = 50

// CreateParams 建档参数
type CreateParams struct {
	Name       string
	Attributes *entity.AttributeVector
	Semester   int
	Week       int
}

// Service 存档服务
type Service struct {
	saves repository.SaveRepository
	game  config.GameConfig
}

// NewService 创建存档服务
func NewService(saves repository.SaveRepository, game config.GameConfig) *Service {
	return &Service{saves: saves, game: game}
}

// Create 创建新存档。
// 属性缺省时各维度取 50，显式传入时五维总和必须等于配置的初始总量。
func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*entity.Save, error) {
	attrs := entity.AttributeVector{
		De:  defaultAttributeValue,
		Zhi: defaultAttributeValue,
		Ti:  defaultAttributeValue,
		Mei: defaultAttributeValue,
		Lao: defaultAttributeValue,
	}
	if params.Attributes != nil {
		attrs = *params.Attributes
		for _, key := range entity.AttributeKeys {
			if v := attrs.Get(key); v < entity.AttributeMin || v > entity.AttributeMax {
				return nil, errors.ErrValidationFailed.WithDetail(
					fmt.Sprintf("属性 %s 必须在 %d 到 %d 之间", key, entity.AttributeMin, entity.AttributeMax))
			}
		}
		if attrs.Sum() != s.game.InitialAttributeTotal {
			return nil, errors.ErrValidationFailed.WithDetail(
				fmt.Sprintf("属性总和必须等于 %d", s.game.InitialAttributeTotal))
		}
	}

	sv := entity.NewSave(userID, params.Name, attrs, s.game.EventsPerPhase)

	if params.Semester != 0 {
		if params.Semester < 1 || params.Semester > s.game.MaxSemester {
			return nil, errors.ErrValidationFailed.WithDetail(
				fmt.Sprintf("学期必须在 1 到 %d 之间", s.game.MaxSemester))
		}
		sv.Semester = params.Semester
	}
	if params.Week != 0 {
		if params.Week < 1 || params.Week > s.game.MaxWeek {
			return nil, errors.ErrValidationFailed.WithDetail(
				fmt.Sprintf("周次必须在 1 到 %d 之间", s.game.MaxWeek))
		}
		sv.Week = params.Week
	}
	sv.Phase = s.phaseForWeek(sv.Week)

	if err := s.saves.Create(ctx, sv); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to create save")
	}

	logger.Info(ctx, "save created",
		"save_id", sv.ID,
		"user_id", userID,
		"semester", sv.Semester,
		"week", sv.Week,
	)
	return sv, nil
}

// Get 查询存档并校验归属
func (s *Service) Get(ctx context.Context, userID, saveID int64) (*entity.Save, error) {
	sv, err := s.saves.GetByID(ctx, saveID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to get save")
	}
	if sv == nil {
		return nil, errors.ErrSaveNotFound
	}
	if sv.UserID != userID {
		return nil, errors.ErrForbidden
	}
	return sv, nil
}

// List 查询用户的全部存档
func (s *Service) List(ctx context.Context, userID int64) ([]*entity.Save, error) {
	saves, err := s.saves.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to list saves")
	}
	return saves, nil
}

// Rename 重命名存档
func (s *Service) Rename(ctx context.Context, userID, saveID int64, name string) (*entity.Save, error) {
	sv, err := s.Get(ctx, userID, saveID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.ErrValidationFailed.WithDetail("存档名不能为空")
	}
	if err := s.saves.Rename(ctx, saveID, name); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to rename save")
	}
	sv.Name = name
	return sv, nil
}

// Delete 删除存档
func (s *Service) Delete(ctx context.Context, userID, saveID int64) error {
	if _, err := s.Get(ctx, userID, saveID); err != nil {
		return err
	}
	if err := s.saves.Delete(ctx, saveID); err != nil {
		return errors.Wrap(err, errors.CodeInternalError, "failed to delete save")
	}
	logger.Info(ctx, "save deleted", "save_id", saveID, "user_id", userID)
	return nil
}

// phaseForWeek 根据周次推导阶段
func (s *Service) phaseForWeek(week int) entity.Phase {
	switch {
	case week >= s.game.FinalStartWeek:
		return entity.PhaseFinal
	case week >= s.game.MidtermStartWeek:
		return entity.PhaseMidterm
	default:
		return entity.PhaseOpening
	}
}
