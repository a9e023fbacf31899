package repository

import (
	"context"

	"campus-life-api/internal/domain/entity"
)

// SettingRepository 系统设置仓储接口
type SettingRepository interface {
	// Get 按键查询设置，不存在时返回 nil
	Get(ctx context.Context, key string) (*entity.SystemSetting, error)

	// Upsert 写入设置，已存在时覆盖
	Upsert(ctx context.Context, setting *entity.SystemSetting) error
}
