package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"campus-life-api/internal/domain/entity"
)

// SettingRepository 系统设置仓储实现
type SettingRepository struct {
	client *Client
}

// NewSettingRepository 创建系统设置仓储
func NewSettingRepository(client *Client) *SettingRepository {
	return &SettingRepository{client: client}
}

// Get 按键获取设置
func (r *SettingRepository) Get(ctx context.Context, key string) (*entity.SystemSetting, error) {
	ctx, span := tracer.Start(ctx, "postgres.SettingRepository.Get")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `SELECT key, value, updated_at FROM system_settings WHERE key = $1`

	var setting entity.SystemSetting
	err := q.QueryRowContext(ctx, query, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	return &setting, nil
}

// Upsert 写入设置
func (r *SettingRepository) Upsert(ctx context.Context, setting *entity.SystemSetting) error {
	ctx, span := tracer.Start(ctx, "postgres.SettingRepository.Upsert")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO system_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING updated_at
	`

	if err := q.QueryRowContext(ctx, query, setting.Key, []byte(setting.Value)).Scan(&setting.UpdatedAt); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}
