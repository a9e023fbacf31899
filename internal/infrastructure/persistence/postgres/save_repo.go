package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campus-life-api/internal/domain/entity"
	apperrors "campus-life-api/pkg/errors"
)

// SaveRepository 存档仓储实现
type SaveRepository struct {
	client *Client
}

// NewSaveRepository 创建存档仓储
func NewSaveRepository(client *Client) *SaveRepository {
	return &SaveRepository{client: client}
}

const saveColumns = `id, user_id, name, semester, week, phase, attributes,
	completed_scripts, remaining_events, settlement_due, unlocked_badges,
	version, created_at, updated_at`

// Create 创建存档
func (r *SaveRepository) Create(ctx context.Context, save *entity.Save) error {
	ctx, span := tracer.Start(ctx, "postgres.SaveRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	attrsJSON, _ := json.Marshal(save.Attributes)
	completedJSON, _ := json.Marshal(save.CompletedScripts)
	badgesJSON, _ := json.Marshal(save.UnlockedBadges)

	query := `
		INSERT INTO saves (user_id, name, semester, week, phase, attributes,
			completed_scripts, remaining_events, settlement_due, unlocked_badges,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		save.UserID, save.Name, save.Semester, save.Week, save.Phase,
		attrsJSON, completedJSON, save.RemainingEvents, save.SettlementDue,
		badgesJSON, save.Version,
	).Scan(&save.ID, &save.CreatedAt, &save.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create save: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取存档
func (r *SaveRepository) GetByID(ctx context.Context, id int64) (*entity.Save, error) {
	ctx, span := tracer.Start(ctx, "postgres.SaveRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := fmt.Sprintf(`SELECT %s FROM saves WHERE id = $1`, saveColumns)

	save, err := scanSave(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get save: %w", err)
	}

	return save, nil
}

// ListByUser 获取用户的全部存档
func (r *SaveRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Save, error) {
	ctx, span := tracer.Start(ctx, "postgres.SaveRepository.ListByUser")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := fmt.Sprintf(`SELECT %s FROM saves WHERE user_id = $1 ORDER BY updated_at DESC`, saveColumns)

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var saves []*entity.Save
	for rows.Next() {
		save, err := scanSave(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		saves = append(saves, save)
	}

	return saves, rows.Err()
}

// UpdateProgress 按版本号条件更新存档进度
// 版本不匹配时不产生写入并返回 ErrSaveConflict
func (r *SaveRepository) UpdateProgress(ctx context.Context, save *entity.Save) error {
	ctx, span := tracer.Start(ctx, "postgres.SaveRepository.UpdateProgress")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	attrsJSON, _ := json.Marshal(save.Attributes)
	completedJSON, _ := json.Marshal(save.CompletedScripts)
	badgesJSON, _ := json.Marshal(save.UnlockedBadges)

	query := `
		UPDATE saves
		SET semester = $1, week = $2, phase = $3, attributes = $4,
			completed_scripts = $5, remaining_events = $6, settlement_due = $7,
			unlocked_badges = $8, version = version + 1, updated_at = NOW()
		WHERE id = $9 AND version = $10
		RETURNING version, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		save.Semester, save.Week, save.Phase, attrsJSON,
		completedJSON, save.RemainingEvents, save.SettlementDue,
		badgesJSON, save.ID, save.Version,
	).Scan(&save.Version, &save.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.ErrSaveConflict
		}
		span.RecordError(err)
		return fmt.Errorf("failed to update save progress: %w", err)
	}

	return nil
}

// Rename 更新存档名称
func (r *SaveRepository) Rename(ctx context.Context, id int64, name string) error {
	ctx, span := tracer.Start(ctx, "postgres.SaveRepository.Rename")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `UPDATE saves SET name = $1, updated_at = NOW() WHERE id = $2`
	if _, err := q.ExecContext(ctx, query, name, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to rename save: %w", err)
	}

	return nil
}

// Delete 删除存档
func (r *SaveRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.SaveRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `DELETE FROM saves WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete save: %w", err)
	}

	return nil
}

// CountByUser 统计用户存档数量
func (r *SaveRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.SaveRepository.CountByUser")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	var count int64
	query := `SELECT COUNT(*) FROM saves WHERE user_id = $1`
	if err := q.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count saves: %w", err)
	}

	return count, nil
}

// scanner 兼容 *sql.Row 和 *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSave(row scanner) (*entity.Save, error) {
	var save entity.Save
	var attrsJSON, completedJSON, badgesJSON []byte

	err := row.Scan(
		&save.ID, &save.UserID, &save.Name, &save.Semester, &save.Week,
		&save.Phase, &attrsJSON, &completedJSON, &save.RemainingEvents,
		&save.SettlementDue, &badgesJSON, &save.Version,
		&save.CreatedAt, &save.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(attrsJSON, &save.Attributes)
	json.Unmarshal(completedJSON, &save.CompletedScripts)
	json.Unmarshal(badgesJSON, &save.UnlockedBadges)

	if save.CompletedScripts == nil {
		save.CompletedScripts = []int64{}
	}
	if save.UnlockedBadges == nil {
		save.UnlockedBadges = []int64{}
	}

	return &save, nil
}
