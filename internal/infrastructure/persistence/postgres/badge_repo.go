package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campus-life-api/internal/domain/entity"
)

// BadgeRepository 勋章仓储实现
type BadgeRepository struct {
	client *Client
}

// NewBadgeRepository 创建勋章仓储
func NewBadgeRepository(client *Client) *BadgeRepository {
	return &BadgeRepository{client: client}
}

const badgeColumns = `id, name, description, icon, unlock_condition, enabled, created_at, updated_at`

// Create 创建勋章
func (r *BadgeRepository) Create(ctx context.Context, badge *entity.Badge) error {
	ctx, span := tracer.Start(ctx, "postgres.BadgeRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	conditionJSON, _ := json.Marshal(badge.UnlockCondition)

	query := `
		INSERT INTO badges (name, description, icon, unlock_condition, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		badge.Name, badge.Description, badge.Icon, conditionJSON, badge.Enabled,
	).Scan(&badge.ID, &badge.CreatedAt, &badge.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create badge: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取勋章
func (r *BadgeRepository) GetByID(ctx context.Context, id int64) (*entity.Badge, error) {
	ctx, span := tracer.Start(ctx, "postgres.BadgeRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := fmt.Sprintf(`SELECT %s FROM badges WHERE id = $1`, badgeColumns)

	badge, err := scanBadge(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get badge: %w", err)
	}

	return badge, nil
}

// List 获取勋章列表
func (r *BadgeRepository) List(ctx context.Context, enabledOnly bool) ([]*entity.Badge, error) {
	ctx, span := tracer.Start(ctx, "postgres.BadgeRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := fmt.Sprintf(`SELECT %s FROM badges`, badgeColumns)
	if enabledOnly {
		query += ` WHERE enabled = TRUE`
	}
	query += ` ORDER BY id`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*entity.Badge
	for rows.Next() {
		badge, err := scanBadge(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, badge)
	}

	return badges, rows.Err()
}

// Update 更新勋章
func (r *BadgeRepository) Update(ctx context.Context, badge *entity.Badge) error {
	ctx, span := tracer.Start(ctx, "postgres.BadgeRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	conditionJSON, _ := json.Marshal(badge.UnlockCondition)

	query := `
		UPDATE badges
		SET name = $1, description = $2, icon = $3, unlock_condition = $4,
			enabled = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		badge.Name, badge.Description, badge.Icon, conditionJSON, badge.Enabled, badge.ID,
	).Scan(&badge.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update badge: %w", err)
	}

	return nil
}

// Delete 删除勋章
func (r *BadgeRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.BadgeRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `DELETE FROM badges WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete badge: %w", err)
	}

	return nil
}

func scanBadge(row scanner) (*entity.Badge, error) {
	var badge entity.Badge
	var conditionJSON []byte

	err := row.Scan(
		&badge.ID, &badge.Name, &badge.Description, &badge.Icon,
		&conditionJSON, &badge.Enabled, &badge.CreatedAt, &badge.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(conditionJSON, &badge.UnlockCondition)

	return &badge, nil
}
