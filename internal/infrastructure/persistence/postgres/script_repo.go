package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
)

// ScriptRepository 剧本仓储实现
type ScriptRepository struct {
	client *Client
}

// NewScriptRepository 创建剧本仓储
func NewScriptRepository(client *Client) *ScriptRepository {
	return &ScriptRepository{client: client}
}

const scriptColumns = `id, title, type, location, content, contents, background_image,
	options, trigger_condition, is_entry, enabled, created_at, updated_at`

// Create 创建剧本
func (r *ScriptRepository) Create(ctx context.Context, script *entity.Script) error {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	optionsJSON, _ := json.Marshal(script.Options)
	conditionJSON, _ := json.Marshal(script.TriggerCondition)
	contentsJSON, _ := json.Marshal(script.Contents)

	query := `
		INSERT INTO scripts (title, type, location, content, contents, background_image,
			options, trigger_condition, is_entry, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		script.Title, script.Type, script.Location, script.Content, contentsJSON,
		script.BackgroundImage, optionsJSON, conditionJSON, script.IsEntry, script.Enabled,
	).Scan(&script.ID, &script.CreatedAt, &script.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create script: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取剧本
func (r *ScriptRepository) GetByID(ctx context.Context, id int64) (*entity.Script, error) {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := fmt.Sprintf(`SELECT %s FROM scripts WHERE id = $1`, scriptColumns)

	script, err := scanScript(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get script: %w", err)
	}

	return script, nil
}

// List 按过滤条件获取剧本列表
func (r *ScriptRepository) List(ctx context.Context, filter repository.ScriptFilter) ([]*entity.Script, error) {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	whereClause, args := buildScriptWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM scripts WHERE %s ORDER BY id`, scriptColumns, whereClause)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	defer rows.Close()

	var scripts []*entity.Script
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan script: %w", err)
		}
		scripts = append(scripts, script)
	}

	return scripts, rows.Err()
}

// ListPaged 分页获取剧本列表
func (r *ScriptRepository) ListPaged(ctx context.Context, filter repository.ScriptFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Script], error) {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.ListPaged")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	whereClause, args := buildScriptWhere(filter)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM scripts WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count scripts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM scripts
		WHERE %s
		ORDER BY id
		LIMIT $%d OFFSET $%d
	`, scriptColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	defer rows.Close()

	var scripts []*entity.Script
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan script: %w", err)
		}
		scripts = append(scripts, script)
	}

	return repository.NewPagedResult(scripts, total, pagination), nil
}

// Update 更新剧本
func (r *ScriptRepository) Update(ctx context.Context, script *entity.Script) error {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	optionsJSON, _ := json.Marshal(script.Options)
	conditionJSON, _ := json.Marshal(script.TriggerCondition)
	contentsJSON, _ := json.Marshal(script.Contents)

	query := `
		UPDATE scripts
		SET title = $1, type = $2, location = $3, content = $4, contents = $5,
			background_image = $6, options = $7, trigger_condition = $8,
			is_entry = $9, enabled = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		script.Title, script.Type, script.Location, script.Content, contentsJSON,
		script.BackgroundImage, optionsJSON, conditionJSON, script.IsEntry,
		script.Enabled, script.ID,
	).Scan(&script.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update script: %w", err)
	}

	return nil
}

// Delete 删除剧本
func (r *ScriptRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.ScriptRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `DELETE FROM scripts WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete script: %w", err)
	}

	return nil
}

func buildScriptWhere(filter repository.ScriptFilter) (string, []interface{}) {
	whereClause := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Location != "" {
		whereClause += fmt.Sprintf(" AND location = $%d", argIdx)
		args = append(args, filter.Location)
		argIdx++
	}
	if filter.EnabledOnly {
		whereClause += " AND enabled = TRUE"
	}

	return whereClause, args
}

func scanScript(row scanner) (*entity.Script, error) {
	var script entity.Script
	var optionsJSON, conditionJSON, contentsJSON []byte

	err := row.Scan(
		&script.ID, &script.Title, &script.Type, &script.Location, &script.Content,
		&contentsJSON, &script.BackgroundImage, &optionsJSON, &conditionJSON,
		&script.IsEntry, &script.Enabled, &script.CreatedAt, &script.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(optionsJSON, &script.Options)
	json.Unmarshal(conditionJSON, &script.TriggerCondition)
	json.Unmarshal(contentsJSON, &script.Contents)

	return &script, nil
}
