package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
)

// WorkshopRepository 创意工坊仓储实现
type WorkshopRepository struct {
	client *Client
}

// NewWorkshopRepository 创建工坊仓储
func NewWorkshopRepository(client *Client) *WorkshopRepository {
	return &WorkshopRepository{client: client}
}

const chainColumns = `id, owner_id, title, description, location, cover_image,
	root_script_id, is_imported, created_at, updated_at`

const nodeColumns = `id, chain_id, title, content, contents, background_image,
	options, is_entry, position_x, position_y, created_at, updated_at`

// CreateChain 创建剧本链
func (r *WorkshopRepository) CreateChain(ctx context.Context, chain *entity.WorkshopChain) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.CreateChain")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO workshop_chains (owner_id, title, description, location,
			cover_image, root_script_id, is_imported, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		chain.OwnerID, chain.Title, chain.Description, chain.Location,
		chain.CoverImage, nullInt64(chain.RootScriptID), chain.IsImported,
	).Scan(&chain.ID, &chain.CreatedAt, &chain.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chain: %w", err)
	}

	return nil
}

// GetChain 根据 ID 获取剧本链
func (r *WorkshopRepository) GetChain(ctx context.Context, id int64) (*entity.WorkshopChain, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.GetChain")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := fmt.Sprintf(`SELECT %s FROM workshop_chains WHERE id = $1`, chainColumns)

	chain, err := scanChain(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get chain: %w", err)
	}

	return chain, nil
}

// ListChainsByOwner 分页获取创作者的剧本链
func (r *WorkshopRepository) ListChainsByOwner(ctx context.Context, ownerID int64, pagination repository.Pagination) (*repository.PagedResult[*entity.WorkshopChain], error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.ListChainsByOwner")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	var total int64
	countQuery := `SELECT COUNT(*) FROM workshop_chains WHERE owner_id = $1`
	if err := q.QueryRowContext(ctx, countQuery, ownerID).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count chains: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM workshop_chains
		WHERE owner_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, chainColumns)

	rows, err := q.QueryContext(ctx, query, ownerID, pagination.Limit(), pagination.Offset())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chains: %w", err)
	}
	defer rows.Close()

	var chains []*entity.WorkshopChain
	for rows.Next() {
		chain, err := scanChain(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan chain: %w", err)
		}
		chains = append(chains, chain)
	}

	return repository.NewPagedResult(chains, total, pagination), nil
}

// UpdateChain 更新剧本链
func (r *WorkshopRepository) UpdateChain(ctx context.Context, chain *entity.WorkshopChain) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.UpdateChain")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE workshop_chains
		SET title = $1, description = $2, location = $3, cover_image = $4,
			root_script_id = $5, is_imported = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		chain.Title, chain.Description, chain.Location, chain.CoverImage,
		nullInt64(chain.RootScriptID), chain.IsImported, chain.ID,
	).Scan(&chain.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update chain: %w", err)
	}

	return nil
}

// DeleteChain 删除剧本链及其全部节点
func (r *WorkshopRepository) DeleteChain(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.DeleteChain")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM workshop_scripts WHERE chain_id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chain nodes: %w", err)
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM workshop_chains WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chain: %w", err)
	}

	return nil
}

// CreateNode 创建节点
func (r *WorkshopRepository) CreateNode(ctx context.Context, node *entity.WorkshopScript) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.CreateNode")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	optionsJSON, _ := json.Marshal(node.Options)
	contentsJSON, _ := json.Marshal(node.Contents)

	query := `
		INSERT INTO workshop_scripts (chain_id, title, content, contents,
			background_image, options, is_entry, position_x, position_y,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		node.ChainID, node.Title, node.Content, contentsJSON, node.BackgroundImage,
		optionsJSON, node.IsEntry, node.Position.X, node.Position.Y,
	).Scan(&node.ID, &node.CreatedAt, &node.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create node: %w", err)
	}

	return nil
}

// GetNode 根据 ID 获取节点
func (r *WorkshopRepository) GetNode(ctx context.Context, id int64) (*entity.WorkshopScript, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.GetNode")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := fmt.Sprintf(`SELECT %s FROM workshop_scripts WHERE id = $1`, nodeColumns)

	node, err := scanNode(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get node: %w", err)
	}

	return node, nil
}

// ListNodes 获取剧本链的全部节点
func (r *WorkshopRepository) ListNodes(ctx context.Context, chainID int64) ([]*entity.WorkshopScript, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.ListNodes")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := fmt.Sprintf(`SELECT %s FROM workshop_scripts WHERE chain_id = $1 ORDER BY id`, nodeColumns)

	rows, err := q.QueryContext(ctx, query, chainID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	defer rows.Close()

	var nodes []*entity.WorkshopScript
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes = append(nodes, node)
	}

	return nodes, rows.Err()
}

// UpdateNode 更新节点
func (r *WorkshopRepository) UpdateNode(ctx context.Context, node *entity.WorkshopScript) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.UpdateNode")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	optionsJSON, _ := json.Marshal(node.Options)
	contentsJSON, _ := json.Marshal(node.Contents)

	query := `
		UPDATE workshop_scripts
		SET title = $1, content = $2, contents = $3, background_image = $4,
			options = $5, is_entry = $6, position_x = $7, position_y = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		node.Title, node.Content, contentsJSON, node.BackgroundImage, optionsJSON,
		node.IsEntry, node.Position.X, node.Position.Y, node.ID,
	).Scan(&node.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update node: %w", err)
	}

	return nil
}

// DeleteNode 删除节点
func (r *WorkshopRepository) DeleteNode(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.DeleteNode")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `DELETE FROM workshop_scripts WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete node: %w", err)
	}

	return nil
}

// ClearEntryFlags 清除剧本链内全部节点的入口标记
func (r *WorkshopRepository) ClearEntryFlags(ctx context.Context, chainID int64) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.ClearEntryFlags")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `UPDATE workshop_scripts SET is_entry = FALSE, updated_at = NOW() WHERE chain_id = $1 AND is_entry = TRUE`
	if _, err := q.ExecContext(ctx, query, chainID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to clear entry flags: %w", err)
	}

	return nil
}

// UpdatePositions 批量更新节点坐标
func (r *WorkshopRepository) UpdatePositions(ctx context.Context, chainID int64, updates []entity.PositionUpdate) error {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.UpdatePositions")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE workshop_scripts
		SET position_x = $1, position_y = $2, updated_at = NOW()
		WHERE id = $3 AND chain_id = $4
	`
	for _, u := range updates {
		if _, err := q.ExecContext(ctx, query, u.Position.X, u.Position.Y, u.NodeID, chainID); err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to update node position: %w", err)
		}
	}

	return nil
}

// CountNodes 统计剧本链的节点数量
func (r *WorkshopRepository) CountNodes(ctx context.Context, chainID int64) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorkshopRepository.CountNodes")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	var count int64
	query := `SELECT COUNT(*) FROM workshop_scripts WHERE chain_id = $1`
	if err := q.QueryRowContext(ctx, query, chainID).Scan(&count); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}

	return count, nil
}

func scanChain(row scanner) (*entity.WorkshopChain, error) {
	var chain entity.WorkshopChain
	var rootScriptID sql.NullInt64

	err := row.Scan(
		&chain.ID, &chain.OwnerID, &chain.Title, &chain.Description,
		&chain.Location, &chain.CoverImage, &rootScriptID, &chain.IsImported,
		&chain.CreatedAt, &chain.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rootScriptID.Valid {
		chain.RootScriptID = &rootScriptID.Int64
	}

	return &chain, nil
}

func scanNode(row scanner) (*entity.WorkshopScript, error) {
	var node entity.WorkshopScript
	var optionsJSON, contentsJSON []byte

	err := row.Scan(
		&node.ID, &node.ChainID, &node.Title, &node.Content, &contentsJSON,
		&node.BackgroundImage, &optionsJSON, &node.IsEntry,
		&node.Position.X, &node.Position.Y, &node.CreatedAt, &node.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(optionsJSON, &node.Options)
	json.Unmarshal(contentsJSON, &node.Contents)

	return &node, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
