package dto

import (
	"campus-life-api/internal/domain/entity"
)

// UpsertChainRequest 剧本链创建/更新请求
type UpsertChainRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	CoverImage  string `json:"cover_image"`
}

// UpsertNodeRequest 工坊节点创建/更新请求
type UpsertNodeRequest struct {
	Title           string                `json:"title" binding:"required"`
	Content         string                `json:"content"`
	Contents        []string              `json:"contents,omitempty"`
	BackgroundImage string                `json:"background_image,omitempty"`
	Options         []entity.ScriptOption `json:"options"`
	IsEntry         bool                  `json:"is_entry"`
	Position        entity.NodePosition   `json:"position"`
}

// ToEntity 转换为节点实体
func (r *UpsertNodeRequest) ToEntity(id, chainID int64) *entity.WorkshopScript {
	return &entity.WorkshopScript{
		ID:              id,
		ChainID:         chainID,
		Title:           r.Title,
		Content:         r.Content,
		Contents:        r.Contents,
		BackgroundImage: r.BackgroundImage,
		Options:         r.Options,
		IsEntry:         r.IsEntry,
		Position:        r.Position,
	}
}

// UpdatePositionsRequest 节点坐标批量更新请求
type UpdatePositionsRequest struct {
	Positions []entity.PositionUpdate `json:"positions" binding:"required"`
}

// ToggleImportRequest 剧本链导入开关请求
type ToggleImportRequest struct {
	Imported bool `json:"imported"`
}
