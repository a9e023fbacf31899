package entity

import (
	"time"
)

// WorkshopChain 创意工坊剧本链
// RootScriptID 缓存入口节点 ID，随入口标记变更同步
type WorkshopChain struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	CoverImage   string    `json:"cover_image,omitempty"`
	RootScriptID *int64    `json:"root_script_id,omitempty"`
	IsImported   bool      `json:"is_imported"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NodePosition 画布坐标
type NodePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorkshopScript 工坊剧本节点
type WorkshopScript struct {
	ID              int64          `json:"id"`
	ChainID         int64          `json:"chain_id"`
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	Contents        []string       `json:"contents,omitempty"`
	BackgroundImage string         `json:"background_image,omitempty"`
	Options         []ScriptOption `json:"options"`
	IsEntry         bool           `json:"is_entry"`
	Position        NodePosition   `json:"position"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// PositionUpdate 节点坐标批量更新项
type PositionUpdate struct {
	NodeID   int64        `json:"node_id"`
	Position NodePosition `json:"position"`
}
