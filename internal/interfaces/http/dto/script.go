package dto

import (
	"campus-life-api/internal/application/play"
	"campus-life-api/internal/domain/entity"
)

// ExecuteScriptRequest 剧本选项执行请求
type ExecuteScriptRequest struct {
	OptionID int `json:"option_id" binding:"required"`
}

// ScriptItem 带状态的剧本列表项
type ScriptItem struct {
	ID              int64                 `json:"id"`
	Title           string                `json:"title"`
	Type            string                `json:"type"`
	Location        string                `json:"location"`
	Content         string                `json:"content"`
	Contents        []string              `json:"contents,omitempty"`
	BackgroundImage string                `json:"background_image,omitempty"`
	Options         []entity.ScriptOption `json:"options,omitempty"`
	Status          string                `json:"status"`
	LockReason      string                `json:"lock_reason,omitempty"`
}

// NewScriptItems 构造剧本列表项。
// 锁定项只在 include_all 模式下出现，出现时同样下发完整内容，
// 解锁校验在执行时兜底。
func NewScriptItems(views []play.ScriptView) []ScriptItem {
	items := make([]ScriptItem, 0, len(views))
	for _, v := range views {
		items = append(items, ScriptItem{
			ID:              v.Script.ID,
			Title:           v.Script.Title,
			Type:            string(v.Script.Type),
			Location:        string(v.Script.Location),
			Content:         v.Script.Content,
			Contents:        v.Script.Contents,
			BackgroundImage: v.Script.BackgroundImage,
			Options:         v.Script.Options,
			Status:          string(v.Status),
			LockReason:      v.LockReason,
		})
	}
	return items
}

// ExecuteScriptResponse 剧本执行结果
type ExecuteScriptResponse struct {
	Save           SaveView    `json:"save"`
	NextScriptID   *int64      `json:"next_script_id,omitempty"`
	UnlockedBadges []BadgeItem `json:"unlocked_badges,omitempty"`
}

// UpsertScriptRequest 剧本创建/更新请求
type UpsertScriptRequest struct {
	Title            string                   `json:"title" binding:"required"`
	Type             string                   `json:"type"`
	Location         string                   `json:"location" binding:"required"`
	Content          string                   `json:"content"`
	Contents         []string                 `json:"contents,omitempty"`
	BackgroundImage  string                   `json:"background_image,omitempty"`
	Options          []entity.ScriptOption    `json:"options" binding:"required"`
	TriggerCondition *entity.TriggerCondition `json:"trigger_condition,omitempty"`
	IsEntry          bool                     `json:"is_entry"`
	Enabled          *bool                    `json:"enabled,omitempty"`
}

// ToEntity 转换为剧本实体
func (r *UpsertScriptRequest) ToEntity(id int64) *entity.Script {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	scriptType := entity.ScriptType(r.Type)
	if scriptType == "" {
		scriptType = entity.ScriptTypeMain
	}
	return &entity.Script{
		ID:               id,
		Title:            r.Title,
		Type:             scriptType,
		Location:         entity.ScriptLocation(r.Location),
		Content:          r.Content,
		Contents:         r.Contents,
		BackgroundImage:  r.BackgroundImage,
		Options:          r.Options,
		TriggerCondition: r.TriggerCondition,
		IsEntry:          r.IsEntry,
		Enabled:          enabled,
	}
}
