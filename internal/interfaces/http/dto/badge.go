package dto

import (
	"campus-life-api/internal/application/badge"
	"campus-life-api/internal/domain/entity"
)

// BadgeItem 勋章列表项
type BadgeItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// NewBadgeItem 构造勋章列表项
func NewBadgeItem(b *entity.Badge, unlocked bool) BadgeItem {
	return BadgeItem{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
		Unlocked:    unlocked,
	}
}

// NewBadgeItems 从带状态视图构造勋章列表
func NewBadgeItems(views []badge.BadgeView) []BadgeItem {
	items := make([]BadgeItem, 0, len(views))
	for _, v := range views {
		items = append(items, NewBadgeItem(v.Badge, v.Unlocked))
	}
	return items
}

// NewUnlockedBadgeItems 构造已解锁勋章列表
func NewUnlockedBadgeItems(badges []*entity.Badge) []BadgeItem {
	items := make([]BadgeItem, 0, len(badges))
	for _, b := range badges {
		items = append(items, NewBadgeItem(b, true))
	}
	return items
}

// UpsertBadgeRequest 勋章创建/更新请求
type UpsertBadgeRequest struct {
	Name            string                       `json:"name" binding:"required"`
	Description     string                       `json:"description"`
	Icon            string                       `json:"icon"`
	UnlockCondition *entity.BadgeUnlockCondition `json:"unlock_condition,omitempty"`
	Enabled         *bool                        `json:"enabled,omitempty"`
}

// ToEntity 转换为勋章实体
func (r *UpsertBadgeRequest) ToEntity(id int64) *entity.Badge {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return &entity.Badge{
		ID:              id,
		Name:            r.Name,
		Description:     r.Description,
		Icon:            r.Icon,
		UnlockCondition: r.UnlockCondition,
		Enabled:         enabled,
	}
}
