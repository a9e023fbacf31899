package entity

import (
	"time"
)

// BadgeConditionType 勋章解锁条件类型
type BadgeConditionType string

const (
	BadgeConditionAttribute BadgeConditionType = "attribute"
	BadgeConditionScripts   BadgeConditionType = "scripts"
	BadgeConditionPhase     BadgeConditionType = "phase"
)

// BadgeUnlockCondition 勋章解锁条件
// 按 Type 区分变体，未识别的类型判定为不满足
type BadgeUnlockCondition struct {
	Type BadgeConditionType `json:"type"`

	// attribute 变体：指定维度达到阈值
	Attribute string `json:"attribute,omitempty"`
	MinValue  int    `json:"min_value,omitempty"`

	// scripts 变体：完成指定剧本或达到完成数量
	Scripts        []int64 `json:"scripts,omitempty"`
	CompletedCount int     `json:"completed_count,omitempty"`

	// phase 变体：到达指定学期
	Semester int `json:"semester,omitempty"`
}

// Badge 勋章实体
type Badge struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	Icon            string                `json:"icon"`
	UnlockCondition *BadgeUnlockCondition `json:"unlock_condition,omitempty"`
	Enabled         bool                  `json:"enabled"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}
