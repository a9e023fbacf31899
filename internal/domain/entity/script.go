package entity

import (
	"time"
)

// ScriptLocation 剧本地点
type ScriptLocation string

const (
	LocationDormitory ScriptLocation = "dormitory"
	LocationClassroom ScriptLocation = "classroom"
	LocationCafeteria ScriptLocation = "cafeteria"
	LocationLibrary   ScriptLocation = "library"
	LocationGym       ScriptLocation = "gym"
	LocationClub      ScriptLocation = "club"

	// LocationAll 列表查询时表示不限地点
	LocationAll ScriptLocation = "all"
)

// Locations 地点的固定遍历顺序
var Locations = []ScriptLocation{
	LocationDormitory,
	LocationClassroom,
	LocationCafeteria,
	LocationLibrary,
	LocationGym,
	LocationClub,
}

// ScriptType 剧本类型，仅用于描述，不参与解锁判断
type ScriptType string

const (
	ScriptTypeMain    ScriptType = "main"
	ScriptTypeBranch  ScriptType = "branch"
	ScriptTypeSpecial ScriptType = "special"
)

// ScriptOption 剧本选项
// NextScriptID 为空表示该选项没有后续剧本
type ScriptOption struct {
	ID               int            `json:"id"`
	Text             string         `json:"text"`
	AttributeChanges AttributeDelta `json:"attribute_changes"`
	NextScriptID     *int64         `json:"next_script_id,omitempty"`
}

// TriggerCondition 剧本解锁条件
// 所有子句之间为 AND 关系，空子句视为通过
type TriggerCondition struct {
	Semesters       []int          `json:"semester,omitempty"`
	Weeks           []int          `json:"week,omitempty"`
	MinAttributes   map[string]int `json:"min_attributes,omitempty"`
	RequiredScripts []int64        `json:"required_scripts,omitempty"`
}

// IsEmpty 是否为无条件剧本
func (c *TriggerCondition) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.Semesters) == 0 && len(c.Weeks) == 0 &&
		len(c.MinAttributes) == 0 && len(c.RequiredScripts) == 0
}

// Script 剧本实体
// Contents 为分段正文，为空时以 Content 整段展示
type Script struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Type             ScriptType        `json:"type"`
	Location         ScriptLocation    `json:"location"`
	Content          string            `json:"content"`
	Contents         []string          `json:"contents,omitempty"`
	BackgroundImage  string            `json:"background_image,omitempty"`
	Options          []ScriptOption    `json:"options"`
	TriggerCondition *TriggerCondition `json:"trigger_condition,omitempty"`
	IsEntry          bool              `json:"is_entry"`
	Enabled          bool              `json:"enabled"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// FindOption 按 ID 查找选项
func (s *Script) FindOption(optionID int) *ScriptOption {
	for i := range s.Options {
		if s.Options[i].ID == optionID {
			return &s.Options[i]
		}
	}
	return nil
}

// ValidLocation 地点取值校验
func ValidLocation(loc ScriptLocation) bool {
	switch loc {
	case LocationDormitory, LocationClassroom, LocationCafeteria,
		LocationLibrary, LocationGym, LocationClub:
		return true
	}
	return false
}

// ValidScriptType 类型取值校验，空值按 main 处理
func ValidScriptType(t ScriptType) bool {
	switch t {
	case "", ScriptTypeMain, ScriptTypeBranch, ScriptTypeSpecial:
		return true
	}
	return false
}
