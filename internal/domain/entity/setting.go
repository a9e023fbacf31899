package entity

import (
	"encoding/json"
	"time"
)

// 系统设置键
const (
	SettingAnnouncements = "announcements"
	SettingCredits       = "credits"
)

// SystemSetting 系统设置项，Value 为任意 JSON 文档
type SystemSetting struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}
