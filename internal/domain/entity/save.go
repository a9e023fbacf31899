package entity

import (
	"time"
)

// Phase 学期阶段
type Phase string

const (
	PhaseOpening Phase = "opening"
	PhaseMidterm Phase = "midterm"
	PhaseFinal   Phase = "final"
)

// PhaseLabels 阶段中文标签
var PhaseLabels = map[Phase]string{
	PhaseOpening: "期初",
	PhaseMidterm: "期中",
	PhaseFinal:   "期末",
}

// Label 阶段中文标签，未知阶段原样返回
func (p Phase) Label() string {
	if label, ok := PhaseLabels[p]; ok {
		return label
	}
	return string(p)
}

// Valid 阶段取值校验
func (p Phase) Valid() bool {
	switch p {
	case PhaseOpening, PhaseMidterm, PhaseFinal:
		return true
	}
	return false
}

// Save 游戏存档实体
// Version 字段用于乐观锁，每次进度写入递增
type Save struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"user_id"`
	Name             string          `json:"name"`
	Semester         int             `json:"semester"`
	Week             int             `json:"week"`
	Phase            Phase           `json:"phase"`
	Attributes       AttributeVector `json:"attributes"`
	CompletedScripts []int64         `json:"completed_scripts"`
	RemainingEvents  int             `json:"remaining_events"`
	SettlementDue    bool            `json:"settlement_due"`
	UnlockedBadges   []int64         `json:"unlocked_badges"`
	Version          int64           `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DefaultSaveName 建档时的默认存档名
const DefaultSaveName = "新存档"

// NewSave 创建新存档
func NewSave(userID int64, name string, attrs AttributeVector, eventsPerPhase int) *Save {
	if name == "" {
		name = DefaultSaveName
	}
	now := time.Now()
	return &Save{
		UserID:           userID,
		Name:             name,
		Semester:         1,
		Week:             1,
		Phase:            PhaseOpening,
		Attributes:       attrs,
		CompletedScripts: []int64{},
		RemainingEvents:  eventsPerPhase,
		SettlementDue:    false,
		UnlockedBadges:   []int64{},
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// HasCompleted 存档是否已完成指定剧本
func (s *Save) HasCompleted(scriptID int64) bool {
	for _, id := range s.CompletedScripts {
		if id == scriptID {
			return true
		}
	}
	return false
}

// MarkCompleted 记录剧本完成，重复记录被忽略
func (s *Save) MarkCompleted(scriptID int64) {
	if s.HasCompleted(scriptID) {
		return
	}
	s.CompletedScripts = append(s.CompletedScripts, scriptID)
}

// HasBadge 存档是否已解锁指定勋章
func (s *Save) HasBadge(badgeID int64) bool {
	for _, id := range s.UnlockedBadges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// ConsumeEvent 消耗一次事件额度，归零后标记待结算
func (s *Save) ConsumeEvent() {
	if s.RemainingEvents > 0 {
		s.RemainingEvents--
	}
	if s.RemainingEvents == 0 {
		s.SettlementDue = true
	}
}
