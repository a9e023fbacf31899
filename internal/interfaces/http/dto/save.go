package dto

import (
	"campus-life-api/internal/domain/entity"
)

// CreateSaveRequest 建档请求
type CreateSaveRequest struct {
	Name       string                  `json:"name"`
	Attributes *entity.AttributeVector `json:"attributes,omitempty"`
	Semester   int                     `json:"semester,omitempty"`
	Week       int                     `json:"week,omitempty"`
}

// RenameSaveRequest 存档重命名请求
type RenameSaveRequest struct {
	Name string `json:"name" binding:"required"`
}

// SaveView 存档视图
type SaveView struct {
	ID               int64                  `json:"id"`
	Name             string                 `json:"name"`
	Semester         int                    `json:"semester"`
	Week             int                    `json:"week"`
	Phase            string                 `json:"phase"`
	PhaseLabel       string                 `json:"phase_label"`
	Attributes       entity.AttributeVector `json:"attributes"`
	CompletedScripts []int64                `json:"completed_scripts"`
	RemainingEvents  int                    `json:"remaining_events"`
	SettlementDue    bool                   `json:"settlement_due"`
	UnlockedBadges   []int64                `json:"unlocked_badges"`
	Version          int64                  `json:"version"`
}

// NewSaveView 构造存档视图
func NewSaveView(s *entity.Save) SaveView {
	return SaveView{
		ID:               s.ID,
		Name:             s.Name,
		Semester:         s.Semester,
		Week:             s.Week,
		Phase:            string(s.Phase),
		PhaseLabel:       s.Phase.Label(),
		Attributes:       s.Attributes,
		CompletedScripts: s.CompletedScripts,
		RemainingEvents:  s.RemainingEvents,
		SettlementDue:    s.SettlementDue,
		UnlockedBadges:   s.UnlockedBadges,
		Version:          s.Version,
	}
}

// NewSaveViews 构造存档视图列表
func NewSaveViews(saves []*entity.Save) []SaveView {
	views := make([]SaveView, 0, len(saves))
	for _, s := range saves {
		views = append(views, NewSaveView(s))
	}
	return views
}
