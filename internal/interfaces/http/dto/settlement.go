package dto

import (
	"campus-life-api/internal/application/settlement"
	"campus-life-api/internal/domain/entity"
)

// SettlementReport 结算报告视图
type SettlementReport struct {
	Phase      string                 `json:"phase"`
	PhaseLabel string                 `json:"phase_label"`
	Evaluation []string               `json:"evaluation"`
	Attributes entity.AttributeVector `json:"attributes"`
	Next       settlement.Transition  `json:"next"`
}

// NewSettlementReport 构造结算报告视图
func NewSettlementReport(r *settlement.Report) SettlementReport {
	return SettlementReport{
		Phase:      string(r.Phase),
		PhaseLabel: r.PhaseLabel,
		Evaluation: r.Evaluation,
		Attributes: r.Attributes,
		Next:       r.Next,
	}
}

// SettlementConfirmResponse 结算确认结果
type SettlementConfirmResponse struct {
	Report         SettlementReport `json:"report"`
	Save           SaveView         `json:"save"`
	UnlockedBadges []BadgeItem      `json:"unlocked_badges,omitempty"`
}
