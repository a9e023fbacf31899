// Package unlock 提供剧本解锁门与勋章条件的判定逻辑
package unlock

import (
	"fmt"
	"strings"

	"campus-life-api/internal/domain/entity"
)

// GateResult 解锁门判定结果
// Unlocked 为假时 Reason 给出首个未满足子句的提示文案
type GateResult struct {
	Unlocked bool   `json:"unlocked"`
	Reason   string `json:"reason,omitempty"`
}

// EvaluateScriptGate 判定存档是否满足剧本的解锁条件。
// 子句按 学期 -> 周次 -> 前置剧本 -> 属性门槛 的顺序判定，
// 首个未满足的子句短路返回，空条件直接通过。
func EvaluateScriptGate(save *entity.Save, cond *entity.TriggerCondition) GateResult {
	if cond.IsEmpty() {
		return GateResult{Unlocked: true}
	}

	if len(cond.Semesters) > 0 && !containsInt(cond.Semesters, save.Semester) {
		return GateResult{Reason: fmt.Sprintf("需要在第%s学期", joinInts(cond.Semesters, "/"))}
	}

	if len(cond.Weeks) > 0 && !containsInt(cond.Weeks, save.Week) {
		return GateResult{Reason: fmt.Sprintf("需要在第%s周", joinInts(cond.Weeks, "/"))}
	}

	if len(cond.RequiredScripts) > 0 {
		for _, id := range cond.RequiredScripts {
			if !save.HasCompleted(id) {
				return GateResult{Reason: "需要完成前置事件"}
			}
		}
	}

	if len(cond.MinAttributes) > 0 {
		// 固定顺序遍历，保证提示文案稳定
		for _, key := range entity.AttributeKeys {
			min, ok := cond.MinAttributes[key]
			if !ok {
				continue
			}
			if save.Attributes.Get(key) < min {
				name := entity.AttributeNames[key]
				if name == "" {
					name = key
				}
				return GateResult{Reason: fmt.Sprintf("%s需达到%d", name, min)}
			}
		}
	}

	return GateResult{Unlocked: true}
}

// EvaluateBadgeCondition 判定存档是否满足勋章解锁条件。
// 未识别的条件类型判定为不满足。
func EvaluateBadgeCondition(save *entity.Save, cond *entity.BadgeUnlockCondition) bool {
	if cond == nil {
		return false
	}

	switch cond.Type {
	case entity.BadgeConditionAttribute:
		// 属性键未识别或阈值缺失的条件视为坏数据，判定为不满足
		if _, ok := entity.AttributeNames[cond.Attribute]; !ok {
			return false
		}
		if cond.MinValue <= 0 {
			return false
		}
		return save.Attributes.Get(cond.Attribute) >= cond.MinValue

	case entity.BadgeConditionScripts:
		if cond.CompletedCount > 0 {
			return len(save.CompletedScripts) >= cond.CompletedCount
		}
		if len(cond.Scripts) > 0 {
			for _, id := range cond.Scripts {
				if !save.HasCompleted(id) {
					return false
				}
			}
			return true
		}
		return false

	case entity.BadgeConditionPhase:
		return save.Semester >= cond.Semester
	}

	return false
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func joinInts(xs []int, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, sep)
}
