// Package settlement 提供阶段结算能力
package settlement

import (
	"campus-life-api/internal/config"
	"campus-life-api/internal/domain/entity"
)

// Transition 阶段推进结果
type Transition struct {
	Semester int          `json:"semester"`
	Week     int          `json:"week"`
	Phase    entity.Phase `json:"phase"`
}

// Next 计算从当前阶段推进后的学期、周次与阶段。
// 期初 -> 期中 -> 期末 -> 下学期期初，学期到达上限后不再增长。
func Next(semester, week int, phase entity.Phase, game config.GameConfig) Transition {
	switch phase {
	case entity.PhaseOpening:
		return Transition{Semester: semester, Week: game.MidtermStartWeek, Phase: entity.PhaseMidterm}
	case entity.PhaseMidterm:
		return Transition{Semester: semester, Week: game.FinalStartWeek, Phase: entity.PhaseFinal}
	case entity.PhaseFinal:
		next := semester + 1
		if next > game.MaxSemester {
			next = game.MaxSemester
		}
		return Transition{Semester: next, Week: 1, Phase: entity.PhaseOpening}
	}
	// 未知阶段保持原位
	return Transition{Semester: semester, Week: week, Phase: phase}
}

// GenerateEvaluation 根据属性生成阶段评语。
// 智育始终产生一条，其余维度达标时各补充一条，全部未触发时给出兜底评语。
func GenerateEvaluation(attrs entity.AttributeVector) []string {
	var lines []string

	switch {
	case attrs.Zhi >= 80:
		lines = append(lines, "学业表现优秀，继续保持！")
	case attrs.Zhi >= 60:
		lines = append(lines, "学业进展良好，还有提升空间。")
	default:
		lines = append(lines, "学业需要加强，建议多花时间学习。")
	}

	if attrs.Ti >= 70 {
		lines = append(lines, "身体素质出色，运动达人！")
	} else if attrs.Ti < 40 {
		lines = append(lines, "需要加强锻炼，健康是本钱。")
	}

	if attrs.De >= 70 {
		lines = append(lines, "品德修养良好，乐于助人。")
	}
	if attrs.Mei >= 70 {
		lines = append(lines, "艺术素养不错，审美能力出众。")
	}
	if attrs.Lao >= 70 {
		lines = append(lines, "劳动积极，实践能力强。")
	}

	if len(lines) == 0 {
		lines = append(lines, "各方面发展均衡，继续努力！")
	}
	return lines
}
