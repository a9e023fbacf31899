package settlement

import (
	"reflect"
	"testing"

	"campus-life-api/internal/config"
	"campus-life-api/internal/domain/entity"
)

func gameConfig() config.GameConfig {
	return config.GameConfig{
		InitialAttributeTotal: 250,
		EventsPerPhase:        10,
		MaxSemester:           8,
		MaxWeek:               20,
		MidtermStartWeek:      8,
		FinalStartWeek:        15,
	}
}

func TestNextTransitions(t *testing.T) {
	game := gameConfig()

	cases := []struct {
		name     string
		semester int
		week     int
		phase    entity.Phase
		want     Transition
	}{
		{
			name: "opening to midterm", semester: 2, week: 3, phase: entity.PhaseOpening,
			want: Transition{Semester: 2, Week: 8, Phase: entity.PhaseMidterm},
		},
		{
			name: "midterm to final", semester: 2, week: 10, phase: entity.PhaseMidterm,
			want: Transition{Semester: 2, Week: 15, Phase: entity.PhaseFinal},
		},
		{
			name: "final to next opening", semester: 2, week: 18, phase: entity.PhaseFinal,
			want: Transition{Semester: 3, Week: 1, Phase: entity.PhaseOpening},
		},
		{
			name: "final at last semester stays capped", semester: 8, week: 18, phase: entity.PhaseFinal,
			want: Transition{Semester: 8, Week: 1, Phase: entity.PhaseOpening},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Next(tc.semester, tc.week, tc.phase, game)
			if got != tc.want {
				t.Fatalf("Next() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestGenerateEvaluation(t *testing.T) {
	cases := []struct {
		name  string
		attrs entity.AttributeVector
		want  []string
	}{
		{
			name:  "excellent scholar",
			attrs: entity.AttributeVector{De: 50, Zhi: 85, Ti: 50, Mei: 50, Lao: 50},
			want:  []string{"学业表现优秀，继续保持！"},
		},
		{
			name:  "decent scholar",
			attrs: entity.AttributeVector{De: 50, Zhi: 65, Ti: 50, Mei: 50, Lao: 50},
			want:  []string{"学业进展良好，还有提升空间。"},
		},
		{
			name:  "struggling scholar and couch potato",
			attrs: entity.AttributeVector{De: 50, Zhi: 30, Ti: 30, Mei: 50, Lao: 50},
			want:  []string{"学业需要加强，建议多花时间学习。", "需要加强锻炼，健康是本钱。"},
		},
		{
			name:  "all rounder",
			attrs: entity.AttributeVector{De: 75, Zhi: 85, Ti: 75, Mei: 75, Lao: 75},
			want: []string{
				"学业表现优秀，继续保持！",
				"身体素质出色，运动达人！",
				"品德修养良好，乐于助人。",
				"艺术素养不错，审美能力出众。",
				"劳动积极，实践能力强。",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GenerateEvaluation(tc.attrs)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("GenerateEvaluation() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPhaseLabels(t *testing.T) {
	if entity.PhaseOpening.Label() != "期初" {
		t.Fatalf("opening label = %s", entity.PhaseOpening.Label())
	}
	if entity.PhaseMidterm.Label() != "期中" {
		t.Fatalf("midterm label = %s", entity.PhaseMidterm.Label())
	}
	if entity.PhaseFinal.Label() != "期末" {
		t.Fatalf("final label = %s", entity.PhaseFinal.Label())
	}
}
