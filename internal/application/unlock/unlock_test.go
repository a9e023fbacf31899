package unlock

import (
	"testing"

	"campus-life-api/internal/domain/entity"
)

func testSave() *entity.Save {
	return &entity.Save{
		Semester:         2,
		Week:             5,
		Attributes:       entity.AttributeVector{De: 50, Zhi: 60, Ti: 40, Mei: 30, Lao: 20},
		CompletedScripts: []int64{1, 2},
	}
}

func TestEvaluateScriptGateEmptyCondition(t *testing.T) {
	if got := EvaluateScriptGate(testSave(), nil); !got.Unlocked {
		t.Fatalf("nil condition should unlock, got reason %q", got.Reason)
	}
	if got := EvaluateScriptGate(testSave(), &entity.TriggerCondition{}); !got.Unlocked {
		t.Fatalf("empty condition should unlock, got reason %q", got.Reason)
	}
}

func TestEvaluateScriptGateSemester(t *testing.T) {
	cond := &entity.TriggerCondition{Semesters: []int{3, 4}}
	got := EvaluateScriptGate(testSave(), cond)
	if got.Unlocked {
		t.Fatal("semester 2 should not pass semesters [3 4]")
	}
	if got.Reason != "需要在第3/4学期" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}
}

func TestEvaluateScriptGateWeek(t *testing.T) {
	cond := &entity.TriggerCondition{Weeks: []int{8}}
	got := EvaluateScriptGate(testSave(), cond)
	if got.Unlocked {
		t.Fatal("week 5 should not pass weeks [8]")
	}
	if got.Reason != "需要在第8周" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}
}

func TestEvaluateScriptGateRequiredScripts(t *testing.T) {
	cond := &entity.TriggerCondition{RequiredScripts: []int64{1, 9}}
	got := EvaluateScriptGate(testSave(), cond)
	if got.Unlocked {
		t.Fatal("missing script 9 should block unlock")
	}
	if got.Reason != "需要完成前置事件" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}

	cond = &entity.TriggerCondition{RequiredScripts: []int64{1, 2}}
	if got := EvaluateScriptGate(testSave(), cond); !got.Unlocked {
		t.Fatalf("all prerequisites completed, got reason %q", got.Reason)
	}
}

func TestEvaluateScriptGateMinAttributes(t *testing.T) {
	cond := &entity.TriggerCondition{MinAttributes: map[string]int{"zhi": 70}}
	got := EvaluateScriptGate(testSave(), cond)
	if got.Unlocked {
		t.Fatal("zhi 60 should not pass min 70")
	}
	if got.Reason != "智育需达到70" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}
}

func TestEvaluateScriptGateClauseOrder(t *testing.T) {
	// 学期子句先于属性子句短路
	cond := &entity.TriggerCondition{
		Semesters:     []int{5},
		MinAttributes: map[string]int{"de": 99},
	}
	got := EvaluateScriptGate(testSave(), cond)
	if got.Reason != "需要在第5学期" {
		t.Fatalf("semester clause should fail first, got %q", got.Reason)
	}
}

func TestEvaluateScriptGateAttributeKeyOrder(t *testing.T) {
	// 多个属性不满足时按 de zhi ti mei lao 的顺序报告
	cond := &entity.TriggerCondition{
		MinAttributes: map[string]int{"lao": 90, "ti": 90},
	}
	got := EvaluateScriptGate(testSave(), cond)
	if got.Reason != "体育需达到90" {
		t.Fatalf("ti should be reported before lao, got %q", got.Reason)
	}
}

func TestEvaluateScriptGateAllPass(t *testing.T) {
	cond := &entity.TriggerCondition{
		Semesters:       []int{2},
		Weeks:           []int{5},
		RequiredScripts: []int64{1},
		MinAttributes:   map[string]int{"de": 50, "zhi": 60},
	}
	if got := EvaluateScriptGate(testSave(), cond); !got.Unlocked {
		t.Fatalf("all clauses satisfied, got reason %q", got.Reason)
	}
}

func TestEvaluateBadgeConditionAttribute(t *testing.T) {
	save := testSave()
	cond := &entity.BadgeUnlockCondition{
		Type:      entity.BadgeConditionAttribute,
		Attribute: "zhi",
		MinValue:  60,
	}
	if !EvaluateBadgeCondition(save, cond) {
		t.Fatal("zhi 60 should satisfy min 60")
	}
	cond.MinValue = 61
	if EvaluateBadgeCondition(save, cond) {
		t.Fatal("zhi 60 should not satisfy min 61")
	}
}

func TestEvaluateBadgeConditionAttributeBadData(t *testing.T) {
	save := testSave()

	// 缺失属性键与阈值的条件不满足
	if EvaluateBadgeCondition(save, &entity.BadgeUnlockCondition{Type: entity.BadgeConditionAttribute}) {
		t.Fatal("attribute condition without attribute/min_value should not unlock")
	}

	// 未识别的属性键不满足，即便阈值为 0 也不放行
	cond := &entity.BadgeUnlockCondition{
		Type:      entity.BadgeConditionAttribute,
		Attribute: "chi",
		MinValue:  0,
	}
	if EvaluateBadgeCondition(save, cond) {
		t.Fatal("unknown attribute key should not unlock")
	}

	// 键合法但阈值缺失同样不满足
	cond.Attribute = "zhi"
	if EvaluateBadgeCondition(save, cond) {
		t.Fatal("missing min_value should not unlock")
	}
}

func TestEvaluateBadgeConditionScripts(t *testing.T) {
	save := testSave()

	// completed_count 优先于 scripts 列表
	cond := &entity.BadgeUnlockCondition{
		Type:           entity.BadgeConditionScripts,
		CompletedCount: 2,
		Scripts:        []int64{99},
	}
	if !EvaluateBadgeCondition(save, cond) {
		t.Fatal("completed count 2 should satisfy threshold 2")
	}

	cond = &entity.BadgeUnlockCondition{
		Type:    entity.BadgeConditionScripts,
		Scripts: []int64{1, 2},
	}
	if !EvaluateBadgeCondition(save, cond) {
		t.Fatal("all listed scripts completed")
	}

	cond.Scripts = []int64{1, 3}
	if EvaluateBadgeCondition(save, cond) {
		t.Fatal("script 3 not completed")
	}

	// 两个字段都为空时判定为不满足
	cond = &entity.BadgeUnlockCondition{Type: entity.BadgeConditionScripts}
	if EvaluateBadgeCondition(save, cond) {
		t.Fatal("empty scripts condition should fail closed")
	}
}

func TestEvaluateBadgeConditionPhase(t *testing.T) {
	save := testSave()
	cond := &entity.BadgeUnlockCondition{
		Type:     entity.BadgeConditionPhase,
		Semester: 2,
	}
	if !EvaluateBadgeCondition(save, cond) {
		t.Fatal("semester 2 should satisfy threshold 2")
	}
	cond.Semester = 3
	if EvaluateBadgeCondition(save, cond) {
		t.Fatal("semester 2 should not satisfy threshold 3")
	}
}

func TestEvaluateBadgeConditionUnknownType(t *testing.T) {
	if EvaluateBadgeCondition(testSave(), nil) {
		t.Fatal("nil condition should fail closed")
	}
	cond := &entity.BadgeUnlockCondition{Type: "mystery"}
	if EvaluateBadgeCondition(testSave(), cond) {
		t.Fatal("unknown condition type should fail closed")
	}
}
