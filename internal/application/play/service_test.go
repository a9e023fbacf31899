package play

import (
	"context"
	"testing"

	"campus-life-api/internal/config"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
)

type fakeSaveRepo struct {
	saves    map[int64]*entity.Save
	conflict bool
}

func (f *fakeSaveRepo) Create(ctx context.Context, s *entity.Save) error { return nil }

func (f *fakeSaveRepo) GetByID(ctx context.Context, id int64) (*entity.Save, error) {
	s, ok := f.saves[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSaveRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Save, error) {
	return nil, nil
}

func (f *fakeSaveRepo) UpdateProgress(ctx context.Context, s *entity.Save) error {
	if f.conflict {
		return errors.ErrSaveConflict
	}
	s.Version++
	cp := *s
	f.saves[s.ID] = &cp
	return nil
}

func (f *fakeSaveRepo) Rename(ctx context.Context, id int64, name string) error { return nil }
func (f *fakeSaveRepo) Delete(ctx context.Context, id int64) error              { return nil }
func (f *fakeSaveRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return 0, nil
}

type fakeCatalog struct {
	scripts []*entity.Script
}

func (f *fakeCatalog) ListByLocation(ctx context.Context, loc entity.ScriptLocation) ([]*entity.Script, error) {
	var out []*entity.Script
	for _, s := range f.scripts {
		if s.Location == loc {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeScanner struct {
	badges []*entity.Badge
}

func (f *fakeScanner) Scan(ctx context.Context, save *entity.Save) ([]*entity.Badge, error) {
	for _, b := range f.badges {
		save.UnlockedBadges = append(save.UnlockedBadges, b.ID)
	}
	return f.badges, nil
}

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

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

func newTestService(saves *fakeSaveRepo, scripts map[int64]*entity.Script) *Service {
	list := make([]*entity.Script, 0, len(scripts))
	for _, s := range scripts {
		list = append(list, s)
	}
	return NewService(
		saves,
		&scriptRepoAdapter{scripts: scripts},
		&fakeCatalog{scripts: list},
		&fakeScanner{},
		fakeTx{},
		gameConfig(),
	)
}

// scriptRepoAdapter 以内存 map 实现 repository.ScriptRepository
type scriptRepoAdapter struct {
	scripts map[int64]*entity.Script
}

func (a *scriptRepoAdapter) Create(ctx context.Context, s *entity.Script) error { return nil }
func (a *scriptRepoAdapter) GetByID(ctx context.Context, id int64) (*entity.Script, error) {
	return a.scripts[id], nil
}
func (a *scriptRepoAdapter) List(ctx context.Context, filter repository.ScriptFilter) ([]*entity.Script, error) {
	return nil, nil
}
func (a *scriptRepoAdapter) ListPaged(ctx context.Context, filter repository.ScriptFilter, page repository.Pagination) (*repository.PagedResult[*entity.Script], error) {
	return nil, nil
}
func (a *scriptRepoAdapter) Update(ctx context.Context, s *entity.Script) error { return nil }
func (a *scriptRepoAdapter) Delete(ctx context.Context, id int64) error         { return nil }

func baseSave() *entity.Save {
	return &entity.Save{
		ID:               1,
		UserID:           10,
		Semester:         1,
		Week:             1,
		Phase:            entity.PhaseOpening,
		Attributes:       entity.AttributeVector{De: 50, Zhi: 50, Ti: 50, Mei: 50, Lao: 50},
		CompletedScripts: []int64{},
		RemainingEvents:  2,
		Version:          1,
	}
}

func baseScript() *entity.Script {
	return &entity.Script{
		ID:       100,
		Title:    "晨跑",
		Location: entity.LocationGym,
		Enabled:  true,
		Options: []entity.ScriptOption{
			{
				ID:   1,
				Text: "坚持跑完",
				AttributeChanges: entity.AttributeDelta{
					Ti:  intPtr(5),
					Zhi: intPtr(-2),
				},
				NextScriptID: int64Ptr(101),
			},
			{ID: 2, Text: "中途放弃"},
		},
	}
}

func TestExecuteAppliesDeltaAndProgress(t *testing.T) {
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: baseSave()}}
	scripts := map[int64]*entity.Script{100: baseScript()}
	svc := newTestService(saves, scripts)

	result, err := svc.Execute(context.Background(), 10, 1, 100, 1)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if result.Save.Attributes.Ti != 55 || result.Save.Attributes.Zhi != 48 {
		t.Fatalf("unexpected attributes: %+v", result.Save.Attributes)
	}
	if !result.Save.HasCompleted(100) {
		t.Fatal("script should be marked completed")
	}
	if result.Save.RemainingEvents != 1 {
		t.Fatalf("remaining events = %d, want 1", result.Save.RemainingEvents)
	}
	if result.Save.SettlementDue {
		t.Fatal("settlement should not be due yet")
	}
	if result.NextScriptID == nil || *result.NextScriptID != 101 {
		t.Fatalf("unexpected next script id: %v", result.NextScriptID)
	}
}

func TestExecuteClampsAttributes(t *testing.T) {
	save := baseSave()
	save.Attributes.Ti = 98
	save.Attributes.Zhi = 1
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: save}}
	scripts := map[int64]*entity.Script{100: baseScript()}
	svc := newTestService(saves, scripts)

	result, err := svc.Execute(context.Background(), 10, 1, 100, 1)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if result.Save.Attributes.Ti != 100 {
		t.Fatalf("ti should clamp to 100, got %d", result.Save.Attributes.Ti)
	}
	if result.Save.Attributes.Zhi != 0 {
		t.Fatalf("zhi should clamp to 0, got %d", result.Save.Attributes.Zhi)
	}
}

func TestExecuteSettlementDueOnLastEvent(t *testing.T) {
	save := baseSave()
	save.RemainingEvents = 1
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: save}}
	scripts := map[int64]*entity.Script{100: baseScript()}
	svc := newTestService(saves, scripts)

	result, err := svc.Execute(context.Background(), 10, 1, 100, 1)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if result.Save.RemainingEvents != 0 {
		t.Fatalf("remaining events = %d, want 0", result.Save.RemainingEvents)
	}
	if !result.Save.SettlementDue {
		t.Fatal("settlement should be due")
	}
}

func TestExecuteRejectsCompletedScript(t *testing.T) {
	save := baseSave()
	save.CompletedScripts = []int64{100}
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: save}}
	scripts := map[int64]*entity.Script{100: baseScript()}
	svc := newTestService(saves, scripts)

	_, err := svc.Execute(context.Background(), 10, 1, 100, 1)
	if errors.AsAppError(err).Code != errors.CodeScriptCompleted {
		t.Fatalf("want CodeScriptCompleted, got %v", err)
	}
}

func TestExecuteRejectsLockedScript(t *testing.T) {
	script := baseScript()
	script.TriggerCondition = &entity.TriggerCondition{Semesters: []int{3}}
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: baseSave()}}
	scripts := map[int64]*entity.Script{100: script}
	svc := newTestService(saves, scripts)

	_, err := svc.Execute(context.Background(), 10, 1, 100, 1)
	appErr := errors.AsAppError(err)
	if appErr.Code != errors.CodeScriptLocked {
		t.Fatalf("want CodeScriptLocked, got %v", err)
	}
	if appErr.Detail != "需要在第3学期" {
		t.Fatalf("unexpected lock reason: %q", appErr.Detail)
	}
}

func TestExecuteRejectsUnknownOption(t *testing.T) {
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: baseSave()}}
	scripts := map[int64]*entity.Script{100: baseScript()}
	svc := newTestService(saves, scripts)

	_, err := svc.Execute(context.Background(), 10, 1, 100, 99)
	if errors.AsAppError(err).Code != errors.CodeInvalidOption {
		t.Fatalf("want CodeInvalidOption, got %v", err)
	}
}

func TestExecutePropagatesSaveConflict(t *testing.T) {
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: baseSave()}, conflict: true}
	scripts := map[int64]*entity.Script{100: baseScript()}
	svc := newTestService(saves, scripts)

	_, err := svc.Execute(context.Background(), 10, 1, 100, 1)
	if errors.AsAppError(err).Code != errors.CodeSaveConflict {
		t.Fatalf("want CodeSaveConflict, got %v", err)
	}
}

func TestExecuteRejectsForeignSave(t *testing.T) {
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: baseSave()}}
	scripts := map[int64]*entity.Script{100: baseScript()}
	svc := newTestService(saves, scripts)

	_, err := svc.Execute(context.Background(), 999, 1, 100, 1)
	if errors.AsAppError(err).Code != errors.CodeForbidden {
		t.Fatalf("want CodeForbidden, got %v", err)
	}
}

func TestExecuteScriptNotFound(t *testing.T) {
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: baseSave()}}
	svc := newTestService(saves, map[int64]*entity.Script{})

	_, err := svc.Execute(context.Background(), 10, 1, 100, 1)
	if errors.AsAppError(err).Code != errors.CodeScriptNotFound {
		t.Fatalf("want CodeScriptNotFound, got %v", err)
	}
}

func TestListScriptsStatuses(t *testing.T) {
	completed := baseScript()

	locked := baseScript()
	locked.ID = 101
	locked.TriggerCondition = &entity.TriggerCondition{MinAttributes: map[string]int{"ti": 90}}

	available := baseScript()
	available.ID = 102

	save := baseSave()
	save.CompletedScripts = []int64{100}
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: save}}
	scripts := map[int64]*entity.Script{100: completed, 101: locked, 102: available}
	svc := newTestService(saves, scripts)

	views, err := svc.ListScripts(context.Background(), 10, 1, entity.LocationGym, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("want 3 views, got %d", len(views))
	}

	byID := make(map[int64]ScriptView)
	for _, v := range views {
		byID[v.Script.ID] = v
	}
	if byID[100].Status != StatusCompleted {
		t.Fatalf("script 100 status = %s", byID[100].Status)
	}
	if byID[101].Status != StatusLocked || byID[101].LockReason != "体育需达到90" {
		t.Fatalf("script 101 view = %+v", byID[101])
	}
	if byID[102].Status != StatusAvailable {
		t.Fatalf("script 102 status = %s", byID[102].Status)
	}

	// 默认仅返回可用剧本
	views, err = svc.ListScripts(context.Background(), 10, 1, entity.LocationGym, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 || views[0].Script.ID != 102 {
		t.Fatalf("want only script 102, got %+v", views)
	}
}

func TestListScriptsAllLocations(t *testing.T) {
	gym := baseScript()

	library := baseScript()
	library.ID = 101
	library.Location = entity.LocationLibrary

	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: baseSave()}}
	scripts := map[int64]*entity.Script{100: gym, 101: library}
	svc := newTestService(saves, scripts)

	// 地点为 all 时跨地点聚合
	views, err := svc.ListScripts(context.Background(), 10, 1, entity.LocationAll, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("want 2 views across locations, got %d", len(views))
	}

	// 地点缺省等价于 all
	views, err = svc.ListScripts(context.Background(), 10, 1, "", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("want 2 views for empty location, got %d", len(views))
	}
}

func TestListScriptsRejectsUnknownLocation(t *testing.T) {
	saves := &fakeSaveRepo{saves: map[int64]*entity.Save{1: baseSave()}}
	svc := newTestService(saves, map[int64]*entity.Script{})

	_, err := svc.ListScripts(context.Background(), 10, 1, "moon", true)
	if errors.AsAppError(err).Code != errors.CodeInvalidParam {
		t.Fatalf("want CodeInvalidParam, got %v", err)
	}
}
