package save

import (
	"context"
	"testing"

	"campus-life-api/internal/config"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/pkg/errors"
)

type fakeSaveRepo struct {
	saves  map[int64]*entity.Save
	nextID int64
}

func newFakeSaveRepo() *fakeSaveRepo {
	return &fakeSaveRepo{saves: make(map[int64]*entity.Save)}
}

func (f *fakeSaveRepo) Create(ctx context.Context, s *entity.Save) error {
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.saves[s.ID] = &cp
	return nil
}

func (f *fakeSaveRepo) GetByID(ctx context.Context, id int64) (*entity.Save, error) {
	s, ok := f.saves[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSaveRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Save, error) {
	var out []*entity.Save
	for _, s := range f.saves {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSaveRepo) UpdateProgress(ctx context.Context, s *entity.Save) error { return nil }

func (f *fakeSaveRepo) Rename(ctx context.Context, id int64, name string) error {
	if s, ok := f.saves[id]; ok {
		s.Name = name
	}
	return nil
}

func (f *fakeSaveRepo) Delete(ctx context.Context, id int64) error {
	delete(f.saves, id)
	return nil
}

func (f *fakeSaveRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	for _, s := range f.saves {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

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

func TestCreateWithDefaults(t *testing.T) {
	svc := NewService(newFakeSaveRepo(), gameConfig())

	sv, err := svc.Create(context.Background(), 10, CreateParams{})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sv.Name != "新存档" {
		t.Fatalf("name = %q", sv.Name)
	}
	want := entity.AttributeVector{De: 50, Zhi: 50, Ti: 50, Mei: 50, Lao: 50}
	if sv.Attributes != want {
		t.Fatalf("attributes = %+v", sv.Attributes)
	}
	if sv.Semester != 1 || sv.Week != 1 || sv.Phase != entity.PhaseOpening {
		t.Fatalf("progress = semester %d week %d phase %s", sv.Semester, sv.Week, sv.Phase)
	}
	if sv.RemainingEvents != 10 {
		t.Fatalf("remaining events = %d", sv.RemainingEvents)
	}
	if sv.Version != 1 {
		t.Fatalf("version = %d", sv.Version)
	}
}

func TestCreateValidatesAttributeSum(t *testing.T) {
	svc := NewService(newFakeSaveRepo(), gameConfig())

	_, err := svc.Create(context.Background(), 10, CreateParams{
		Attributes: &entity.AttributeVector{De: 50, Zhi: 50, Ti: 50, Mei: 50, Lao: 49},
	})
	if errors.AsAppError(err).Code != errors.CodeValidationFailed {
		t.Fatalf("want CodeValidationFailed, got %v", err)
	}

	sv, err := svc.Create(context.Background(), 10, CreateParams{
		Attributes: &entity.AttributeVector{De: 70, Zhi: 80, Ti: 40, Mei: 30, Lao: 30},
	})
	if err != nil {
		t.Fatalf("valid attributes rejected: %v", err)
	}
	if sv.Attributes.Sum() != 250 {
		t.Fatalf("sum = %d", sv.Attributes.Sum())
	}
}

func TestCreateValidatesAttributeRange(t *testing.T) {
	svc := NewService(newFakeSaveRepo(), gameConfig())

	_, err := svc.Create(context.Background(), 10, CreateParams{
		Attributes: &entity.AttributeVector{De: 150, Zhi: 100, Ti: 0, Mei: 0, Lao: 0},
	})
	if errors.AsAppError(err).Code != errors.CodeValidationFailed {
		t.Fatalf("want CodeValidationFailed, got %v", err)
	}
}

func TestCreateValidatesSemesterAndWeek(t *testing.T) {
	svc := NewService(newFakeSaveRepo(), gameConfig())

	_, err := svc.Create(context.Background(), 10, CreateParams{Semester: 9})
	if errors.AsAppError(err).Code != errors.CodeValidationFailed {
		t.Fatalf("want CodeValidationFailed for semester 9, got %v", err)
	}

	_, err = svc.Create(context.Background(), 10, CreateParams{Week: 21})
	if errors.AsAppError(err).Code != errors.CodeValidationFailed {
		t.Fatalf("want CodeValidationFailed for week 21, got %v", err)
	}
}

func TestCreateDerivesPhaseFromWeek(t *testing.T) {
	svc := NewService(newFakeSaveRepo(), gameConfig())

	sv, err := svc.Create(context.Background(), 10, CreateParams{Week: 9})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sv.Phase != entity.PhaseMidterm {
		t.Fatalf("phase = %s, want midterm", sv.Phase)
	}

	sv, err = svc.Create(context.Background(), 10, CreateParams{Week: 16})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sv.Phase != entity.PhaseFinal {
		t.Fatalf("phase = %s, want final", sv.Phase)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	repo := newFakeSaveRepo()
	svc := NewService(repo, gameConfig())

	sv, err := svc.Create(context.Background(), 10, CreateParams{})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), 10, sv.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), 999, sv.ID); errors.AsAppError(err).Code != errors.CodeForbidden {
		t.Fatalf("want CodeForbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 10, 12345); errors.AsAppError(err).Code != errors.CodeSaveNotFound {
		t.Fatalf("want CodeSaveNotFound, got %v", err)
	}
}

func TestRenameAndDelete(t *testing.T) {
	repo := newFakeSaveRepo()
	svc := NewService(repo, gameConfig())

	sv, err := svc.Create(context.Background(), 10, CreateParams{})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	renamed, err := svc.Rename(context.Background(), 10, sv.ID, "大二计划")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Name != "大二计划" {
		t.Fatalf("name = %q", renamed.Name)
	}

	if _, err := svc.Rename(context.Background(), 10, sv.ID, ""); errors.AsAppError(err).Code != errors.CodeValidationFailed {
		t.Fatalf("empty name should be rejected, got %v", err)
	}

	if err := svc.Delete(context.Background(), 10, sv.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), 10, sv.ID); errors.AsAppError(err).Code != errors.CodeSaveNotFound {
		t.Fatalf("save should be gone, got %v", err)
	}
}
