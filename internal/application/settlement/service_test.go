package settlement

import (
	"context"
	"testing"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/pkg/errors"
)

type fakeSaveRepo struct {
	saves map[int64]*entity.Save
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

type fakeScanner struct{}

func (fakeScanner) Scan(ctx context.Context, save *entity.Save) ([]*entity.Badge, error) {
	return nil, nil
}

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func dueSave() *entity.Save {
	return &entity.Save{
		ID:              1,
		UserID:          10,
		Semester:        2,
		Week:            3,
		Phase:           entity.PhaseOpening,
		Attributes:      entity.AttributeVector{De: 50, Zhi: 85, Ti: 50, Mei: 50, Lao: 50},
		RemainingEvents: 0,
		SettlementDue:   true,
		Version:         3,
	}
}

func newTestService(repo *fakeSaveRepo) *Service {
	return NewService(repo, fakeScanner{}, fakeTx{}, gameConfig())
}

func TestPreviewDoesNotMutate(t *testing.T) {
	repo := &fakeSaveRepo{saves: map[int64]*entity.Save{1: dueSave()}}
	svc := newTestService(repo)

	report, err := svc.Preview(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if report.PhaseLabel != "期初" {
		t.Fatalf("phase label = %s", report.PhaseLabel)
	}
	if report.Next.Phase != entity.PhaseMidterm || report.Next.Week != 8 {
		t.Fatalf("unexpected transition: %+v", report.Next)
	}
	if len(report.Evaluation) == 0 {
		t.Fatal("evaluation should not be empty")
	}

	stored := repo.saves[1]
	if stored.Phase != entity.PhaseOpening || !stored.SettlementDue {
		t.Fatal("preview must not mutate the save")
	}
}

func TestConfirmAdvancesPhase(t *testing.T) {
	repo := &fakeSaveRepo{saves: map[int64]*entity.Save{1: dueSave()}}
	svc := newTestService(repo)

	result, err := svc.Confirm(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if result.Save.Phase != entity.PhaseMidterm {
		t.Fatalf("phase = %s, want midterm", result.Save.Phase)
	}
	if result.Save.Week != 8 {
		t.Fatalf("week = %d, want 8", result.Save.Week)
	}
	if result.Save.RemainingEvents != 10 {
		t.Fatalf("remaining events = %d, want 10", result.Save.RemainingEvents)
	}
	if result.Save.SettlementDue {
		t.Fatal("settlement flag should be cleared")
	}
	if result.Report.Phase != entity.PhaseOpening {
		t.Fatalf("report phase = %s, want the confirmed phase", result.Report.Phase)
	}
}

func TestConfirmFinalAdvancesSemester(t *testing.T) {
	save := dueSave()
	save.Phase = entity.PhaseFinal
	save.Week = 18
	repo := &fakeSaveRepo{saves: map[int64]*entity.Save{1: save}}
	svc := newTestService(repo)

	result, err := svc.Confirm(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if result.Save.Semester != 3 || result.Save.Week != 1 || result.Save.Phase != entity.PhaseOpening {
		t.Fatalf("unexpected progress: semester=%d week=%d phase=%s",
			result.Save.Semester, result.Save.Week, result.Save.Phase)
	}
}

func TestConfirmRequiresSettlementDue(t *testing.T) {
	save := dueSave()
	save.SettlementDue = false
	repo := &fakeSaveRepo{saves: map[int64]*entity.Save{1: save}}
	svc := newTestService(repo)

	_, err := svc.Confirm(context.Background(), 10, 1)
	if errors.AsAppError(err).Code != errors.CodeConflict {
		t.Fatalf("want CodeConflict, got %v", err)
	}
}

func TestConfirmRejectsForeignSave(t *testing.T) {
	repo := &fakeSaveRepo{saves: map[int64]*entity.Save{1: dueSave()}}
	svc := newTestService(repo)

	_, err := svc.Confirm(context.Background(), 999, 1)
	if errors.AsAppError(err).Code != errors.CodeForbidden {
		t.Fatalf("want CodeForbidden, got %v", err)
	}
}
