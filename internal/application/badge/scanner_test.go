package badge

import (
	"context"
	"testing"

	"campus-life-api/internal/domain/entity"
)

type fakeBadgeRepo struct {
	badges []*entity.Badge
}

func (f *fakeBadgeRepo) Create(ctx context.Context, b *entity.Badge) error { return nil }
func (f *fakeBadgeRepo) GetByID(ctx context.Context, id int64) (*entity.Badge, error) {
	for _, b := range f.badges {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}
func (f *fakeBadgeRepo) List(ctx context.Context, enabledOnly bool) ([]*entity.Badge, error) {
	if !enabledOnly {
		return f.badges, nil
	}
	var out []*entity.Badge
	for _, b := range f.badges {
		if b.Enabled {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeBadgeRepo) Update(ctx context.Context, b *entity.Badge) error { return nil }
func (f *fakeBadgeRepo) Delete(ctx context.Context, id int64) error        { return nil }

type fakeSaveRepo struct {
	updates int
}

func (f *fakeSaveRepo) Create(ctx context.Context, s *entity.Save) error { return nil }
func (f *fakeSaveRepo) GetByID(ctx context.Context, id int64) (*entity.Save, error) {
	return nil, nil
}
func (f *fakeSaveRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Save, error) {
	return nil, nil
}
func (f *fakeSaveRepo) UpdateProgress(ctx context.Context, s *entity.Save) error {
	f.updates++
	return nil
}
func (f *fakeSaveRepo) Rename(ctx context.Context, id int64, name string) error { return nil }
func (f *fakeSaveRepo) Delete(ctx context.Context, id int64) error              { return nil }
func (f *fakeSaveRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return 0, nil
}

func testBadges() []*entity.Badge {
	return []*entity.Badge{
		{
			ID:      1,
			Name:    "学霸",
			Enabled: true,
			UnlockCondition: &entity.BadgeUnlockCondition{
				Type:      entity.BadgeConditionAttribute,
				Attribute: "zhi",
				MinValue:  80,
			},
		},
		{
			ID:      2,
			Name:    "初来乍到",
			Enabled: true,
			UnlockCondition: &entity.BadgeUnlockCondition{
				Type:           entity.BadgeConditionScripts,
				CompletedCount: 1,
			},
		},
		{
			ID:      3,
			Name:    "停用勋章",
			Enabled: false,
			UnlockCondition: &entity.BadgeUnlockCondition{
				Type:           entity.BadgeConditionScripts,
				CompletedCount: 1,
			},
		},
	}
}

func testScannerSave() *entity.Save {
	return &entity.Save{
		ID:               1,
		UserID:           10,
		Semester:         1,
		Attributes:       entity.AttributeVector{De: 50, Zhi: 85, Ti: 50, Mei: 50, Lao: 50},
		CompletedScripts: []int64{100},
		UnlockedBadges:   []int64{},
		Version:          1,
	}
}

func TestScanUnlocksMatchingBadges(t *testing.T) {
	scanner := NewScanner(&fakeBadgeRepo{badges: testBadges()}, &fakeSaveRepo{})
	save := testScannerSave()

	unlocked, err := scanner.Scan(context.Background(), save)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(unlocked) != 2 {
		t.Fatalf("want 2 unlocked badges, got %d", len(unlocked))
	}
	if !save.HasBadge(1) || !save.HasBadge(2) {
		t.Fatalf("save badges = %v", save.UnlockedBadges)
	}
	if save.HasBadge(3) {
		t.Fatal("disabled badge must not unlock")
	}
}

func TestScanIsIdempotent(t *testing.T) {
	scanner := NewScanner(&fakeBadgeRepo{badges: testBadges()}, &fakeSaveRepo{})
	save := testScannerSave()

	if _, err := scanner.Scan(context.Background(), save); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	unlocked, err := scanner.Scan(context.Background(), save)
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("second scan should unlock nothing, got %d", len(unlocked))
	}
	if len(save.UnlockedBadges) != 2 {
		t.Fatalf("badges must not duplicate, got %v", save.UnlockedBadges)
	}
}

func TestScanIsMonotonic(t *testing.T) {
	scanner := NewScanner(&fakeBadgeRepo{badges: testBadges()}, &fakeSaveRepo{})
	save := testScannerSave()

	if _, err := scanner.Scan(context.Background(), save); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	// 属性跌破阈值后已解锁的勋章不回收
	save.Attributes.Zhi = 10
	if _, err := scanner.Scan(context.Background(), save); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !save.HasBadge(1) {
		t.Fatal("unlocked badge must not be revoked")
	}
}

func TestScanAndPersistSkipsWriteWhenNothingNew(t *testing.T) {
	saves := &fakeSaveRepo{}
	scanner := NewScanner(&fakeBadgeRepo{badges: testBadges()}, saves)
	save := testScannerSave()
	save.UnlockedBadges = []int64{1, 2}

	unlocked, err := scanner.ScanAndPersist(context.Background(), save)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if unlocked != nil {
		t.Fatalf("want no new badges, got %v", unlocked)
	}
	if saves.updates != 0 {
		t.Fatal("no write should happen when nothing unlocked")
	}
}

func TestScanAndPersistWritesOnUnlock(t *testing.T) {
	saves := &fakeSaveRepo{}
	scanner := NewScanner(&fakeBadgeRepo{badges: testBadges()}, saves)
	save := testScannerSave()

	unlocked, err := scanner.ScanAndPersist(context.Background(), save)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(unlocked) != 2 {
		t.Fatalf("want 2 unlocked, got %d", len(unlocked))
	}
	if saves.updates != 1 {
		t.Fatalf("want 1 write, got %d", saves.updates)
	}
}

func TestListWithStatus(t *testing.T) {
	scanner := NewScanner(&fakeBadgeRepo{badges: testBadges()}, &fakeSaveRepo{})
	save := testScannerSave()
	save.UnlockedBadges = []int64{1}

	views, err := scanner.ListWithStatus(context.Background(), save)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("want 2 enabled badges, got %d", len(views))
	}
	for _, v := range views {
		if v.Badge.ID == 1 && !v.Unlocked {
			t.Fatal("badge 1 should be unlocked")
		}
		if v.Badge.ID == 2 && v.Unlocked {
			t.Fatal("badge 2 should be locked")
		}
	}
}
