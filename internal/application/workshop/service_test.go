package workshop

import (
	"context"
	"testing"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/errors"
)

type fakeWorkshopRepo struct {
	chains      map[int64]*entity.WorkshopChain
	nodes       map[int64]*entity.WorkshopScript
	nextChainID int64
	nextNodeID  int64
}

func newFakeWorkshopRepo() *fakeWorkshopRepo {
	return &fakeWorkshopRepo{
		chains: make(map[int64]*entity.WorkshopChain),
		nodes:  make(map[int64]*entity.WorkshopScript),
	}
}

func (f *fakeWorkshopRepo) CreateChain(ctx context.Context, c *entity.WorkshopChain) error {
	f.nextChainID++
	c.ID = f.nextChainID
	cp := *c
	f.chains[c.ID] = &cp
	return nil
}

func (f *fakeWorkshopRepo) GetChain(ctx context.Context, id int64) (*entity.WorkshopChain, error) {
	c, ok := f.chains[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeWorkshopRepo) ListChainsByOwner(ctx context.Context, ownerID int64, page repository.Pagination) (*repository.PagedResult[*entity.WorkshopChain], error) {
	var items []*entity.WorkshopChain
	for _, c := range f.chains {
		if c.OwnerID == ownerID {
			cp := *c
			items = append(items, &cp)
		}
	}
	return repository.NewPagedResult(items, int64(len(items)), page), nil
}

func (f *fakeWorkshopRepo) UpdateChain(ctx context.Context, c *entity.WorkshopChain) error {
	cp := *c
	f.chains[c.ID] = &cp
	return nil
}

func (f *fakeWorkshopRepo) DeleteChain(ctx context.Context, id int64) error {
	delete(f.chains, id)
	for nid, n := range f.nodes {
		if n.ChainID == id {
			delete(f.nodes, nid)
		}
	}
	return nil
}

func (f *fakeWorkshopRepo) CreateNode(ctx context.Context, n *entity.WorkshopScript) error {
	f.nextNodeID++
	n.ID = f.nextNodeID
	cp := *n
	f.nodes[n.ID] = &cp
	return nil
}

func (f *fakeWorkshopRepo) GetNode(ctx context.Context, id int64) (*entity.WorkshopScript, error) {
	n, ok := f.nodes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (f *fakeWorkshopRepo) ListNodes(ctx context.Context, chainID int64) ([]*entity.WorkshopScript, error) {
	var out []*entity.WorkshopScript
	for _, n := range f.nodes {
		if n.ChainID == chainID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeWorkshopRepo) UpdateNode(ctx context.Context, n *entity.WorkshopScript) error {
	cp := *n
	f.nodes[n.ID] = &cp
	return nil
}

func (f *fakeWorkshopRepo) DeleteNode(ctx context.Context, id int64) error {
	delete(f.nodes, id)
	return nil
}

func (f *fakeWorkshopRepo) ClearEntryFlags(ctx context.Context, chainID int64) error {
	for _, n := range f.nodes {
		if n.ChainID == chainID {
			n.IsEntry = false
		}
	}
	return nil
}

func (f *fakeWorkshopRepo) UpdatePositions(ctx context.Context, chainID int64, updates []entity.PositionUpdate) error {
	for _, u := range updates {
		if n, ok := f.nodes[u.NodeID]; ok && n.ChainID == chainID {
			n.Position = u.Position
		}
	}
	return nil
}

func (f *fakeWorkshopRepo) CountNodes(ctx context.Context, chainID int64) (int64, error) {
	var n int64
	for _, node := range f.nodes {
		if node.ChainID == chainID {
			n++
		}
	}
	return n, nil
}

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func int64Ptr(v int64) *int64 { return &v }

func setupChain(t *testing.T) (*Service, *fakeWorkshopRepo, *entity.WorkshopChain) {
	t.Helper()
	repo := newFakeWorkshopRepo()
	svc := NewService(repo, fakeTx{})
	chain, err := svc.CreateChain(context.Background(), 10, ChainParams{
		Title:       "宿舍奇遇",
		Description: "一条测试链",
		Location:    "dormitory",
	})
	if err != nil {
		t.Fatalf("create chain failed: %v", err)
	}
	return svc, repo, chain
}

func TestEntryFlagIsExclusive(t *testing.T) {
	svc, repo, chain := setupChain(t)
	ctx := context.Background()

	first, err := svc.CreateNode(ctx, 10, &entity.WorkshopScript{
		ChainID: chain.ID, Title: "开场", IsEntry: true,
	})
	if err != nil {
		t.Fatalf("create node failed: %v", err)
	}

	second, err := svc.CreateNode(ctx, 10, &entity.WorkshopScript{
		ChainID: chain.ID, Title: "新开场", IsEntry: true,
	})
	if err != nil {
		t.Fatalf("create node failed: %v", err)
	}

	stored, _ := repo.GetNode(ctx, first.ID)
	if stored.IsEntry {
		t.Fatal("previous entry flag should be cleared")
	}
	updatedChain, _ := repo.GetChain(ctx, chain.ID)
	if updatedChain.RootScriptID == nil || *updatedChain.RootScriptID != second.ID {
		t.Fatalf("root script id = %v, want %d", updatedChain.RootScriptID, second.ID)
	}
}

func TestUpdateNodeClearingEntryClearsRoot(t *testing.T) {
	svc, repo, chain := setupChain(t)
	ctx := context.Background()

	node, err := svc.CreateNode(ctx, 10, &entity.WorkshopScript{
		ChainID: chain.ID, Title: "开场", IsEntry: true,
	})
	if err != nil {
		t.Fatalf("create node failed: %v", err)
	}

	node.IsEntry = false
	if _, err := svc.UpdateNode(ctx, 10, node); err != nil {
		t.Fatalf("update node failed: %v", err)
	}

	updatedChain, _ := repo.GetChain(ctx, chain.ID)
	if updatedChain.RootScriptID != nil {
		t.Fatalf("root script id should be cleared, got %v", updatedChain.RootScriptID)
	}
}

func TestDeleteNodeCleansDanglingEdges(t *testing.T) {
	svc, repo, chain := setupChain(t)
	ctx := context.Background()

	target, err := svc.CreateNode(ctx, 10, &entity.WorkshopScript{
		ChainID: chain.ID, Title: "结局", IsEntry: true,
	})
	if err != nil {
		t.Fatalf("create node failed: %v", err)
	}

	linking, err := svc.CreateNode(ctx, 10, &entity.WorkshopScript{
		ChainID: chain.ID,
		Title:   "岔路",
		Options: []entity.ScriptOption{
			{ID: 1, Text: "走向结局", NextScriptID: int64Ptr(target.ID)},
			{ID: 2, Text: "原地不动"},
		},
	})
	if err != nil {
		t.Fatalf("create node failed: %v", err)
	}

	if err := svc.DeleteNode(ctx, 10, chain.ID, target.ID); err != nil {
		t.Fatalf("delete node failed: %v", err)
	}

	stored, _ := repo.GetNode(ctx, linking.ID)
	if stored.Options[0].NextScriptID != nil {
		t.Fatal("dangling option edge should be cleared")
	}

	updatedChain, _ := repo.GetChain(ctx, chain.ID)
	if updatedChain.RootScriptID != nil {
		t.Fatal("root cache should be cleared when entry node is deleted")
	}
}

func TestToggleImportRequiresEntryAndNodes(t *testing.T) {
	svc, _, chain := setupChain(t)
	ctx := context.Background()

	_, err := svc.ToggleImport(ctx, 10, chain.ID, true)
	if errors.AsAppError(err).Code != errors.CodeChainNoEntry {
		t.Fatalf("want CodeChainNoEntry, got %v", err)
	}

	if _, err := svc.CreateNode(ctx, 10, &entity.WorkshopScript{
		ChainID: chain.ID, Title: "开场", IsEntry: true,
	}); err != nil {
		t.Fatalf("create node failed: %v", err)
	}

	imported, err := svc.ToggleImport(ctx, 10, chain.ID, true)
	if err != nil {
		t.Fatalf("toggle import failed: %v", err)
	}
	if !imported.IsImported {
		t.Fatal("chain should be marked imported")
	}

	reverted, err := svc.ToggleImport(ctx, 10, chain.ID, false)
	if err != nil {
		t.Fatalf("toggle import off failed: %v", err)
	}
	if reverted.IsImported {
		t.Fatal("chain import flag should be cleared")
	}
}

func TestUpdatePositions(t *testing.T) {
	svc, repo, chain := setupChain(t)
	ctx := context.Background()

	node, err := svc.CreateNode(ctx, 10, &entity.WorkshopScript{
		ChainID: chain.ID, Title: "开场", IsEntry: true,
	})
	if err != nil {
		t.Fatalf("create node failed: %v", err)
	}

	err = svc.UpdatePositions(ctx, 10, chain.ID, []entity.PositionUpdate{
		{NodeID: node.ID, Position: entity.NodePosition{X: 120, Y: 80}},
	})
	if err != nil {
		t.Fatalf("update positions failed: %v", err)
	}

	stored, _ := repo.GetNode(ctx, node.ID)
	if stored.Position.X != 120 || stored.Position.Y != 80 {
		t.Fatalf("position = %+v", stored.Position)
	}
}

func TestChainOwnershipEnforced(t *testing.T) {
	svc, _, chain := setupChain(t)
	ctx := context.Background()

	if _, err := svc.GetChainDetail(ctx, 999, chain.ID); errors.AsAppError(err).Code != errors.CodeForbidden {
		t.Fatalf("want CodeForbidden, got %v", err)
	}
	if err := svc.DeleteChain(ctx, 999, chain.ID); errors.AsAppError(err).Code != errors.CodeForbidden {
		t.Fatalf("want CodeForbidden, got %v", err)
	}
}
