package dto

import (
	"testing"

	"campus-life-api/internal/application/play"
	"campus-life-api/internal/domain/entity"
)

func TestNewScriptItemsKeepsLockedContent(t *testing.T) {
	views := []play.ScriptView{
		{
			Script: &entity.Script{
				ID:       1,
				Title:    "夜跑",
				Location: entity.LocationGym,
				Content:  "操场上空无一人",
				Contents: []string{"操场上空无一人", "你系好鞋带"},
				Options:  []entity.ScriptOption{{ID: 1, Text: "出发"}},
			},
			Status:     play.StatusLocked,
			LockReason: "体育需达到90",
		},
	}

	items := NewScriptItems(views)
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Status != string(play.StatusLocked) || item.LockReason != "体育需达到90" {
		t.Fatalf("item = %+v", item)
	}
	// 锁定项同样下发完整内容，可见性由列表模式控制
	if item.Content == "" || len(item.Contents) != 2 || len(item.Options) != 1 {
		t.Fatalf("locked item should carry full content, got %+v", item)
	}
}
