package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/pkg/metrics"
)

// ScriptCatalog 带缓存的剧本目录。
// 按地点缓存启用的剧本列表，写路径通过 InvalidateScripts 失效。
type ScriptCatalog struct {
	cache   *Cache
	scripts repository.ScriptRepository
	ttl     time.Duration
}

// NewScriptCatalog 创建剧本目录缓存
func NewScriptCatalog(cache *Cache, scripts repository.ScriptRepository, ttl time.Duration) *ScriptCatalog {
	return &ScriptCatalog{cache: cache, scripts: scripts, ttl: ttl}
}

func scriptCatalogKey(location entity.ScriptLocation) string {
	return fmt.Sprintf("catalog:scripts:%s", location)
}

// ListByLocation 获取指定地点启用的剧本列表，优先读缓存
func (c *ScriptCatalog) ListByLocation(ctx context.Context, location entity.ScriptLocation) ([]*entity.Script, error) {
	key := scriptCatalogKey(location)

	hit := true
	data, err := c.cache.GetOrLoadSafe(ctx, key, c.ttl, func() (interface{}, error) {
		hit = false
		return c.scripts.List(ctx, repository.ScriptFilter{
			Location:    location,
			EnabledOnly: true,
		})
	})
	if err != nil {
		return nil, err
	}

	if hit {
		metrics.CatalogCacheHits.WithLabelValues("scripts", "hit").Inc()
	} else {
		metrics.CatalogCacheHits.WithLabelValues("scripts", "miss").Inc()
	}

	var scripts []*entity.Script
	if err := json.Unmarshal(data, &scripts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached scripts: %w", err)
	}
	return scripts, nil
}

// InvalidateScripts 使指定地点的剧本目录缓存失效
func (c *ScriptCatalog) InvalidateScripts(ctx context.Context, location entity.ScriptLocation) error {
	return c.cache.Delete(ctx, scriptCatalogKey(location))
}
