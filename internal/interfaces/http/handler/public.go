package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/internal/infrastructure/persistence/redis"
	"campus-life-api/internal/interfaces/http/dto"
)

// 设置缓存有效期
const settingCacheTTL = 5 * time.Minute

func settingCacheKey(key string) string {
	return "settings:" + key
}

// PublicHandler 公开内容处理器
type PublicHandler struct {
	settings repository.SettingRepository
	cache    *redis.Cache
}

// NewPublicHandler 创建公开内容处理器
func NewPublicHandler(settings repository.SettingRepository, cache *redis.Cache) *PublicHandler {
	return &PublicHandler{
		settings: settings,
		cache:    cache,
	}
}

// Announcements 公告
// @Summary 查询站点公告
// @Tags Public
// @Produce json
// @Success 200 {object} dto.Response[json.RawMessage]
// @Router /v1/public/announcements [get]
func (h *PublicHandler) Announcements(c *gin.Context) {
	h.serveSetting(c, entity.SettingAnnouncements)
}

// Credits 致谢
// @Summary 查询致谢名单
// @Tags Public
// @Produce json
// @Success 200 {object} dto.Response[json.RawMessage]
// @Router /v1/public/credits [get]
func (h *PublicHandler) Credits(c *gin.Context) {
	h.serveSetting(c, entity.SettingCredits)
}

// serveSetting 经缓存读取设置项，缺失时返回空文档
func (h *PublicHandler) serveSetting(c *gin.Context, key string) {
	ctx := c.Request.Context()

	data, err := h.cache.GetOrLoadSafe(ctx, settingCacheKey(key), settingCacheTTL, func() (interface{}, error) {
		setting, err := h.settings.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if setting == nil {
			return json.RawMessage("null"), nil
		}
		return setting.Value, nil
	})
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, json.RawMessage(data))
}
