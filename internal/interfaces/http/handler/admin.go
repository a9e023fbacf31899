package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"campus-life-api/internal/application/content"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/internal/infrastructure/persistence/redis"
	"campus-life-api/internal/interfaces/http/dto"
	"campus-life-api/pkg/logger"
)

// AdminHandler 后台内容管理处理器
type AdminHandler struct {
	content  *content.Service
	settings repository.SettingRepository
	cache    *redis.Cache
}

// NewAdminHandler 创建后台内容管理处理器
func NewAdminHandler(contentSvc *content.Service, settings repository.SettingRepository, cache *redis.Cache) *AdminHandler {
	return &AdminHandler{
		content:  contentSvc,
		settings: settings,
		cache:    cache,
	}
}

// CreateScript 新建剧本
// @Summary 创建官方剧本
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.UpsertScriptRequest true "剧本信息"
// @Success 201 {object} dto.Response[entity.Script]
// @Router /v1/admin/scripts [post]
func (h *AdminHandler) CreateScript(c *gin.Context) {
	var req dto.UpsertScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	script, err := h.content.CreateScript(c.Request.Context(), req.ToEntity(0))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Created(c, script)
}

// GetScript 剧本详情
// @Summary 查询剧本详情
// @Tags Admin
// @Produce json
// @Param scriptId path int true "剧本 ID"
// @Success 200 {object} dto.Response[entity.Script]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/admin/scripts/{scriptId} [get]
func (h *AdminHandler) GetScript(c *gin.Context) {
	scriptID := dto.BindScriptID(c)
	if scriptID <= 0 {
		dto.BadRequest(c, "invalid script id")
		return
	}

	script, err := h.content.GetScript(c.Request.Context(), scriptID)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, script)
}

// ListScripts 剧本列表
// @Summary 分页查询剧本，可按地点过滤
// @Tags Admin
// @Produce json
// @Param location query string false "地点"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[[]entity.Script]
// @Router /v1/admin/scripts [get]
func (h *AdminHandler) ListScripts(c *gin.Context) {
	page := dto.BindPage(c)
	filter := repository.ScriptFilter{
		Location: entity.ScriptLocation(c.Query("location")),
	}

	result, err := h.content.ListScripts(c.Request.Context(), filter,
		repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.SuccessWithPage(c, result.Items, dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// UpdateScript 更新剧本
// @Summary 更新官方剧本
// @Tags Admin
// @Accept json
// @Produce json
// @Param scriptId path int true "剧本 ID"
// @Param body body dto.UpsertScriptRequest true "剧本信息"
// @Success 200 {object} dto.Response[entity.Script]
// @Router /v1/admin/scripts/{scriptId} [put]
func (h *AdminHandler) UpdateScript(c *gin.Context) {
	scriptID := dto.BindScriptID(c)
	if scriptID <= 0 {
		dto.BadRequest(c, "invalid script id")
		return
	}

	var req dto.UpsertScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	script, err := h.content.UpdateScript(c.Request.Context(), req.ToEntity(scriptID))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, script)
}

// DeleteScript 删除剧本
// @Summary 删除官方剧本
// @Tags Admin
// @Param scriptId path int true "剧本 ID"
// @Success 204
// @Router /v1/admin/scripts/{scriptId} [delete]
func (h *AdminHandler) DeleteScript(c *gin.Context) {
	scriptID := dto.BindScriptID(c)
	if scriptID <= 0 {
		dto.BadRequest(c, "invalid script id")
		return
	}

	if err := h.content.DeleteScript(c.Request.Context(), scriptID); err != nil {
		dto.Fail(c, err)
		return
	}

	dto.NoContent(c)
}

// CreateBadge 新建勋章
// @Summary 创建勋章
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.UpsertBadgeRequest true "勋章信息"
// @Success 201 {object} dto.Response[entity.Badge]
// @Router /v1/admin/badges [post]
func (h *AdminHandler) CreateBadge(c *gin.Context) {
	var req dto.UpsertBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	b, err := h.content.CreateBadge(c.Request.Context(), req.ToEntity(0))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Created(c, b)
}

// GetBadge 勋章详情
// @Summary 查询勋章详情
// @Tags Admin
// @Produce json
// @Param bid path int true "勋章 ID"
// @Success 200 {object} dto.Response[entity.Badge]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/admin/badges/{bid} [get]
func (h *AdminHandler) GetBadge(c *gin.Context) {
	badgeID := dto.BindBadgeID(c)
	if badgeID <= 0 {
		dto.BadRequest(c, "invalid badge id")
		return
	}

	b, err := h.content.GetBadge(c.Request.Context(), badgeID)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, b)
}

// ListBadges 勋章列表
// @Summary 查询全部勋章，含停用项
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.Response[[]entity.Badge]
// @Router /v1/admin/badges [get]
func (h *AdminHandler) ListBadges(c *gin.Context) {
	badges, err := h.content.ListBadges(c.Request.Context(), false)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, badges)
}

// UpdateBadge 更新勋章
// @Summary 更新勋章
// @Tags Admin
// @Accept json
// @Produce json
// @Param bid path int true "勋章 ID"
// @Param body body dto.UpsertBadgeRequest true "勋章信息"
// @Success 200 {object} dto.Response[entity.Badge]
// @Router /v1/admin/badges/{bid} [put]
func (h *AdminHandler) UpdateBadge(c *gin.Context) {
	badgeID := dto.BindBadgeID(c)
	if badgeID <= 0 {
		dto.BadRequest(c, "invalid badge id")
		return
	}

	var req dto.UpsertBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	b, err := h.content.UpdateBadge(c.Request.Context(), req.ToEntity(badgeID))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, b)
}

// DeleteBadge 删除勋章
// @Summary 删除勋章
// @Tags Admin
// @Param bid path int true "勋章 ID"
// @Success 204
// @Router /v1/admin/badges/{bid} [delete]
func (h *AdminHandler) DeleteBadge(c *gin.Context) {
	badgeID := dto.BindBadgeID(c)
	if badgeID <= 0 {
		dto.BadRequest(c, "invalid badge id")
		return
	}

	if err := h.content.DeleteBadge(c.Request.Context(), badgeID); err != nil {
		dto.Fail(c, err)
		return
	}

	dto.NoContent(c)
}

// UpdateSetting 更新系统设置
// @Summary 更新公告或致谢内容
// @Description 请求体为任意 JSON 文档，原样存储
// @Tags Admin
// @Accept json
// @Produce json
// @Param key path string true "设置键" Enums(announcements, credits)
// @Success 200 {object} dto.Response[entity.SystemSetting]
// @Router /v1/admin/settings/{key} [put]
func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	if key != entity.SettingAnnouncements && key != entity.SettingCredits {
		dto.BadRequest(c, "unknown setting key")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		dto.BadRequest(c, "failed to read request body")
		return
	}
	if !json.Valid(body) {
		dto.BadRequest(c, "request body must be valid JSON")
		return
	}

	ctx := c.Request.Context()
	setting := &entity.SystemSetting{
		Key:   key,
		Value: json.RawMessage(body),
	}
	if err := h.settings.Upsert(ctx, setting); err != nil {
		dto.Fail(c, err)
		return
	}

	// 设置缓存失效失败只记日志
	if err := h.cache.Delete(ctx, settingCacheKey(key)); err != nil {
		logger.Warn(ctx, "failed to invalidate setting cache", "key", key, "error", err)
	}

	dto.Success(c, setting)
}
