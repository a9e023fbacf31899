package handler

import (
	"github.com/gin-gonic/gin"

	"campus-life-api/internal/application/play"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/interfaces/http/dto"
)

// ScriptHandler 剧本游玩处理器
type ScriptHandler struct {
	svc *play.Service
}

// NewScriptHandler 创建剧本游玩处理器
func NewScriptHandler(svc *play.Service) *ScriptHandler {
	return &ScriptHandler{svc: svc}
}

// ListByLocation 地点剧本列表
// @Summary 查询某地点的剧本
// @Description 按存档进度标注剧本状态，默认只返回可用剧本，include_all=true 时附带已完成与锁定项。地点为 all 时跨全部地点聚合
// @Tags Play
// @Produce json
// @Param sid path int true "存档 ID"
// @Param location path string true "地点，all 表示不限"
// @Param include_all query bool false "是否包含已完成与锁定剧本"
// @Success 200 {object} dto.Response[[]dto.ScriptItem]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/saves/{sid}/locations/{location}/scripts [get]
func (h *ScriptHandler) ListByLocation(c *gin.Context) {
	saveID := dto.BindSaveID(c)
	if saveID <= 0 {
		dto.BadRequest(c, "invalid save id")
		return
	}

	location := entity.ScriptLocation(c.Param("location"))
	if location == "" {
		// 无地点路由，地点从查询参数取，缺省不限地点
		location = entity.ScriptLocation(c.Query("location"))
	}
	includeAll := c.Query("include_all") == "true"

	views, err := h.svc.ListScripts(c.Request.Context(), dto.UserID(c), saveID, location, includeAll)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.NewScriptItems(views))
}

// Execute 执行剧本选项
// @Summary 执行剧本选项
// @Description 校验解锁条件后应用属性变化并消耗一次事件机会
// @Tags Play
// @Accept json
// @Produce json
// @Param sid path int true "存档 ID"
// @Param scriptId path int true "剧本 ID"
// @Param body body dto.ExecuteScriptRequest true "选项"
// @Success 200 {object} dto.Response[dto.ExecuteScriptResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/saves/{sid}/scripts/{scriptId}/execute [post]
func (h *ScriptHandler) Execute(c *gin.Context) {
	saveID := dto.BindSaveID(c)
	scriptID := dto.BindScriptID(c)
	if saveID <= 0 || scriptID <= 0 {
		dto.BadRequest(c, "invalid save or script id")
		return
	}

	var req dto.ExecuteScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.Execute(c.Request.Context(), dto.UserID(c), saveID, scriptID, req.OptionID)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.ExecuteScriptResponse{
		Save:           dto.NewSaveView(result.Save),
		NextScriptID:   result.NextScriptID,
		UnlockedBadges: dto.NewUnlockedBadgeItems(result.UnlockedBadges),
	})
}
