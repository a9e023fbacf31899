package handler

import (
	"github.com/gin-gonic/gin"

	"campus-life-api/internal/application/settlement"
	"campus-life-api/internal/interfaces/http/dto"
)

// SettlementHandler 阶段结算处理器
type SettlementHandler struct {
	svc *settlement.Service
}

// NewSettlementHandler 创建阶段结算处理器
func NewSettlementHandler(svc *settlement.Service) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

// Preview 结算预览
// @Summary 预览结算报告
// @Description 只读生成当前阶段的评语与下一阶段信息，不修改存档
// @Tags Settlement
// @Produce json
// @Param sid path int true "存档 ID"
// @Success 200 {object} dto.Response[dto.SettlementReport]
// @Router /v1/saves/{sid}/settlement/preview [get]
func (h *SettlementHandler) Preview(c *gin.Context) {
	saveID := dto.BindSaveID(c)
	if saveID <= 0 {
		dto.BadRequest(c, "invalid save id")
		return
	}

	report, err := h.svc.Preview(c.Request.Context(), dto.UserID(c), saveID)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.NewSettlementReport(report))
}

// Confirm 结算确认
// @Summary 确认结算并推进阶段
// @Description 存档必须处于待结算状态，推进后重置事件次数并扫描勋章
// @Tags Settlement
// @Produce json
// @Param sid path int true "存档 ID"
// @Success 200 {object} dto.Response[dto.SettlementConfirmResponse]
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/saves/{sid}/settlement/confirm [post]
func (h *SettlementHandler) Confirm(c *gin.Context) {
	saveID := dto.BindSaveID(c)
	if saveID <= 0 {
		dto.BadRequest(c, "invalid save id")
		return
	}

	result, err := h.svc.Confirm(c.Request.Context(), dto.UserID(c), saveID)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.SettlementConfirmResponse{
		Report:         dto.NewSettlementReport(result.Report),
		Save:           dto.NewSaveView(result.Save),
		UnlockedBadges: dto.NewUnlockedBadgeItems(result.UnlockedBadges),
	})
}
