package handler

import (
	"github.com/gin-gonic/gin"

	"campus-life-api/internal/application/badge"
	"campus-life-api/internal/application/save"
	"campus-life-api/internal/domain/entity"
	"campus-life-api/internal/interfaces/http/dto"
)

// BadgeHandler 勋章处理器
type BadgeHandler struct {
	saves   *save.Service
	scanner *badge.Scanner
}

// NewBadgeHandler 创建勋章处理器
func NewBadgeHandler(saves *save.Service, scanner *badge.Scanner) *BadgeHandler {
	return &BadgeHandler{saves: saves, scanner: scanner}
}

// List 勋章列表
// @Summary 查询全部勋章及解锁状态
// @Tags Badge
// @Produce json
// @Param sid path int true "存档 ID"
// @Success 200 {object} dto.Response[[]dto.BadgeItem]
// @Router /v1/saves/{sid}/badges [get]
func (h *BadgeHandler) List(c *gin.Context) {
	s, ok := h.loadSave(c)
	if !ok {
		return
	}

	views, err := h.scanner.ListWithStatus(c.Request.Context(), s)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.NewBadgeItems(views))
}

// ListUnlocked 已解锁勋章
// @Summary 查询已解锁的勋章
// @Tags Badge
// @Produce json
// @Param sid path int true "存档 ID"
// @Success 200 {object} dto.Response[[]dto.BadgeItem]
// @Router /v1/saves/{sid}/badges/unlocked [get]
func (h *BadgeHandler) ListUnlocked(c *gin.Context) {
	s, ok := h.loadSave(c)
	if !ok {
		return
	}

	badges, err := h.scanner.ListUnlocked(c.Request.Context(), s)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.NewUnlockedBadgeItems(badges))
}

// Scan 手动触发勋章扫描
// @Summary 扫描并持久化新解锁的勋章
// @Description 返回本次新解锁的勋章，无新增时不写库
// @Tags Badge
// @Produce json
// @Param sid path int true "存档 ID"
// @Success 200 {object} dto.Response[[]dto.BadgeItem]
// @Router /v1/saves/{sid}/badges/scan [post]
func (h *BadgeHandler) Scan(c *gin.Context) {
	s, ok := h.loadSave(c)
	if !ok {
		return
	}

	unlocked, err := h.scanner.ScanAndPersist(c.Request.Context(), s)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.NewUnlockedBadgeItems(unlocked))
}

func (h *BadgeHandler) loadSave(c *gin.Context) (*entity.Save, bool) {
	saveID := dto.BindSaveID(c)
	if saveID <= 0 {
		dto.BadRequest(c, "invalid save id")
		return nil, false
	}

	s, err := h.saves.Get(c.Request.Context(), dto.UserID(c), saveID)
	if err != nil {
		dto.Fail(c, err)
		return nil, false
	}
	return s, true
}
