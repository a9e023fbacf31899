package handler

import (
	"github.com/gin-gonic/gin"

	"campus-life-api/internal/application/save"
	"campus-life-api/internal/interfaces/http/dto"
)

// SaveHandler 存档处理器
type SaveHandler struct {
	svc *save.Service
}

// NewSaveHandler 创建存档处理器
func NewSaveHandler(svc *save.Service) *SaveHandler {
	return &SaveHandler{svc: svc}
}

// Create 建档
// @Summary 创建存档
// @Description 创建新存档，未指定属性时五维各 50
// @Tags Save
// @Accept json
// @Produce json
// @Param body body dto.CreateSaveRequest true "建档参数"
// @Success 201 {object} dto.Response[dto.SaveView]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/saves [post]
func (h *SaveHandler) Create(c *gin.Context) {
	var req dto.CreateSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	s, err := h.svc.Create(c.Request.Context(), dto.UserID(c), save.CreateParams{
		Name:       req.Name,
		Attributes: req.Attributes,
		Semester:   req.Semester,
		Week:       req.Week,
	})
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Created(c, dto.NewSaveView(s))
}

// List 存档列表
// @Summary 查询当前用户的全部存档
// @Tags Save
// @Produce json
// @Success 200 {object} dto.Response[[]dto.SaveView]
// @Router /v1/saves [get]
func (h *SaveHandler) List(c *gin.Context) {
	saves, err := h.svc.List(c.Request.Context(), dto.UserID(c))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.NewSaveViews(saves))
}

// Get 存档详情
// @Summary 查询存档详情
// @Tags Save
// @Produce json
// @Param sid path int true "存档 ID"
// @Success 200 {object} dto.Response[dto.SaveView]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/saves/{sid} [get]
func (h *SaveHandler) Get(c *gin.Context) {
	saveID := dto.BindSaveID(c)
	if saveID <= 0 {
		dto.BadRequest(c, "invalid save id")
		return
	}

	s, err := h.svc.Get(c.Request.Context(), dto.UserID(c), saveID)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.NewSaveView(s))
}

// Rename 存档重命名
// @Summary 重命名存档
// @Tags Save
// @Accept json
// @Produce json
// @Param sid path int true "存档 ID"
// @Param body body dto.RenameSaveRequest true "新名称"
// @Success 200 {object} dto.Response[dto.SaveView]
// @Router /v1/saves/{sid}/name [put]
func (h *SaveHandler) Rename(c *gin.Context) {
	saveID := dto.BindSaveID(c)
	if saveID <= 0 {
		dto.BadRequest(c, "invalid save id")
		return
	}

	var req dto.RenameSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	s, err := h.svc.Rename(c.Request.Context(), dto.UserID(c), saveID, req.Name)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, dto.NewSaveView(s))
}

// Delete 删除存档
// @Summary 删除存档
// @Tags Save
// @Param sid path int true "存档 ID"
// @Success 204
// @Router /v1/saves/{sid} [delete]
func (h *SaveHandler) Delete(c *gin.Context) {
	saveID := dto.BindSaveID(c)
	if saveID <= 0 {
		dto.BadRequest(c, "invalid save id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), dto.UserID(c), saveID); err != nil {
		dto.Fail(c, err)
		return
	}

	dto.NoContent(c)
}
