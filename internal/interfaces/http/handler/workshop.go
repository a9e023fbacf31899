package handler

import (
	"github.com/gin-gonic/gin"

	"campus-life-api/internal/application/workshop"
	"campus-life-api/internal/domain/repository"
	"campus-life-api/internal/interfaces/http/dto"
)

// WorkshopHandler 创意工坊处理器
type WorkshopHandler struct {
	svc *workshop.Service
}

// NewWorkshopHandler 创建创意工坊处理器
func NewWorkshopHandler(svc *workshop.Service) *WorkshopHandler {
	return &WorkshopHandler{svc: svc}
}

// CreateChain 新建剧本链
// @Summary 创建剧本链
// @Tags Workshop
// @Accept json
// @Produce json
// @Param body body dto.UpsertChainRequest true "剧本链信息"
// @Success 201 {object} dto.Response[entity.WorkshopChain]
// @Router /v1/workshop/chains [post]
func (h *WorkshopHandler) CreateChain(c *gin.Context) {
	var req dto.UpsertChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chain, err := h.svc.CreateChain(c.Request.Context(), dto.UserID(c), workshop.ChainParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Created(c, chain)
}

// ListChains 剧本链列表
// @Summary 分页查询当前用户的剧本链
// @Tags Workshop
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[[]entity.WorkshopChain]
// @Router /v1/workshop/chains [get]
func (h *WorkshopHandler) ListChains(c *gin.Context) {
	page := dto.BindPage(c)

	result, err := h.svc.ListChains(c.Request.Context(), dto.UserID(c),
		repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.SuccessWithPage(c, result.Items, dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// GetChain 剧本链详情
// @Summary 查询剧本链及其全部节点
// @Tags Workshop
// @Produce json
// @Param cid path int true "剧本链 ID"
// @Success 200 {object} dto.Response[workshop.ChainDetail]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/workshop/chains/{cid} [get]
func (h *WorkshopHandler) GetChain(c *gin.Context) {
	chainID := dto.BindChainID(c)
	if chainID <= 0 {
		dto.BadRequest(c, "invalid chain id")
		return
	}

	detail, err := h.svc.GetChainDetail(c.Request.Context(), dto.UserID(c), chainID)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, detail)
}

// UpdateChain 更新剧本链
// @Summary 更新剧本链元信息
// @Tags Workshop
// @Accept json
// @Produce json
// @Param cid path int true "剧本链 ID"
// @Param body body dto.UpsertChainRequest true "剧本链信息"
// @Success 200 {object} dto.Response[entity.WorkshopChain]
// @Router /v1/workshop/chains/{cid} [put]
func (h *WorkshopHandler) UpdateChain(c *gin.Context) {
	chainID := dto.BindChainID(c)
	if chainID <= 0 {
		dto.BadRequest(c, "invalid chain id")
		return
	}

	var req dto.UpsertChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chain, err := h.svc.UpdateChain(c.Request.Context(), dto.UserID(c), chainID, workshop.ChainParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, chain)
}

// DeleteChain 删除剧本链
// @Summary 删除剧本链及其全部节点
// @Tags Workshop
// @Param cid path int true "剧本链 ID"
// @Success 204
// @Router /v1/workshop/chains/{cid} [delete]
func (h *WorkshopHandler) DeleteChain(c *gin.Context) {
	chainID := dto.BindChainID(c)
	if chainID <= 0 {
		dto.BadRequest(c, "invalid chain id")
		return
	}

	if err := h.svc.DeleteChain(c.Request.Context(), dto.UserID(c), chainID); err != nil {
		dto.Fail(c, err)
		return
	}

	dto.NoContent(c)
}

// CreateNode 新建节点
// @Summary 创建剧本链节点
// @Description 标记为入口时自动清除同链其他节点的入口标记
// @Tags Workshop
// @Accept json
// @Produce json
// @Param cid path int true "剧本链 ID"
// @Param body body dto.UpsertNodeRequest true "节点信息"
// @Success 201 {object} dto.Response[entity.WorkshopScript]
// @Router /v1/workshop/chains/{cid}/nodes [post]
func (h *WorkshopHandler) CreateNode(c *gin.Context) {
	chainID := dto.BindChainID(c)
	if chainID <= 0 {
		dto.BadRequest(c, "invalid chain id")
		return
	}

	var req dto.UpsertNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	node, err := h.svc.CreateNode(c.Request.Context(), dto.UserID(c), req.ToEntity(0, chainID))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Created(c, node)
}

// UpdateNode 更新节点
// @Summary 更新剧本链节点
// @Tags Workshop
// @Accept json
// @Produce json
// @Param cid path int true "剧本链 ID"
// @Param nid path int true "节点 ID"
// @Param body body dto.UpsertNodeRequest true "节点信息"
// @Success 200 {object} dto.Response[entity.WorkshopScript]
// @Router /v1/workshop/chains/{cid}/nodes/{nid} [put]
func (h *WorkshopHandler) UpdateNode(c *gin.Context) {
	chainID := dto.BindChainID(c)
	nodeID := dto.BindNodeID(c)
	if chainID <= 0 || nodeID <= 0 {
		dto.BadRequest(c, "invalid chain or node id")
		return
	}

	var req dto.UpsertNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	node, err := h.svc.UpdateNode(c.Request.Context(), dto.UserID(c), req.ToEntity(nodeID, chainID))
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, node)
}

// DeleteNode 删除节点
// @Summary 删除节点并清理指向它的选项跳转
// @Tags Workshop
// @Param cid path int true "剧本链 ID"
// @Param nid path int true "节点 ID"
// @Success 204
// @Router /v1/workshop/chains/{cid}/nodes/{nid} [delete]
func (h *WorkshopHandler) DeleteNode(c *gin.Context) {
	chainID := dto.BindChainID(c)
	nodeID := dto.BindNodeID(c)
	if chainID <= 0 || nodeID <= 0 {
		dto.BadRequest(c, "invalid chain or node id")
		return
	}

	if err := h.svc.DeleteNode(c.Request.Context(), dto.UserID(c), chainID, nodeID); err != nil {
		dto.Fail(c, err)
		return
	}

	dto.NoContent(c)
}

// UpdatePositions 批量更新节点坐标
// @Summary 批量更新画布节点坐标
// @Tags Workshop
// @Accept json
// @Param cid path int true "剧本链 ID"
// @Param body body dto.UpdatePositionsRequest true "坐标列表"
// @Success 204
// @Router /v1/workshop/chains/{cid}/positions [put]
func (h *WorkshopHandler) UpdatePositions(c *gin.Context) {
	chainID := dto.BindChainID(c)
	if chainID <= 0 {
		dto.BadRequest(c, "invalid chain id")
		return
	}

	var req dto.UpdatePositionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.UpdatePositions(c.Request.Context(), dto.UserID(c), chainID, req.Positions); err != nil {
		dto.Fail(c, err)
		return
	}

	dto.NoContent(c)
}

// ToggleImport 切换导入状态
// @Summary 导入剧本链到游戏或撤回
// @Description 导入要求剧本链已设置入口节点且至少包含一个节点
// @Tags Workshop
// @Accept json
// @Produce json
// @Param cid path int true "剧本链 ID"
// @Param body body dto.ToggleImportRequest true "导入开关"
// @Success 200 {object} dto.Response[entity.WorkshopChain]
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/workshop/chains/{cid}/import [put]
func (h *WorkshopHandler) ToggleImport(c *gin.Context) {
	chainID := dto.BindChainID(c)
	if chainID <= 0 {
		dto.BadRequest(c, "invalid chain id")
		return
	}

	var req dto.ToggleImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chain, err := h.svc.ToggleImport(c.Request.Context(), dto.UserID(c), chainID, req.Imported)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, chain)
}
