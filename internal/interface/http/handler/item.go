package handler

import (
	"github.com/gin-gonic/gin"

	appitem "github.com/checkproof/inventory/internal/application/item"
	"github.com/checkproof/inventory/internal/interface/http/dto"
	"github.com/checkproof/inventory/pkg/response"
)

// ItemHandler 商品HTTP处理器
type ItemHandler struct {
	createItemUseCase *appitem.CreateItemUseCase
	getItemUseCase    *appitem.GetItemUseCase
	listItemsUseCase  *appitem.ListItemsUseCase
	updateItemUseCase *appitem.UpdateItemUseCase
	deleteItemUseCase *appitem.DeleteItemUseCase
}

// NewItemHandler 创建商品处理器
func NewItemHandler(
	createItemUseCase *appitem.CreateItemUseCase,
	getItemUseCase *appitem.GetItemUseCase,
	listItemsUseCase *appitem.ListItemsUseCase,
	updateItemUseCase *appitem.UpdateItemUseCase,
	deleteItemUseCase *appitem.DeleteItemUseCase,
) *ItemHandler {
	return &ItemHandler{
		createItemUseCase: createItemUseCase,
		getItemUseCase:    getItemUseCase,
		listItemsUseCase:  listItemsUseCase,
		updateItemUseCase: updateItemUseCase,
		deleteItemUseCase: deleteItemUseCase,
	}
}

// toItemDTO 应用层响应 → HTTP DTO
func toItemDTO(r *appitem.ItemResponse) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// CreateItem 创建商品
// @Summary      创建商品
// @Description  创建商品目录条目(描述业务唯一)
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateItemRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ItemResponse}
// @Failure      200 {object} response.Response "参数错误/描述重复"
// @Router       /api/v1/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createItemUseCase.Execute(c.Request.Context(), appitem.CreateItemRequest{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toItemDTO(result))
}

// GetItem 查询商品详情
// @Summary      查询商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ItemResponse}
// @Failure      200 {object} response.Response "商品不存在"
// @Router       /api/v1/items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getItemUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toItemDTO(result))
}

// ListItems 商品列表
// @Summary      商品列表
// @Description  分页查询商品,支持关键词搜索和分类过滤
// @Tags         商品
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        keyword query string false "搜索关键词"
// @Param        category query string false "分类"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	var req dto.ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	result, err := h.listItemsUseCase.Execute(c.Request.Context(), appitem.ListItemsRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.ItemResponse, 0, len(result.Items))
	for _, it := range result.Items {
		list = append(list, toItemDTO(it))
	}
	response.SuccessWithPage(c, list, result.Total, req.Page, req.PageSize)
}

// UpdateItem 更新商品
// @Summary      更新商品
// @Description  更新商品信息,空字段不修改
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateItemRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ItemResponse}
// @Failure      200 {object} response.Response "商品不存在/描述重复"
// @Router       /api/v1/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateItemUseCase.Execute(c.Request.Context(), appitem.UpdateItemRequest{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toItemDTO(result))
}

// DeleteItem 删除商品
// @Summary      删除商品
// @Description  删除商品及其所有规格和库存记录(级联)
// @Tags         商品
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "商品不存在"
// @Router       /api/v1/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteItemUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
