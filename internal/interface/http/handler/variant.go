package handler

import (
	"github.com/gin-gonic/gin"

	appvariant "github.com/checkproof/inventory/internal/application/variant"
	"github.com/checkproof/inventory/internal/interface/http/dto"
	"github.com/checkproof/inventory/pkg/response"
)

// VariantHandler 规格HTTP处理器
type VariantHandler struct {
	createVariantUseCase *appvariant.CreateVariantUseCase
	getVariantUseCase    *appvariant.GetVariantUseCase
	listVariantsUseCase  *appvariant.ListVariantsUseCase
	updateVariantUseCase *appvariant.UpdateVariantUseCase
	deleteVariantUseCase *appvariant.DeleteVariantUseCase
}

// NewVariantHandler 创建规格处理器
func NewVariantHandler(
	createVariantUseCase *appvariant.CreateVariantUseCase,
	getVariantUseCase *appvariant.GetVariantUseCase,
	listVariantsUseCase *appvariant.ListVariantsUseCase,
	updateVariantUseCase *appvariant.UpdateVariantUseCase,
	deleteVariantUseCase *appvariant.DeleteVariantUseCase,
) *VariantHandler {
	return &VariantHandler{
		createVariantUseCase: createVariantUseCase,
		getVariantUseCase:    getVariantUseCase,
		listVariantsUseCase:  listVariantsUseCase,
		updateVariantUseCase: updateVariantUseCase,
		deleteVariantUseCase: deleteVariantUseCase,
	}
}

// toVariantDTO 应用层响应 → HTTP DTO
func toVariantDTO(r *appvariant.VariantResponse) dto.VariantResponse {
	return dto.VariantResponse{
		ID:        r.ID,
		ItemID:    r.ItemID,
		Name:      r.Name,
		SKU:       r.SKU,
		Price:     r.Price,
		PriceYuan: dto.FormatPriceYuan(r.Price),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// CreateVariant 创建规格
// @Summary      创建规格
// @Description  在商品下创建规格,同时初始化空库存记录
// @Tags         规格
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.CreateVariantRequest true "规格信息"
// @Success      200 {object} response.Response{data=dto.VariantResponse}
// @Failure      200 {object} response.Response "商品不存在/SKU重复"
// @Router       /api/v1/items/{id}/variants [post]
func (h *VariantHandler) CreateVariant(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createVariantUseCase.Execute(c.Request.Context(), appvariant.CreateVariantRequest{
		ItemID: itemID,
		Name:   req.Name,
		SKU:    req.SKU,
		Price:  req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toVariantDTO(result)
	response.Success(c, &resp)
}

// ListVariants 规格列表
// @Summary      规格列表
// @Description  查询商品下的所有规格
// @Tags         规格
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ListVariantsResponse}
// @Failure      200 {object} response.Response "商品不存在"
// @Router       /api/v1/items/{id}/variants [get]
func (h *VariantHandler) ListVariants(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.listVariantsUseCase.Execute(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.ListVariantsResponse{List: make([]dto.VariantResponse, 0, len(result.Variants))}
	for _, v := range result.Variants {
		resp.List = append(resp.List, toVariantDTO(v))
	}
	response.Success(c, &resp)
}

// GetVariant 查询规格详情
// @Summary      查询规格详情
// @Tags         规格
// @Produce      json
// @Param        id path int true "规格ID"
// @Success      200 {object} response.Response{data=dto.VariantResponse}
// @Failure      200 {object} response.Response "规格不存在"
// @Router       /api/v1/variants/{id} [get]
func (h *VariantHandler) GetVariant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getVariantUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toVariantDTO(result)
	response.Success(c, &resp)
}

// UpdateVariant 更新规格
// @Summary      更新规格
// @Description  更新规格名称和价格(SKU不可变更)
// @Tags         规格
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "规格ID"
// @Param        request body dto.UpdateVariantRequest true "规格信息"
// @Success      200 {object} response.Response{data=dto.VariantResponse}
// @Failure      200 {object} response.Response "规格不存在"
// @Router       /api/v1/variants/{id} [put]
func (h *VariantHandler) UpdateVariant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// price为null表示不修改(应用层约定负数为不修改)
	price := int64(-1)
	if req.Price != nil {
		price = *req.Price
	}

	result, err := h.updateVariantUseCase.Execute(c.Request.Context(), appvariant.UpdateVariantRequest{
		ID:    id,
		Name:  req.Name,
		Price: price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toVariantDTO(result)
	response.Success(c, &resp)
}

// DeleteVariant 删除规格
// @Summary      删除规格
// @Description  删除规格及其库存记录(级联)
// @Tags         规格
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "规格ID"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "规格不存在"
// @Router       /api/v1/variants/{id} [delete]
func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.deleteVariantUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
