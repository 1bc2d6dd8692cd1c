package handler

import (
	"github.com/gin-gonic/gin"

	appstock "github.com/checkproof/inventory/internal/application/stock"
	"github.com/checkproof/inventory/internal/domain/stock"
	"github.com/checkproof/inventory/internal/interface/http/dto"
	"github.com/checkproof/inventory/pkg/response"
)

// StockHandler 库存HTTP处理器
// 六种流转共用一个apply入口,操作类型由路由决定
type StockHandler struct {
	applyTransitionUseCase *appstock.ApplyTransitionUseCase
	getStockUseCase        *appstock.GetStockUseCase
	listMovementsUseCase   *appstock.ListMovementsUseCase
}

// NewStockHandler 创建库存处理器
func NewStockHandler(
	applyTransitionUseCase *appstock.ApplyTransitionUseCase,
	getStockUseCase *appstock.GetStockUseCase,
	listMovementsUseCase *appstock.ListMovementsUseCase,
) *StockHandler {
	return &StockHandler{
		applyTransitionUseCase: applyTransitionUseCase,
		getStockUseCase:        getStockUseCase,
		listMovementsUseCase:   listMovementsUseCase,
	}
}

// toStockDTO 应用层视图 → HTTP DTO
func toStockDTO(v *appstock.StockView) *dto.StockResponse {
	return &dto.StockResponse{
		VariantID: v.VariantID,
		Available: v.Available,
		Allocated: v.Allocated,
		Sellable:  v.Sellable,
		UpdatedAt: v.UpdatedAt,
	}
}

// apply 库存流转通用入口
// 1. 路径参数解析规格ID
// 2. 请求体绑定数量(binding:gt=0保证正整数)
// 3. 调用流转用例
func (h *StockHandler) apply(c *gin.Context, op stock.Op) {
	variantID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.StockQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.applyTransitionUseCase.Execute(c.Request.Context(), appstock.ApplyTransitionRequest{
		VariantID: variantID,
		Op:        op,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toStockDTO(result))
}

// SetStock 设置库存(盘点覆盖)
// @Summary      设置库存
// @Description  人工盘点覆盖:在库数量设为指定值,未决预占清零
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "规格ID"
// @Param        request body dto.StockQuantityRequest true "盘点数量"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Failure      200 {object} response.Response "规格不存在/并发冲突"
// @Router       /api/v1/variants/{id}/stock [put]
func (h *StockHandler) SetStock(c *gin.Context) {
	h.apply(c, stock.OpSetManual)
}

// IncreaseStock 增加库存(补货)
// @Summary      增加库存
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "规格ID"
// @Param        request body dto.StockQuantityRequest true "补货数量"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Router       /api/v1/variants/{id}/stock/increase [post]
func (h *StockHandler) IncreaseStock(c *gin.Context) {
	h.apply(c, stock.OpIncrease)
}

// DecreaseStock 扣减库存(报损、盘亏)
// @Summary      扣减库存
// @Description  只能消耗可售数量,超出返回库存不足
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "规格ID"
// @Param        request body dto.StockQuantityRequest true "扣减数量"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Failure      200 {object} response.Response "库存不足/记录不存在"
// @Router       /api/v1/variants/{id}/stock/decrease [post]
func (h *StockHandler) DecreaseStock(c *gin.Context) {
	h.apply(c, stock.OpDecrease)
}

// ReserveStock 预占库存(下单)
// @Summary      预占库存
// @Description  标记预占,货仍在库;与扣减共用可售数量准入检查
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "规格ID"
// @Param        request body dto.StockQuantityRequest true "预占数量"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Failure      200 {object} response.Response "库存不足/记录不存在"
// @Router       /api/v1/variants/{id}/stock/reserve [post]
func (h *StockHandler) ReserveStock(c *gin.Context) {
	h.apply(c, stock.OpReserve)
}

// CommitStock 提交预占(支付成功)
// @Summary      提交预占
// @Description  预占落定,货真正出库;超过已预占数量返回非法流转
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "规格ID"
// @Param        request body dto.StockQuantityRequest true "提交数量"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Failure      200 {object} response.Response "非法流转/记录不存在"
// @Router       /api/v1/variants/{id}/stock/commit [post]
func (h *StockHandler) CommitStock(c *gin.Context) {
	h.apply(c, stock.OpCommit)
}

// ReleaseStock 释放预占(订单取消)
// @Summary      释放预占
// @Description  预占取消,货回到可售池;超过已预占数量返回非法流转
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "规格ID"
// @Param        request body dto.StockQuantityRequest true "释放数量"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Failure      200 {object} response.Response "非法流转/记录不存在"
// @Router       /api/v1/variants/{id}/stock/release [post]
func (h *StockHandler) ReleaseStock(c *gin.Context) {
	h.apply(c, stock.OpRelease)
}

// GetStock 查询库存
// @Summary      查询库存
// @Description  返回库存快照(带短TTL缓存);规格存在但无记录时返回全零
// @Tags         库存
// @Produce      json
// @Param        id path int true "规格ID"
// @Success      200 {object} response.Response{data=dto.StockResponse}
// @Failure      200 {object} response.Response "规格不存在"
// @Router       /api/v1/variants/{id}/stock [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	variantID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getStockUseCase.Execute(c.Request.Context(), variantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toStockDTO(result))
}

// ListMovements 库存流水
// @Summary      库存流水
// @Description  按时间倒序分页查询某规格的库存流水(对账、排障)
// @Tags         库存
// @Produce      json
// @Param        id path int true "规格ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      200 {object} response.Response "规格不存在"
// @Router       /api/v1/variants/{id}/stock/movements [get]
func (h *StockHandler) ListMovements(c *gin.Context) {
	variantID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ListMovementsRequest
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

	result, err := h.listMovementsUseCase.Execute(c.Request.Context(), appstock.ListMovementsRequest{
		VariantID: variantID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.MovementResponse, 0, len(result.Movements))
	for _, mv := range result.Movements {
		list = append(list, dto.MovementResponse{
			ID:              mv.ID,
			VariantID:       mv.VariantID,
			Op:              mv.Op,
			Quantity:        mv.Quantity,
			BeforeAvailable: mv.BeforeAvailable,
			BeforeAllocated: mv.BeforeAllocated,
			AfterAvailable:  mv.AfterAvailable,
			AfterAllocated:  mv.AfterAllocated,
			Remark:          mv.Remark,
			CreatedAt:       mv.CreatedAt,
		})
	}
	response.SuccessWithPage(c, list, result.Total, req.Page, req.PageSize)
}
