package api

import (
	"time"

	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 交易处理器
type TransactionHandler struct {
	svc *service.BudgetService
}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler(svc *service.BudgetService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type CreateTransactionRequest struct {
	Name   string   `json:"name" binding:"required" example:"Rent"`
	Amount *float64 `json:"amount" binding:"required" example:"400"`
	Date   string   `json:"date" example:"2024-03-01"`
	Type   string   `json:"type" binding:"required,oneof=income needs wants savings" example:"needs"`
}

// UpdateTransactionRequest 未提交的字段保持原值
type UpdateTransactionRequest struct {
	Name   *string  `json:"name" example:"Rent"`
	Amount *float64 `json:"amount" example:"500"`
	Date   string   `json:"date" example:"2024-03-01"`
	Type   *string  `json:"type" binding:"omitempty,oneof=income needs wants savings" example:"needs"`
}

// List 获取月份下的交易
// @Summary 获取交易列表
// @Description 获取指定月份的全部交易
// @Tags 交易
// @Produce json
// @Param year path int true "年份"
// @Param month path string true "月份名称"
// @Success 200 {object} Response{data=[]models.Transaction} "获取成功"
// @Failure 404 {object} Response "月份不存在"
// @Router /api/months/{year}/{month}/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	year, month, ok := monthKey(c)
	if !ok {
		return
	}
	list, err := h.svc.ListTransactions(c.Request.Context(), year, month)
	if err != nil {
		handleError(c, err, "Failed to fetch transactions")
		return
	}
	Success(c, list)
}

// Create 新增交易
// @Summary 新增交易
// @Description 新增交易并更新月份汇总。金额取绝对值，收入为正，其余类型为负
// @Tags 交易
// @Accept json
// @Produce json
// @Param year path int true "年份"
// @Param month path string true "月份名称"
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 201 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "月份不存在"
// @Router /api/months/{year}/{month}/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	year, month, ok := monthKey(c)
	if !ok {
		return
	}
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	var date time.Time
	if req.Date != "" {
		t, err := parseDate(req.Date)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		date = t
	}

	tx, err := h.svc.CreateTransaction(c.Request.Context(), year, month, service.TransactionInput{
		Name:   req.Name,
		Amount: *req.Amount,
		Date:   date,
		Type:   req.Type,
	})
	if err != nil {
		handleError(c, err, "Failed to create transaction")
		return
	}
	Created(c, "Transaction created", tx)
}

// Update 修改交易
// @Summary 修改交易
// @Description 修改交易并重新计算月份汇总：先撤销旧交易的贡献，再按新类型和金额计入
// @Tags 交易
// @Accept json
// @Produce json
// @Param year path int true "年份"
// @Param month path string true "月份名称"
// @Param id path int true "交易ID"
// @Param request body UpdateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "修改成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "月份或交易不存在"
// @Router /api/months/{year}/{month}/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	year, month, ok := monthKey(c)
	if !ok {
		return
	}
	id, ok := transactionID(c)
	if !ok {
		return
	}
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	fields := models.TransactionFields{Name: req.Name, Amount: req.Amount}
	if req.Type != nil {
		typ := models.TransactionType(*req.Type)
		fields.Type = &typ
	}
	if req.Date != "" {
		t, err := parseDate(req.Date)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		fields.Date = &t
	}

	tx, err := h.svc.UpdateTransaction(c.Request.Context(), year, month, id, fields)
	if err != nil {
		handleError(c, err, "Failed to update transaction")
		return
	}
	SuccessWithMessage(c, "Transaction updated", tx)
}

// Delete 删除交易
// @Summary 删除交易
// @Description 删除交易并撤销其对月份汇总的贡献
// @Tags 交易
// @Produce json
// @Param year path int true "年份"
// @Param month path string true "月份名称"
// @Param id path int true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "月份或交易不存在"
// @Router /api/months/{year}/{month}/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	year, month, ok := monthKey(c)
	if !ok {
		return
	}
	id, ok := transactionID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTransaction(c.Request.Context(), year, month, id); err != nil {
		handleError(c, err, "Failed to delete transaction")
		return
	}
	SuccessWithMessage(c, "Transaction deleted", nil)
}
