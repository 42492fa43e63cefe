package api

import (
	"budget/service"

	"github.com/gin-gonic/gin"
)

// MonthHandler 月份处理器
type MonthHandler struct {
	svc *service.BudgetService
}

// NewMonthHandler 创建月份处理器
func NewMonthHandler(svc *service.BudgetService) *MonthHandler {
	return &MonthHandler{svc: svc}
}

type CreateMonthRequest struct {
	Year  int    `json:"year" binding:"required,min=2000,max=2100" example:"2024"`
	Month string `json:"month" binding:"required" example:"March"`
}

// UpdateMonthRequest 仅允许修改年份与月份名称，其余字段（汇总）忽略
type UpdateMonthRequest struct {
	Year  *int    `json:"year" binding:"omitempty,min=2000,max=2100" example:"2024"`
	Month *string `json:"month" example:"April"`
}

// DeleteMonthResponse 删除月份结果
type DeleteMonthResponse struct {
	DeletedTransactions int64 `json:"deleted_transactions" example:"12"`
}

// List 获取所有月份
// @Summary 获取月份列表
// @Description 获取所有月份及其交易，按年份、月份顺序排列
// @Tags 月份
// @Produce json
// @Success 200 {object} Response{data=[]models.Month} "获取成功"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/months [get]
func (h *MonthHandler) List(c *gin.Context) {
	months, err := h.svc.ListMonths(c.Request.Context())
	if err != nil {
		handleError(c, err, "Failed to fetch months")
		return
	}
	Success(c, months)
}

// Get 获取单个月份
// @Summary 获取月份详情
// @Description 根据年份和月份名称（不区分大小写）获取月份及其交易
// @Tags 月份
// @Produce json
// @Param year path int true "年份"
// @Param month path string true "月份名称，如 march"
// @Success 200 {object} Response{data=models.Month} "获取成功"
// @Failure 400 {object} Response "年份格式错误"
// @Failure 404 {object} Response "月份不存在"
// @Router /api/months/{year}/{month} [get]
func (h *MonthHandler) Get(c *gin.Context) {
	year, month, ok := monthKey(c)
	if !ok {
		return
	}
	m, err := h.svc.GetMonth(c.Request.Context(), year, month)
	if err != nil {
		handleError(c, err, "Failed to fetch month")
		return
	}
	Success(c, m)
}

// Create 创建月份
// @Summary 创建月份
// @Description 创建新的月份，月份名称自动规范化为首字母大写；(year, month) 已存在时返回 400
// @Tags 月份
// @Accept json
// @Produce json
// @Param request body CreateMonthRequest true "月份信息"
// @Success 201 {object} Response{data=models.Month} "创建成功"
// @Failure 400 {object} Response "参数错误或月份已存在"
// @Router /api/months [post]
func (h *MonthHandler) Create(c *gin.Context) {
	var req CreateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	m, err := h.svc.CreateMonth(c.Request.Context(), service.MonthInput{Year: req.Year, Month: req.Month})
	if err != nil {
		handleError(c, err, "Failed to create month")
		return
	}
	Created(c, "Month created", m)
}

// Update 修改月份
// @Summary 修改月份
// @Description 修改月份的年份或名称，汇总字段不可直接修改
// @Tags 月份
// @Accept json
// @Produce json
// @Param year path int true "年份"
// @Param month path string true "月份名称"
// @Param request body UpdateMonthRequest true "新的年份/月份"
// @Success 200 {object} Response{data=models.Month} "修改成功"
// @Failure 400 {object} Response "参数错误或目标月份已存在"
// @Failure 404 {object} Response "月份不存在"
// @Router /api/months/{year}/{month} [put]
func (h *MonthHandler) Update(c *gin.Context) {
	year, month, ok := monthKey(c)
	if !ok {
		return
	}
	var req UpdateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	m, err := h.svc.UpdateMonth(c.Request.Context(), year, month, service.MonthUpdate{Year: req.Year, Month: req.Month})
	if err != nil {
		handleError(c, err, "Failed to update month")
		return
	}
	SuccessWithMessage(c, "Month updated", m)
}

// Delete 删除月份
// @Summary 删除月份
// @Description 删除月份及其全部交易，两者在同一事务中完成
// @Tags 月份
// @Produce json
// @Param year path int true "年份"
// @Param month path string true "月份名称"
// @Success 200 {object} Response{data=DeleteMonthResponse} "删除成功"
// @Failure 404 {object} Response "月份不存在"
// @Failure 500 {object} Response "级联删除失败，已回滚"
// @Router /api/months/{year}/{month} [delete]
func (h *MonthHandler) Delete(c *gin.Context) {
	year, month, ok := monthKey(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeleteMonth(c.Request.Context(), year, month)
	if err != nil {
		handleError(c, err, "Failed to delete month and its transactions")
		return
	}
	SuccessWithMessage(c, "Month and associated transactions deleted", DeleteMonthResponse{DeletedTransactions: deleted})
}

// Health 获取 50/30/20 健康度
// @Summary 获取月度预算健康度
// @Description 按 50/30/20 规则计算各分类占收入比例并给出提示，仅用于展示
// @Tags 月份
// @Produce json
// @Param year path int true "年份"
// @Param month path string true "月份名称"
// @Success 200 {object} Response{data=service.BudgetHealth} "获取成功"
// @Failure 404 {object} Response "月份不存在"
// @Router /api/months/{year}/{month}/health [get]
func (h *MonthHandler) Health(c *gin.Context) {
	year, month, ok := monthKey(c)
	if !ok {
		return
	}
	health, err := h.svc.Health(c.Request.Context(), year, month)
	if err != nil {
		handleError(c, err, "Failed to compute budget health")
		return
	}
	Success(c, health)
}

// Reconcile 手动触发一致性检查
// @Summary 汇总一致性检查
// @Description 根据交易重新计算所有月份的汇总字段，修复不一致的记录
// @Tags 维护
// @Produce json
// @Success 200 {object} Response{data=service.ReconcileReport} "检查完成"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/integrity/reconcile [post]
func (h *MonthHandler) Reconcile(c *gin.Context) {
	report, err := h.svc.Reconcile(c.Request.Context())
	if err != nil {
		handleError(c, err, "Failed to reconcile month aggregates")
		return
	}
	Success(c, report)
}
