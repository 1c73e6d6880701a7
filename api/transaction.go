package api

import (
	"net/http"

	"fintrack/aggregate"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 收支记录处理器
type TransactionHandler struct {
	store *store.TransactionStore
}

// NewTransactionHandler 创建收支记录处理器
func NewTransactionHandler(s *store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{store: s}
}

// CreateTransactionRequest 创建收支记录请求
type CreateTransactionRequest struct {
	Amount      *float64    `json:"amount" binding:"required" example:"-12.5"`
	Date        models.Date `json:"date" swaggertype:"string" example:"2024-01-15"`
	Description string      `json:"description" binding:"required" example:"午餐"`
	Category    *string     `json:"category" example:"餐饮"`
}

// UpdateTransactionRequest 更新收支记录请求，未提供的字段保持不变
type UpdateTransactionRequest struct {
	Amount      *float64     `json:"amount" example:"-12.5"`
	Date        *models.Date `json:"date" swaggertype:"string" example:"2024-01-15"`
	Description *string      `json:"description" example:"午餐"`
	Category    *string      `json:"category" example:"餐饮"`
}

// List 获取全部收支记录
// @Summary 获取收支记录列表
// @Description 返回全部收支记录，按日期倒序，不分页
// @Tags 收支记录
// @Produce json
// @Success 200 {array} models.Transaction "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "查询失败")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create 创建收支记录
// @Summary 创建收支记录
// @Description amount、date、description 必填，category 可选
// @Tags 收支记录
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "收支记录信息"
// @Success 201 {object} models.Transaction "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	txn, err := h.store.Create(c.Request.Context(), store.CreateInput{
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondStoreError(c, err, "创建失败")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// Update 更新收支记录
// @Summary 更新收支记录
// @Description 替换请求中提供的字段，返回更新后的记录
// @Tags 收支记录
// @Accept json
// @Produce json
// @Param id path string true "记录ID"
// @Param request body UpdateTransactionRequest true "收支记录信息"
// @Success 200 {object} models.Transaction "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	txn, err := h.store.Update(c.Request.Context(), c.Param("id"), store.UpdateInput{
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondStoreError(c, err, "更新失败")
		return
	}
	c.JSON(http.StatusOK, txn)
}

// Delete 删除收支记录
// @Summary 删除收支记录
// @Description 记录不存在时同样返回 204
// @Tags 收支记录
// @Param id path string true "记录ID"
// @Success 204 "删除成功"
// @Failure 500 {object} Response "删除失败"
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "删除失败")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetStatistics 获取看板统计
// @Summary 获取看板统计
// @Description 返回按月、按描述、按日期累计三组汇总数据，供柱状图、饼图、折线图使用
// @Tags 统计
// @Produce json
// @Success 200 {object} Response{data=aggregate.Summary} "获取成功"
// @Failure 500 {object} Response "查询失败"
// @Router /api/transactions/stats [get]
func (h *TransactionHandler) GetStatistics(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "查询失败")
		return
	}
	Success(c, aggregate.Summarize(list))
}
