package api

import (
	"budgetbuddy/config"
	"budgetbuddy/middleware"
	"budgetbuddy/store"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 统计处理器
type SummaryHandler struct {
	expenses *store.ExpenseStore
}

// NewSummaryHandler 创建统计处理器
func NewSummaryHandler(expenses *store.ExpenseStore) *SummaryHandler {
	return &SummaryHandler{expenses: expenses}
}

// Monthly 按月汇总
// @Summary 按月汇总支出
// @Description 按月份汇总当前用户的支出总额，月份倒序返回
// @Tags 统计
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]store.MonthlyTotal} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/monthly [get]
func (h *SummaryHandler) Monthly(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	totals, err := h.expenses.MonthlySummary(userID)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "统计失败"))
		return
	}

	Success(c, totals)
}

// Summary 总览统计
// @Summary 支出总览
// @Description 统计当前用户的总支出以及按类别的分布
// @Tags 统计
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=store.Summary} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/summary [get]
func (h *SummaryHandler) Summary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	summary, err := h.expenses.CategorySummary(userID)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "统计失败"))
		return
	}

	Success(c, summary)
}
