package api

import (
	"errors"
	"strconv"
	"strings"

	"budgetbuddy/config"
	"budgetbuddy/middleware"
	"budgetbuddy/models"
	"budgetbuddy/store"
	"budgetbuddy/validate"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct {
	expenses *store.ExpenseStore
}

// NewExpenseHandler 创建支出记录处理器
func NewExpenseHandler(expenses *store.ExpenseStore) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// ExpenseRequest 创建/更新支出记录请求，更新为整行覆盖
type ExpenseRequest struct {
	Date     string   `json:"date" binding:"required" example:"2024-01-15"`
	Category string   `json:"category" binding:"required" example:"餐饮"`
	Amount   *float64 `json:"amount" binding:"required" example:"99.99"`
	Notes    string   `json:"notes" example:"午餐"`
}

// 校验请求体，返回规范化后的字段
func (h *ExpenseHandler) validateRequest(c *gin.Context, req *ExpenseRequest) (date models.Date, category string, amount float64, ok bool) {
	date, err := validate.Date(req.Date)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	amount, err = validate.AmountValue(*req.Amount)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	category = strings.TrimSpace(req.Category)
	if category == "" {
		BadRequest(c, "类别不能为空")
		return
	}

	return date, category, amount, true
}

// Create 创建支出记录
// @Summary 创建支出记录
// @Description 为当前用户创建一条支出记录
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "支出信息"
// @Success 200 {object} Response "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	date, category, amount, ok := h.validateRequest(c, &req)
	if !ok {
		return
	}

	id, err := h.expenses.Add(userID, date, category, amount, req.Notes)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "创建支出记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", gin.H{"id": id})
}

// List 查询支出记录
// @Summary 查询支出记录
// @Description 查询当前用户的支出记录，可按类别或日期范围过滤，按日期倒序返回
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category query string false "按类别过滤"
// @Param start_date query string false "开始日期 (2024-01-01)，与 end_date 成对出现"
// @Param end_date query string false "结束日期 (2024-12-31)，与 start_date 成对出现"
// @Success 200 {object} Response{data=ListResponse} "查询成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	category := strings.TrimSpace(c.Query("category"))
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")

	var (
		list []models.Expense
		err  error
	)

	switch {
	case startStr != "" || endStr != "":
		if startStr == "" || endStr == "" {
			BadRequest(c, "请同时提供 start_date 和 end_date")
			return
		}
		start, perr := validate.Date(startStr)
		if perr != nil {
			BadRequest(c, perr.Error())
			return
		}
		end, perr := validate.Date(endStr)
		if perr != nil {
			BadRequest(c, perr.Error())
			return
		}
		list, err = h.expenses.ListByDateRange(userID, start, end)
	case category != "":
		list, err = h.expenses.ListByCategory(userID, category)
	default:
		list, err = h.expenses.ListAll(userID)
	}

	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "查询支出记录失败"))
		return
	}

	Success(c, ListResponse{Total: len(list), List: list})
}

// Get 获取单条支出记录
// @Summary 获取支出记录
// @Description 按 ID 获取当前用户的一条支出记录
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 400 {object} Response "ID 格式错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	idParam, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 格式错误")
		return
	}
	id := uint(idParam)

	expense, err := h.expenses.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "记录不存在")
			return
		}
		InternalError(c, config.SafeErrorMessage(err, "查询支出记录失败"))
		return
	}

	Success(c, expense)
}

// Update 更新支出记录
// @Summary 更新支出记录
// @Description 整行覆盖更新当前用户的一条支出记录
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Param request body ExpenseRequest true "支出信息"
// @Success 200 {object} Response "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	idParam, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 格式错误")
		return
	}
	id := uint(idParam)

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	date, category, amount, ok := h.validateRequest(c, &req)
	if !ok {
		return
	}

	updated, err := h.expenses.Update(userID, id, date, category, amount, req.Notes)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "更新支出记录失败"))
		return
	}
	if !updated {
		NotFound(c, "记录不存在")
		return
	}

	SuccessWithMessage(c, "更新成功", gin.H{"id": id})
}

// Delete 删除支出记录
// @Summary 删除支出记录
// @Description 删除当前用户的一条支出记录
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	idParam, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "ID 格式错误")
		return
	}
	id := uint(idParam)

	deleted, err := h.expenses.Delete(userID, id)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "删除支出记录失败"))
		return
	}
	if !deleted {
		NotFound(c, "记录不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// Categories 获取类别列表
// @Summary 获取类别列表
// @Description 获取当前用户已使用过的支出类别
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/categories [get]
func (h *ExpenseHandler) Categories(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	categories, err := h.expenses.Categories(userID)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "查询类别失败"))
		return
	}

	Success(c, categories)
}
