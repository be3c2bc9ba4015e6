package store

import (
	"errors"
	"strings"

	"budgetbuddy/models"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
// 访问他人的记录同样返回此错误，对外不区分"不存在"与"无权限"
var ErrNotFound = errors.New("记录不存在")

// listOrder 统一排序：日期降序，同一天按 ID 降序（后插入的在前）
const listOrder = "date DESC, id DESC"

// MonthlyTotal 月度汇总行
type MonthlyTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// CategoryTotal 类别汇总行
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// Summary 总额 + 按类别汇总（类别按金额降序）
type Summary struct {
	Total      float64         `json:"total"`
	Categories []CategoryTotal `json:"categories"`
}

// ExportRow 导出投影，仅保留日期/类别/金额/备注
type ExportRow struct {
	Date     models.Date `json:"date"`
	Category string      `json:"category"`
	Amount   float64     `json:"amount"`
	Notes    string      `json:"notes"`
}

// ExpenseStore 消费记录数据访问层
// 连接通过构造函数显式传入；所有查询都以 userID 约束
type ExpenseStore struct {
	db *gorm.DB
}

// NewExpenseStore 创建消费记录数据访问层
func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// Add 新增一条消费记录，返回分配的 ID
// category 和 notes 去除首尾空白后入库
func (s *ExpenseStore) Add(userID uint, date models.Date, category string, amount float64, notes string) (uint, error) {
	expense := models.Expense{
		UserID:   userID,
		Date:     date,
		Category: strings.TrimSpace(category),
		Amount:   amount,
		Notes:    strings.TrimSpace(notes),
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return 0, err
	}
	return expense.ID, nil
}

// GetByID 按 ID 查询当前用户的消费记录，不存在时返回 ErrNotFound
func (s *ExpenseStore) GetByID(userID, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update 整行覆盖更新所有字段
// ID 不存在时返回 false 且不做任何修改
func (s *ExpenseStore) Update(userID, id uint, date models.Date, category string, amount float64, notes string) (bool, error) {
	var existing models.Expense
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	updates := map[string]interface{}{
		"date":     date,
		"category": strings.TrimSpace(category),
		"amount":   amount,
		"notes":    strings.TrimSpace(notes),
	}
	if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Delete 按 ID 删除当前用户的消费记录
// 幂等：删除不存在的 ID 不报错，返回是否确有删除
func (s *ExpenseStore) Delete(userID, id uint) (bool, error) {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListAll 当前用户的全部消费记录
func (s *ExpenseStore) ListAll(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Where("user_id = ?", userID).Order(listOrder).Find(&expenses).Error
	return expenses, err
}

// ListByCategory 按类别精确过滤
func (s *ExpenseStore) ListByCategory(userID uint, category string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Where("user_id = ? AND category = ?", userID, strings.TrimSpace(category)).
		Order(listOrder).Find(&expenses).Error
	return expenses, err
}

// ListByDateRange 按日期范围过滤（闭区间）
// 列内容全部是经过校验的零填充 ISO 字符串，BETWEEN 的字符串比较与日期比较一致
func (s *ExpenseStore) ListByDateRange(userID uint, start, end models.Date) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Order(listOrder).Find(&expenses).Error
	return expenses, err
}

// MonthlySummary 按年月前缀分组求和，月份降序
// SUBSTRING 写法在 MySQL 和 PostgreSQL 下行为一致
func (s *ExpenseStore) MonthlySummary(userID uint) ([]MonthlyTotal, error) {
	var rows []MonthlyTotal
	err := s.db.Model(&models.Expense{}).
		Select("SUBSTRING(date, 1, 7) AS month, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("SUBSTRING(date, 1, 7)").
		Order("month DESC").
		Scan(&rows).Error
	return rows, err
}

// CategorySummary 总额与按类别汇总，类别按金额降序
func (s *ExpenseStore) CategorySummary(userID uint) (*Summary, error) {
	var total float64
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error; err != nil {
		return nil, err
	}

	var categories []CategoryTotal
	if err := s.db.Model(&models.Expense{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Order("total DESC").
		Scan(&categories).Error; err != nil {
		return nil, err
	}

	return &Summary{Total: total, Categories: categories}, nil
}

// ListForExport 导出视图：与 ListAll 同序，仅日期/类别/金额/备注四列
func (s *ExpenseStore) ListForExport(userID uint) ([]ExportRow, error) {
	var rows []ExportRow
	err := s.db.Model(&models.Expense{}).
		Select("date, category, amount, notes").
		Where("user_id = ?", userID).
		Order(listOrder).
		Scan(&rows).Error
	return rows, err
}

// Categories 当前用户使用过的类别（去重、字典序）
func (s *ExpenseStore) Categories(userID uint) ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Expense{}).
		Distinct().
		Where("user_id = ?", userID).
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}
