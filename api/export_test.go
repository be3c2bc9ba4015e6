package api

import (
	"encoding/json"
	"strings"
	"testing"

	"budgetbuddy/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newExportRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(fakeAuth(1))

	h := NewExportHandler(store.NewExpenseStore(db))
	router.GET("/export/csv", h.ExportCSV)
	router.GET("/export/excel", h.ExportExcel)
	router.GET("/export/json", h.ExportJSON)
	return router
}

func exportRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"date", "category", "amount", "notes"}).
		AddRow("2024-01-16", "交通", 5.0, "").
		AddRow("2024-01-15", "餐饮", 99.99, "午餐")
}

func TestExportHandler_CSV(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT date, category, amount, notes FROM `expenses`").
		WithArgs(1).
		WillReturnRows(exportRows())

	router := newExportRouter(db)

	w := doJSON(router, "GET", "/export/csv", "")

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "attachment; filename=expenses.csv", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	body := w.Body.String()
	// BOM 前缀
	require.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(body, "\xEF\xBB\xBF")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Category,Amount,Notes", strings.TrimSpace(lines[0]))
	assert.Equal(t, "2024-01-16,交通,5.00,", strings.TrimSpace(lines[1]))
	assert.Equal(t, "2024-01-15,餐饮,99.99,午餐", strings.TrimSpace(lines[2]))
}

func TestExportHandler_CSV_Empty(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT date, category, amount, notes FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"date", "category", "amount", "notes"}))

	router := newExportRouter(db)

	w := doJSON(router, "GET", "/export/csv", "")

	// 空数据仍然返回表头
	assert.Equal(t, 200, w.Code)
	body := strings.TrimPrefix(w.Body.String(), "\xEF\xBB\xBF")
	assert.Equal(t, "Date,Category,Amount,Notes", strings.TrimSpace(body))
}

func TestExportHandler_Excel(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT date, category, amount, notes FROM `expenses`").
		WithArgs(1).
		WillReturnRows(exportRows())

	router := newExportRouter(db)

	w := doJSON(router, "GET", "/export/excel", "")

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "attachment; filename=expenses.xlsx", w.Header().Get("Content-Disposition"))
	// xlsx 是 zip 容器，魔数 PK
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestExportHandler_JSON(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT date, category, amount, notes FROM `expenses`").
		WithArgs(1).
		WillReturnRows(exportRows())

	router := newExportRouter(db)

	w := doJSON(router, "GET", "/export/json", "")

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_count"])
	assert.InDelta(t, 104.99, data["total_amount"], 0.001)
}
