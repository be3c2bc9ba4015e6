package api

import (
	"encoding/json"
	"testing"

	"budgetbuddy/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSummaryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(fakeAuth(1))

	h := NewSummaryHandler(store.NewExpenseStore(db))
	router.GET("/statistics/monthly", h.Monthly)
	router.GET("/statistics/summary", h.Summary)
	return router
}

func TestSummaryHandler_Monthly(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"month", "total"}).
		AddRow("2024-02", 3.0).
		AddRow("2024-01", 15.5)
	mock.ExpectQuery("SELECT SUBSTRING\\(date, 1, 7\\) AS month, SUM\\(amount\\) AS total FROM `expenses`").
		WithArgs(1).
		WillReturnRows(rows)

	router := newSummaryRouter(db)

	w := doJSON(router, "GET", "/statistics/monthly", "")

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 2)

	// 月份降序
	first := data[0].(map[string]interface{})
	assert.Equal(t, "2024-02", first["month"])
	assert.Equal(t, 3.0, first["total"])
	second := data[1].(map[string]interface{})
	assert.Equal(t, "2024-01", second["month"])
	assert.Equal(t, 15.5, second["total"])
}

func TestSummaryHandler_Summary(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(118.5))

	mock.ExpectQuery("SELECT category, SUM\\(amount\\) AS total, COUNT\\(\\*\\) AS count FROM `expenses`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total", "count"}).
			AddRow("餐饮", 99.99, 2).
			AddRow("交通", 18.51, 3))

	router := newSummaryRouter(db)

	w := doJSON(router, "GET", "/statistics/summary", "")

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 118.5, data["total"])
	categories := data["categories"].([]interface{})
	require.Len(t, categories, 2)
	top := categories[0].(map[string]interface{})
	assert.Equal(t, "餐饮", top["category"])
}
