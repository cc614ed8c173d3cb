package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsHandler_GetDashboard(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 聚合查询按固定顺序执行：本月四项、往月四项、全量四项
	sums := []float64{
		2000, 500, 300, 0, // 本月收入、消费、存入、取出
		1000, 200, 100, 50, // 往月累计
		3000, 700, 400, 50, // 全量累计
	}
	for _, total := range sums {
		mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(total))
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard", NewAnalyticsHandler().GetDashboard)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	current := data["current_month"].(map[string]interface{})
	allTime := data["all_time"].(map[string]interface{})

	// 往月结余 1000 - 200 - (100 - 50) = 750
	carryover := current["carryover"].(map[string]interface{})
	assert.Equal(t, 750.0, carryover["amount"])
	// 可用资金 750 + 2000
	assert.Equal(t, 2750.0, current["available_funds"])
	// 本月剩余 2750 - 500 - 300
	assert.Equal(t, 1950.0, current["remaining_balance"])
	assert.Equal(t, "Saved", current["status"])
	assert.Equal(t, 1950.0, allTime["remaining_balance"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_GetCategoryBreakdown(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT category, SUM").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("Rent", 40.0).
			AddRow("Food", 60.0))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/category-breakdown", NewAnalyticsHandler().GetCategoryBreakdown)

	req := httptest.NewRequest("GET", "/category-breakdown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	breakdown := data["breakdown"].([]interface{})
	require.Len(t, breakdown, 2)

	first := breakdown[0].(map[string]interface{})
	assert.Equal(t, "Food", first["category"])
	assert.Equal(t, 60.0, first["percentage"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_GetMonthlyTrend_Empty(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 三个按月分组查询
	mock.ExpectQuery("SELECT YEAR\\(date\\)").
		WillReturnRows(sqlmock.NewRows([]string{"year", "month", "total"}))
	mock.ExpectQuery("SELECT YEAR\\(date\\)").
		WillReturnRows(sqlmock.NewRows([]string{"year", "month", "total"}))
	mock.ExpectQuery("SELECT YEAR\\(date\\)").
		WillReturnRows(sqlmock.NewRows([]string{"year", "month", "action", "total"}))
	// 窗口前的四项累计
	for i := 0; i < 4; i++ {
		mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(0))
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/monthly-trend", NewAnalyticsHandler().GetMonthlyTrend)

	req := httptest.NewRequest("GET", "/monthly-trend", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	trend := data["trend"].([]interface{})
	// 无流水也返回完整的 6 个月
	require.Len(t, trend, 6)
	for _, entry := range trend {
		e := entry.(map[string]interface{})
		assert.Equal(t, 0.0, e["leftover"])
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_GetInsights(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 本月收入、消费，上月收入、消费
	for _, total := range []float64{2000, 500, 1000, 500} {
		mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sumRow(total))
	}
	// 本月按类别分组
	mock.ExpectQuery("SELECT category, SUM").
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("Food", 500.0))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/insights", NewAnalyticsHandler().GetInsights)

	req := httptest.NewRequest("GET", "/insights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	insights := data["insights"].([]interface{})
	require.NotEmpty(t, insights)
	// 储蓄率 75% 对比上月 50%
	assert.Equal(t, "Great job! You saved 25.0% more this month compared to last month.", insights[0])
	require.NoError(t, mock.ExpectationsWereMet())
}
