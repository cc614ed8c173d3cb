package api

import (
	"time"

	"fintrack/analytics"
	"fintrack/database"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 统计分析处理器
type AnalyticsHandler struct{}

// NewAnalyticsHandler 创建统计分析处理器
func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

// GetDashboard 获取仪表盘汇总
// @Summary 获取仪表盘汇总
// @Description 获取当月与全量的收支、储蓄和结余汇总。当月口径为本自然月（UTC），往月结余为本月之前的全部收入减消费减净储蓄转移。
// @Tags 统计分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=analytics.Dashboard} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	dashboard := analytics.GetDashboard(database.DB, userID, time.Now().UTC())
	Success(c, dashboard)
}

// GetCategoryBreakdown 获取类别消费占比
// @Summary 获取类别消费占比
// @Description 按类别统计消费金额与占比，按金额降序。时间参数非法时按无约束处理。
// @Tags 统计分析
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (ISO-8601)"
// @Param end_date query string false "结束日期 (ISO-8601)"
// @Success 200 {object} Response "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/category-breakdown [get]
func (h *AnalyticsHandler) GetCategoryBreakdown(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	// 非法边界静默忽略，与列表接口保持一致
	start := parseDateQuery(c.Query("start_date"))
	end := parseDateQuery(c.Query("end_date"))

	breakdown := analytics.GetCategoryBreakdown(database.DB, userID, start, end)
	Success(c, gin.H{"breakdown": breakdown})
}

// GetMonthlyTrend 获取月度趋势
// @Summary 获取月度趋势
// @Description 获取近 6 个月（当月 + 前 5 个自然月）的收入、消费、储蓄和滚动结余，最早的月份在前
// @Tags 统计分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/monthly-trend [get]
func (h *AnalyticsHandler) GetMonthlyTrend(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	trend := analytics.GetMonthlyTrend(database.DB, userID, time.Now().UTC())
	Success(c, gin.H{"trend": trend})
}

// GetInsights 获取消费洞察
// @Summary 获取消费洞察
// @Description 基于近两个月的收支情况生成文字洞察，每次请求重新计算
// @Tags 统计分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/insights [get]
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	insights := analytics.GetInsights(database.DB, userID, time.Now().UTC())
	Success(c, gin.H{"insights": insights})
}
