package api

import (
	"strconv"
	"strings"
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// IncomeHandler 收入处理器
type IncomeHandler struct{}

// NewIncomeHandler 创建收入处理器
func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

// CreateIncomeRequest 创建收入请求
type CreateIncomeRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"5000.00"`
	Source string  `json:"source" binding:"required" example:"Salary"`
	Date   string  `json:"date" example:"2025-01-15T09:00:00Z"` // 缺省为当前时间
}

// UpdateIncomeRequest 更新收入请求
type UpdateIncomeRequest struct {
	Amount float64 `json:"amount" binding:"omitempty,gt=0"`
	Source string  `json:"source"`
	Date   string  `json:"date"`
}

// IncomeListRequest 收入列表请求
type IncomeListRequest struct {
	StartDate string `form:"start_date" example:"2025-01-01"`
	EndDate   string `form:"end_date" example:"2025-12-31"`
}

// Create 创建收入
// @Summary 创建收入
// @Description 创建一条新的收入记录
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "收入信息"
// @Success 200 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Source = strings.TrimSpace(req.Source)
	if req.Source == "" {
		BadRequest(c, "收入来源不能为空")
		return
	}

	// 解析记账日期，缺省为当前时间
	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseISODate(req.Date)
		if err != nil {
			BadRequest(c, "日期格式错误，应为 ISO-8601")
			return
		}
		date = parsed
	}

	income := models.Income{
		UserID: userID,
		Amount: req.Amount,
		Source: req.Source,
		Date:   date,
	}

	if err := database.DB.Create(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建收入记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", income)
}

// List 获取收入列表
// @Summary 获取收入列表
// @Description 获取当前用户的收入记录列表，按记账日期倒序。时间参数非法时按无约束处理。
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (ISO-8601)"
// @Param end_date query string false "结束日期 (ISO-8601)"
// @Success 200 {object} Response{data=[]models.Income} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req IncomeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	query := database.DB.Model(&models.Income{}).Where("user_id = ?", userID)

	// 时间范围筛选，非法边界静默忽略
	if req.StartDate != "" {
		if t := parseDateQuery(req.StartDate); t != nil {
			query = query.Where("date >= ?", *t)
		}
	}
	if req.EndDate != "" {
		if t := parseDateQuery(req.EndDate); t != nil {
			query = query.Where("date <= ?", *t)
		}
	}

	var incomes []models.Income
	if err := query.Order("date DESC").Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, incomes)
}

// Get 获取单条收入记录
// @Summary 获取单条收入记录
// @Description 根据ID获取收入记录详情
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Success 200 {object} Response{data=models.Income} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, income)
}

// Update 更新收入记录
// @Summary 更新收入记录
// @Description 更新指定的收入记录
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Param request body UpdateIncomeRequest true "收入信息"
// @Success 200 {object} Response{data=models.Income} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 更新字段
	updates := make(map[string]interface{})
	if req.Amount > 0 {
		updates["amount"] = req.Amount
	}
	if req.Source != "" {
		updates["source"] = strings.TrimSpace(req.Source)
	}
	if req.Date != "" {
		date, err := parseISODate(req.Date)
		if err != nil {
			BadRequest(c, "日期格式错误，应为 ISO-8601")
			return
		}
		updates["date"] = date
	}

	if err := database.DB.Model(&income).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	// 重新获取更新后的记录
	database.DB.First(&income, income.ID)
	SuccessWithMessage(c, "更新成功", income)
}

// Delete 删除收入记录
// @Summary 删除收入记录
// @Description 删除指定的收入记录
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if err := database.DB.Delete(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
