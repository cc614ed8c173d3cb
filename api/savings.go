package api

import (
	"errors"
	"strings"
	"time"

	"fintrack/analytics"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SavingsHandler 储蓄处理器
type SavingsHandler struct{}

// NewSavingsHandler 创建储蓄处理器
func NewSavingsHandler() *SavingsHandler {
	return &SavingsHandler{}
}

// errInsufficientBalance 余额不足，取出金额超过全量储蓄余额
var errInsufficientBalance = errors.New("储蓄余额不足")

// CreateSavingsRequest 创建储蓄记录请求
type CreateSavingsRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"300.00"`
	Action      string  `json:"action" binding:"required" example:"deposit"` // deposit / withdraw
	Description string  `json:"description" example:"Emergency fund"`
	Date        string  `json:"date" example:"2025-01-15T10:00:00Z"` // 缺省为当前时间
}

// SavingsListResponse 储蓄列表响应
type SavingsListResponse struct {
	Summary      analytics.SavingsOverview   `json:"summary"`
	Transactions []models.SavingsTransaction `json:"transactions"`
}

// List 获取储蓄记录和汇总
// @Summary 获取储蓄记录
// @Description 获取当前用户的储蓄存取记录（按记账日期倒序）以及全量/当月汇总
// @Tags 储蓄
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=SavingsListResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings [get]
func (h *SavingsHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var transactions []models.SavingsTransaction
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	summary := analytics.GetSavingsOverview(database.DB, userID, time.Now().UTC())

	Success(c, SavingsListResponse{
		Summary:      summary,
		Transactions: transactions,
	})
}

// Create 创建储蓄记录
// @Summary 创建储蓄记录
// @Description 记录一笔储蓄存入或取出。取出金额不能超过当前全量储蓄余额，余额校验与写入在同一事务内完成。
// @Tags 储蓄
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSavingsRequest true "储蓄记录信息"
// @Success 200 {object} Response{data=models.SavingsTransaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误或余额不足"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings [post]
func (h *SavingsHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 校验操作方向
	req.Action = strings.ToLower(strings.TrimSpace(req.Action))
	if !models.IsValidSavingsAction(req.Action) {
		BadRequest(c, "action 必须为 deposit 或 withdraw")
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

	transaction := models.SavingsTransaction{
		UserID:      userID,
		Amount:      req.Amount,
		Action:      req.Action,
		Description: req.Description,
		Date:        date,
	}

	// 余额校验与写入放在同一事务，避免并发取出导致透支
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.Action == models.SavingsActionWithdraw {
			balance := analytics.SavingsBalance(tx, userID)
			if req.Amount > balance {
				return errInsufficientBalance
			}
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		if errors.Is(err, errInsufficientBalance) {
			BadRequest(c, "储蓄余额不足，无法完成取出")
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建储蓄记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", transaction)
}
