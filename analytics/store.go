package analytics

import (
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// 统计查询层：所有 SQL 聚合集中在这里，计算逻辑保持纯函数

// categoryTotal 按类别汇总结果
type categoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// monthKey 年月分组键
type monthKey struct {
	Year  int
	Month int
}

type monthlyTotal struct {
	Year  int
	Month int
	Total float64
}

type monthlySavingsTotal struct {
	Year   int
	Month  int
	Action string
	Total  float64
}

// rangeWhere 对可选的起止时间追加过滤条件
func rangeWhere(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	return query
}

// sumIncome 收入金额求和
func sumIncome(db *gorm.DB, userID uint, from, to *time.Time) float64 {
	var total float64
	rangeWhere(db.Model(&models.Income{}).Where("user_id = ?", userID), from, to).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// sumExpenses 消费金额求和
func sumExpenses(db *gorm.DB, userID uint, from, to *time.Time) float64 {
	var total float64
	rangeWhere(db.Model(&models.Expense{}).Where("user_id = ?", userID), from, to).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// sumSavings 指定方向的储蓄金额求和
func sumSavings(db *gorm.DB, userID uint, action string, from, to *time.Time) float64 {
	var total float64
	rangeWhere(db.Model(&models.SavingsTransaction{}).Where("user_id = ? AND action = ?", userID, action), from, to).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// sumIncomeRange 半开区间 [from, to) 内的收入求和
func sumIncomeRange(db *gorm.DB, userID uint, from, to time.Time) float64 {
	var total float64
	db.Model(&models.Income{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// sumExpensesRange 半开区间 [from, to) 内的消费求和
func sumExpensesRange(db *gorm.DB, userID uint, from, to time.Time) float64 {
	var total float64
	db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// sumIncomeBefore 严格早于 before 的收入求和
func sumIncomeBefore(db *gorm.DB, userID uint, before time.Time) float64 {
	var total float64
	db.Model(&models.Income{}).
		Where("user_id = ? AND date < ?", userID, before).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// sumExpensesBefore 严格早于 before 的消费求和
func sumExpensesBefore(db *gorm.DB, userID uint, before time.Time) float64 {
	var total float64
	db.Model(&models.Expense{}).
		Where("user_id = ? AND date < ?", userID, before).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// sumSavingsBefore 严格早于 before 的指定方向储蓄求和
func sumSavingsBefore(db *gorm.DB, userID uint, action string, before time.Time) float64 {
	var total float64
	db.Model(&models.SavingsTransaction{}).
		Where("user_id = ? AND action = ? AND date < ?", userID, action, before).
		Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// SavingsBalance 全量储蓄余额（存入总额 - 取出总额）
func SavingsBalance(db *gorm.DB, userID uint) float64 {
	deposits := sumSavings(db, userID, models.SavingsActionDeposit, nil, nil)
	withdrawals := sumSavings(db, userID, models.SavingsActionWithdraw, nil, nil)
	return deposits - withdrawals
}

// expensesByCategory 按类别分组汇总消费
func expensesByCategory(db *gorm.DB, userID uint, from, to *time.Time) []categoryTotal {
	var rows []categoryTotal
	rangeWhere(db.Model(&models.Expense{}).Where("user_id = ?", userID), from, to).
		Select("category, SUM(amount) as total").
		Group("category").
		Scan(&rows)
	return rows
}

// monthlyIncomeTotals 按年月分组汇总收入
func monthlyIncomeTotals(db *gorm.DB, userID uint, from time.Time) map[monthKey]float64 {
	var rows []monthlyTotal
	db.Model(&models.Income{}).
		Select("YEAR(date) as year, MONTH(date) as month, SUM(amount) as total").
		Where("user_id = ? AND date >= ?", userID, from).
		Group("YEAR(date), MONTH(date)").
		Scan(&rows)
	return toMonthMap(rows)
}

// monthlyExpenseTotals 按年月分组汇总消费
func monthlyExpenseTotals(db *gorm.DB, userID uint, from time.Time) map[monthKey]float64 {
	var rows []monthlyTotal
	db.Model(&models.Expense{}).
		Select("YEAR(date) as year, MONTH(date) as month, SUM(amount) as total").
		Where("user_id = ? AND date >= ?", userID, from).
		Group("YEAR(date), MONTH(date)").
		Scan(&rows)
	return toMonthMap(rows)
}

// monthlySavingsTotals 按年月和方向分组汇总储蓄，返回存入、取出两个映射
func monthlySavingsTotals(db *gorm.DB, userID uint, from time.Time) (deposits, withdrawals map[monthKey]float64) {
	var rows []monthlySavingsTotal
	db.Model(&models.SavingsTransaction{}).
		Select("YEAR(date) as year, MONTH(date) as month, action, SUM(amount) as total").
		Where("user_id = ? AND date >= ?", userID, from).
		Group("YEAR(date), MONTH(date), action").
		Scan(&rows)

	deposits = make(map[monthKey]float64)
	withdrawals = make(map[monthKey]float64)
	for _, row := range rows {
		key := monthKey{Year: row.Year, Month: row.Month}
		switch row.Action {
		case models.SavingsActionDeposit:
			deposits[key] = row.Total
		case models.SavingsActionWithdraw:
			withdrawals[key] = row.Total
		}
	}
	return deposits, withdrawals
}

func toMonthMap(rows []monthlyTotal) map[monthKey]float64 {
	m := make(map[monthKey]float64, len(rows))
	for _, row := range rows {
		m[monthKey{Year: row.Year, Month: row.Month}] = row.Total
	}
	return m
}
