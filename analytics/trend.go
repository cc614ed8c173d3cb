package analytics

import (
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// trendMonths 趋势窗口长度：当月 + 前 5 个自然月
const trendMonths = 6

// TrendEntry 单个月的趋势数据
type TrendEntry struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
	Leftover float64 `json:"leftover"`
}

// GetMonthlyTrend 计算近 6 个月的收支趋势，最早的月份在前
// 每月 leftover 作为下一个月的 carryover 滚动累计
func GetMonthlyTrend(db *gorm.DB, userID uint, now time.Time) []TrendEntry {
	starts := monthStarts(now, trendMonths)
	firstMonthStart := starts[0]

	income := monthlyIncomeTotals(db, userID, firstMonthStart)
	expenses := monthlyExpenseTotals(db, userID, firstMonthStart)
	deposits, withdrawals := monthlySavingsTotals(db, userID, firstMonthStart)

	// 窗口之前的结余作为首月的期初 carryover
	incomeBefore := sumIncomeBefore(db, userID, firstMonthStart)
	expensesBefore := sumExpensesBefore(db, userID, firstMonthStart)
	depositsBefore := sumSavingsBefore(db, userID, models.SavingsActionDeposit, firstMonthStart)
	withdrawalsBefore := sumSavingsBefore(db, userID, models.SavingsActionWithdraw, firstMonthStart)
	carryover := incomeBefore - expensesBefore - (depositsBefore - withdrawalsBefore)

	return buildTrend(starts, carryover, income, expenses, deposits, withdrawals)
}

// monthStarts 返回以 now 所在月为末尾的 n 个月初边界，最早的在前（UTC）
func monthStarts(now time.Time, n int) []time.Time {
	starts := make([]time.Time, n)
	pointer := startOfMonth(now)
	for i := n - 1; i >= 0; i-- {
		starts[i] = pointer
		pointer = pointer.AddDate(0, -1, 0)
	}
	return starts
}

// buildTrend 逐月滚动计算结余，纯函数
func buildTrend(starts []time.Time, carryover float64, income, expenses, deposits, withdrawals map[monthKey]float64) []TrendEntry {
	trend := make([]TrendEntry, 0, len(starts))
	for _, monthStart := range starts {
		key := monthKey{Year: monthStart.Year(), Month: int(monthStart.Month())}
		monthIncome := income[key]
		monthExpenses := expenses[key]
		monthDeposits := deposits[key]
		monthWithdrawals := withdrawals[key]

		netSavingsTransfer := monthDeposits - monthWithdrawals
		leftover := carryover + monthIncome - monthExpenses - netSavingsTransfer

		trend = append(trend, TrendEntry{
			Month:    monthStart.Format("Jan 2006"),
			Income:   round2(monthIncome),
			Expenses: round2(monthExpenses),
			Savings:  round2(monthDeposits),
			Leftover: round2(leftover),
		})

		carryover = leftover
	}
	return trend
}
