package analytics

import (
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// SavingsSummary 储蓄汇总
type SavingsSummary struct {
	TotalDeposits    float64 `json:"total_deposits"`
	TotalWithdrawals float64 `json:"total_withdrawals"`
	Balance          float64 `json:"balance"`
}

// Carryover 往月结余
type Carryover struct {
	Amount      float64 `json:"amount"`
	Label       string  `json:"label"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
}

// CurrentMonthSummary 当月汇总
type CurrentMonthSummary struct {
	TotalIncome      float64        `json:"total_income"`
	TotalExpenses    float64        `json:"total_expenses"`
	NetSavings       float64        `json:"net_savings"`
	Status           string         `json:"status"`
	Month            string         `json:"month"`
	Savings          SavingsSummary `json:"savings"`
	RemainingBalance float64        `json:"remaining_balance"`
	AvailableFunds   float64        `json:"available_funds"`
	Carryover        Carryover      `json:"carryover"`
}

// AllTimeSummary 全量汇总
type AllTimeSummary struct {
	TotalIncome      float64        `json:"total_income"`
	TotalExpenses    float64        `json:"total_expenses"`
	NetSavings       float64        `json:"net_savings"`
	Savings          SavingsSummary `json:"savings"`
	RemainingBalance float64        `json:"remaining_balance"`
}

// Dashboard 仪表盘汇总
type Dashboard struct {
	CurrentMonth CurrentMonthSummary `json:"current_month"`
	AllTime      AllTimeSummary      `json:"all_time"`
}

// dashboardSums 仪表盘所需的全部聚合值，查询与计算分离
type dashboardSums struct {
	MonthIncome      float64
	MonthExpenses    float64
	MonthDeposits    float64
	MonthWithdrawals float64

	IncomeBefore      float64
	ExpensesBefore    float64
	DepositsBefore    float64
	WithdrawalsBefore float64

	AllTimeIncome      float64
	AllTimeExpenses    float64
	AllTimeDeposits    float64
	AllTimeWithdrawals float64
}

// GetDashboard 计算仪表盘汇总
// now 为显式注入的当前时间，月度边界按 UTC 计算
func GetDashboard(db *gorm.DB, userID uint, now time.Time) Dashboard {
	monthStart := startOfMonth(now)

	sums := dashboardSums{
		MonthIncome:      sumIncome(db, userID, &monthStart, nil),
		MonthExpenses:    sumExpenses(db, userID, &monthStart, nil),
		MonthDeposits:    sumSavings(db, userID, models.SavingsActionDeposit, &monthStart, nil),
		MonthWithdrawals: sumSavings(db, userID, models.SavingsActionWithdraw, &monthStart, nil),

		IncomeBefore:      sumIncomeBefore(db, userID, monthStart),
		ExpensesBefore:    sumExpensesBefore(db, userID, monthStart),
		DepositsBefore:    sumSavingsBefore(db, userID, models.SavingsActionDeposit, monthStart),
		WithdrawalsBefore: sumSavingsBefore(db, userID, models.SavingsActionWithdraw, monthStart),

		AllTimeIncome:      sumIncome(db, userID, nil, nil),
		AllTimeExpenses:    sumExpenses(db, userID, nil, nil),
		AllTimeDeposits:    sumSavings(db, userID, models.SavingsActionDeposit, nil, nil),
		AllTimeWithdrawals: sumSavings(db, userID, models.SavingsActionWithdraw, nil, nil),
	}

	return buildDashboard(sums, now)
}

// buildDashboard 由聚合值计算仪表盘，纯函数
func buildDashboard(s dashboardSums, now time.Time) Dashboard {
	monthStart := startOfMonth(now)
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	prevMonthEnd := monthStart.Add(-time.Second)

	savingsBalanceMonth := s.MonthDeposits - s.MonthWithdrawals

	// 往月结余：所有早于本月的收入 - 消费 - 净储蓄转移
	carryoverBalance := s.IncomeBefore - s.ExpensesBefore - (s.DepositsBefore - s.WithdrawalsBefore)

	// 可用资金：往月结余 + 本月收入（未扣减本月消费）
	availableFunds := carryoverBalance + s.MonthIncome

	netSavings := s.MonthIncome - s.MonthExpenses
	status := "Saved"
	if netSavings < 0 {
		status = "Overspent"
	}

	remainingBalanceMonth := availableFunds - s.MonthExpenses - savingsBalanceMonth

	allTimeSavingsBalance := s.AllTimeDeposits - s.AllTimeWithdrawals
	// 沿用历史口径：往月结余叠加本月数字，而不是逐月结余之和
	allTimeRemainingBalance := carryoverBalance + (s.MonthIncome - s.MonthExpenses - savingsBalanceMonth)

	return Dashboard{
		CurrentMonth: CurrentMonthSummary{
			TotalIncome:   round2(s.MonthIncome),
			TotalExpenses: round2(s.MonthExpenses),
			NetSavings:    round2(netSavings),
			Status:        status,
			Month:         now.Format("January 2006"),
			Savings: SavingsSummary{
				TotalDeposits:    round2(s.MonthDeposits),
				TotalWithdrawals: round2(s.MonthWithdrawals),
				Balance:          round2(savingsBalanceMonth),
			},
			RemainingBalance: round2(remainingBalanceMonth),
			AvailableFunds:   round2(availableFunds),
			Carryover: Carryover{
				Amount:      round2(carryoverBalance),
				Label:       prevMonthEnd.Format("January 2006"),
				PeriodStart: prevMonthStart.Format(time.RFC3339),
				PeriodEnd:   prevMonthEnd.Format(time.RFC3339),
			},
		},
		AllTime: AllTimeSummary{
			TotalIncome:   round2(s.AllTimeIncome),
			TotalExpenses: round2(s.AllTimeExpenses),
			NetSavings:    round2(s.AllTimeIncome - s.AllTimeExpenses),
			Savings: SavingsSummary{
				TotalDeposits:    round2(s.AllTimeDeposits),
				TotalWithdrawals: round2(s.AllTimeWithdrawals),
				Balance:          round2(allTimeSavingsBalance),
			},
			RemainingBalance: round2(allTimeRemainingBalance),
		},
	}
}
