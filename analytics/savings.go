package analytics

import (
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// MonthSavingsSummary 当月储蓄汇总，附带月份标签
type MonthSavingsSummary struct {
	SavingsSummary
	Label string `json:"label"`
}

// SavingsOverview 储蓄总览：全量 + 当月
type SavingsOverview struct {
	AllTime      SavingsSummary      `json:"all_time"`
	CurrentMonth MonthSavingsSummary `json:"current_month"`
}

// GetSavingsOverview 计算储蓄总览
func GetSavingsOverview(db *gorm.DB, userID uint, now time.Time) SavingsOverview {
	monthStart := startOfMonth(now)

	allDeposits := sumSavings(db, userID, models.SavingsActionDeposit, nil, nil)
	allWithdrawals := sumSavings(db, userID, models.SavingsActionWithdraw, nil, nil)
	monthDeposits := sumSavings(db, userID, models.SavingsActionDeposit, &monthStart, nil)
	monthWithdrawals := sumSavings(db, userID, models.SavingsActionWithdraw, &monthStart, nil)

	return SavingsOverview{
		AllTime: SavingsSummary{
			TotalDeposits:    round2(allDeposits),
			TotalWithdrawals: round2(allWithdrawals),
			Balance:          round2(allDeposits - allWithdrawals),
		},
		CurrentMonth: MonthSavingsSummary{
			SavingsSummary: SavingsSummary{
				TotalDeposits:    round2(monthDeposits),
				TotalWithdrawals: round2(monthWithdrawals),
				Balance:          round2(monthDeposits - monthWithdrawals),
			},
			Label: monthStart.Format("January 2006"),
		},
	}
}
