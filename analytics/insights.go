package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// insightSums 洞察规则所需的聚合值
type insightSums struct {
	CurrentIncome   float64
	CurrentExpenses float64
	PrevIncome      float64
	PrevExpenses    float64
	// 本月按类别分组的消费，保持查询返回顺序（并列取最先出现者）
	Categories []categoryTotal
}

// GetInsights 生成消费洞察文案，每次调用重新计算
// 返回的列表顺序固定：储蓄率对比、头部类别占比、消费变化幅度、兜底提示
func GetInsights(db *gorm.DB, userID uint, now time.Time) []string {
	monthStart := startOfMonth(now)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	sums := insightSums{
		CurrentIncome:   sumIncome(db, userID, &monthStart, nil),
		CurrentExpenses: sumExpenses(db, userID, &monthStart, nil),
		PrevIncome:      sumIncomeRange(db, userID, prevMonthStart, monthStart),
		PrevExpenses:    sumExpensesRange(db, userID, prevMonthStart, monthStart),
		Categories:      expensesByCategory(db, userID, &monthStart, nil),
	}

	return buildInsights(sums)
}

// buildInsights 依次套用洞察规则，纯函数
func buildInsights(s insightSums) []string {
	var insights []string

	// 规则一：前后两个月收入与支出均为正时，对比储蓄率
	if s.PrevIncome > 0 && s.PrevExpenses > 0 && s.CurrentIncome > 0 && s.CurrentExpenses > 0 {
		currentRate := (s.CurrentIncome - s.CurrentExpenses) / s.CurrentIncome * 100
		prevRate := (s.PrevIncome - s.PrevExpenses) / s.PrevIncome * 100

		if currentRate > prevRate {
			insights = append(insights,
				fmt.Sprintf("Great job! You saved %.1f%% more this month compared to last month.", currentRate-prevRate))
		} else if currentRate < prevRate {
			insights = append(insights,
				fmt.Sprintf("Your savings decreased by %.1f%% this month. Consider reviewing your expenses.", prevRate-currentRate))
		}
	}

	// 规则二：本月消费头部类别占比
	if len(s.Categories) > 0 && s.CurrentExpenses > 0 {
		top := s.Categories[0]
		for _, row := range s.Categories[1:] {
			if row.Total > top.Total {
				top = row
			}
		}
		percentage := top.Total / s.CurrentExpenses * 100
		insights = append(insights,
			fmt.Sprintf("%s covers %.1f%% of your expenses this month.", top.Category, percentage))
	}

	// 规则三：消费环比变化超过 ±20% 时提示
	if s.PrevExpenses > 0 {
		expenseChange := (s.CurrentExpenses - s.PrevExpenses) / s.PrevExpenses * 100
		if expenseChange > 20 {
			insights = append(insights,
				fmt.Sprintf("Warning: Your spending increased by %.1f%% this month.", expenseChange))
		} else if expenseChange < -20 {
			insights = append(insights,
				fmt.Sprintf("Excellent! You reduced spending by %.1f%% this month.", -expenseChange))
		}
	}

	// 兜底：没有任何洞察时给出默认提示
	if len(insights) == 0 {
		if s.CurrentIncome > s.CurrentExpenses {
			insights = append(insights, "You're on track! Keep up the good work managing your finances.")
		} else {
			insights = append(insights, "Consider reviewing your expenses to improve your savings rate.")
		}
	}

	return insights
}
