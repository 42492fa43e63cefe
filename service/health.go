package service

import (
	"context"

	"budget/models"

	"github.com/shopspring/decimal"
)

// budgetTargets 50/30/20 规则，占收入的百分比
var budgetTargets = []struct {
	Category models.TransactionType
	Percent  int64
}{
	{models.TypeNeeds, 50},
	{models.TypeWants, 30},
	{models.TypeSavings, 20},
}

// CategoryHealth 单个支出分类相对 50/30/20 目标的情况
type CategoryHealth struct {
	Category      models.TransactionType `json:"category"`
	Amount        float64                `json:"amount"`
	TargetPercent float64                `json:"target_percent"`
	TargetAmount  float64                `json:"target_amount"`
	ActualPercent float64                `json:"actual_percent"`
	GoalPercent   float64                `json:"goal_percent"`
}

// BudgetHealth 月度预算健康度，仅用于展示
type BudgetHealth struct {
	Year       int              `json:"year"`
	Month      string           `json:"month"`
	Income     float64          `json:"income"`
	Balance    float64          `json:"balance"`
	Categories []CategoryHealth `json:"categories"`
	Warnings   []string         `json:"warnings"`
}

// 健康检查提示
const (
	WarnNeedsOver       = "Needs spending exceeds 50% - consider reducing essential expenses"
	WarnWantsOver       = "Wants spending exceeds 30% - review discretionary spending"
	WarnSavingsUnder    = "Savings below 20% - prioritize saving goals"
	WarnNegativeBalance = "Negative balance - overspending detected!"
)

// Health 获取月份的 50/30/20 健康度
func (s *BudgetService) Health(ctx context.Context, year int, month string) (*BudgetHealth, error) {
	m, err := s.findMonth(s.db.WithContext(ctx), year, month, false)
	if err != nil {
		return nil, err
	}
	h := ComputeHealth(m)
	return &h, nil
}

// ComputeHealth 根据月份已存储的汇总计算健康度
func ComputeHealth(m *models.Month) BudgetHealth {
	income := decimal.NewFromFloat(m.Income)
	hundred := decimal.NewFromInt(100)
	amounts := map[models.TransactionType]float64{
		models.TypeNeeds:   m.Categories.Needs,
		models.TypeWants:   m.Categories.Wants,
		models.TypeSavings: m.Categories.Savings,
	}

	h := BudgetHealth{
		Year:     m.Year,
		Month:    m.Name,
		Income:   m.Income,
		Balance:  m.Balance,
		Warnings: []string{},
	}

	for _, target := range budgetTargets {
		amount := decimal.NewFromFloat(amounts[target.Category])
		targetPercent := decimal.NewFromInt(target.Percent)

		actual := decimal.Zero
		if income.IsPositive() {
			actual = amount.Div(income).Mul(hundred)
		}
		h.Categories = append(h.Categories, CategoryHealth{
			Category:      target.Category,
			Amount:        amount.InexactFloat64(),
			TargetPercent: targetPercent.InexactFloat64(),
			TargetAmount:  income.Mul(targetPercent).Div(hundred).Round(2).InexactFloat64(),
			ActualPercent: actual.Round(2).InexactFloat64(),
			GoalPercent:   actual.Div(targetPercent).Mul(hundred).Round(0).InexactFloat64(),
		})
	}

	threshold := func(percent int64) decimal.Decimal {
		return income.Mul(decimal.NewFromInt(percent)).Div(hundred)
	}
	if decimal.NewFromFloat(m.Categories.Needs).GreaterThan(threshold(50)) {
		h.Warnings = append(h.Warnings, WarnNeedsOver)
	}
	if decimal.NewFromFloat(m.Categories.Wants).GreaterThan(threshold(30)) {
		h.Warnings = append(h.Warnings, WarnWantsOver)
	}
	if decimal.NewFromFloat(m.Categories.Savings).LessThan(threshold(20)) {
		h.Warnings = append(h.Warnings, WarnSavingsUnder)
	}
	if m.Balance < 0 {
		h.Warnings = append(h.Warnings, WarnNegativeBalance)
	}
	return h
}
