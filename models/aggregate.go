package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// invariantTolerance 浮点比较容差
const invariantTolerance = 1e-6

// 金额按 decimal(12,2) 存储：保留两位小数，绝对值须小于 MaxAmount
const (
	AmountScale = 2
	MaxAmount   = 1e10
)

// Aggregates 月份的汇总字段
type Aggregates struct {
	Income  float64 `json:"income"`
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
	Balance float64 `json:"balance"`
}

// Equal 在容差范围内比较
func (a Aggregates) Equal(b Aggregates) bool {
	return nearlyEqual(a.Income, b.Income) &&
		nearlyEqual(a.Needs, b.Needs) &&
		nearlyEqual(a.Wants, b.Wants) &&
		nearlyEqual(a.Savings, b.Savings) &&
		nearlyEqual(a.Balance, b.Balance)
}

// TransactionFields 更新交易时提交的字段，nil 表示沿用原值
type TransactionFields struct {
	Name   *string
	Amount *float64
	Date   *time.Time
	Type   *TransactionType
}

// SignedAmount 按类型确定金额符号：收入为正，其余为负；只取输入的绝对值，
// 并四舍五入到两位小数，与存储精度一致
func SignedAmount(t TransactionType, amount float64) float64 {
	magnitude := math.Abs(amount)
	if !math.IsNaN(magnitude) && !math.IsInf(magnitude, 0) {
		magnitude = decimal.NewFromFloat(magnitude).Round(AmountScale).InexactFloat64()
	}
	if t == TypeIncome {
		return magnitude
	}
	return -magnitude
}

// ComputeAggregates 全量扫描交易集合计算汇总，使用 decimal 累加避免浮点漂移
func ComputeAggregates(transactions []Transaction) Aggregates {
	var income, needs, wants, savings decimal.Decimal
	for _, tx := range transactions {
		magnitude := decimal.NewFromFloat(tx.Amount).Abs()
		switch tx.Type {
		case TypeIncome:
			income = income.Add(magnitude)
		case TypeNeeds:
			needs = needs.Add(magnitude)
		case TypeWants:
			wants = wants.Add(magnitude)
		case TypeSavings:
			savings = savings.Add(magnitude)
		}
	}
	balance := income.Sub(needs).Sub(wants).Sub(savings)
	return Aggregates{
		Income:  income.InexactFloat64(),
		Needs:   needs.InexactFloat64(),
		Wants:   wants.InexactFloat64(),
		Savings: savings.InexactFloat64(),
		Balance: balance.InexactFloat64(),
	}
}

// Aggregates 返回当前存储的汇总字段
func (m *Month) Aggregates() Aggregates {
	return Aggregates{
		Income:  m.Income,
		Needs:   m.Categories.Needs,
		Wants:   m.Categories.Wants,
		Savings: m.Categories.Savings,
		Balance: m.Balance,
	}
}

func (m *Month) setAggregates(a Aggregates) {
	m.Income = a.Income
	m.Categories = Categories{Needs: a.Needs, Wants: a.Wants, Savings: a.Savings}
	m.Balance = a.Balance
}

// Recompute 根据交易集合重新计算汇总字段
func (m *Month) Recompute() {
	m.setAggregates(ComputeAggregates(m.Transactions))
}

// ApplyInsert 新增交易：确定金额符号、加入集合并刷新汇总。
// 校验失败时月份和交易均不被修改。
func (m *Month) ApplyInsert(tx *Transaction) error {
	prepared := *tx
	prepared.Name = strings.TrimSpace(prepared.Name)
	if err := validateTransaction(prepared); err != nil {
		return err
	}
	prepared.Amount = SignedAmount(prepared.Type, prepared.Amount)
	if err := validateAmount(prepared.Amount); err != nil {
		return err
	}
	if prepared.Date.IsZero() {
		prepared.Date = time.Now()
	}
	prepared.MonthID = m.ID

	candidate := make([]Transaction, 0, len(m.Transactions)+1)
	candidate = append(append(candidate, m.Transactions...), prepared)
	agg := ComputeAggregates(candidate)
	if err := validateAggregates(agg); err != nil {
		return err
	}

	*tx = prepared
	m.Transactions = candidate
	m.setAggregates(agg)
	return nil
}

// ApplyUpdate 更新交易：先撤销旧交易的贡献，再按新类型、新金额重新计入。
// 类型变化时金额从旧分类移到新分类。
func (m *Month) ApplyUpdate(id uint, fields TransactionFields) (Transaction, error) {
	idx, ok := m.FindTransaction(id)
	if !ok {
		return Transaction{}, ErrTransactionNotInMonth
	}
	old := m.Transactions[idx]

	updated := old
	if fields.Name != nil {
		updated.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.Type != nil {
		updated.Type = *fields.Type
	}
	magnitude := math.Abs(old.Amount)
	if fields.Amount != nil {
		magnitude = *fields.Amount
	}
	if fields.Date != nil && !fields.Date.IsZero() {
		updated.Date = *fields.Date
	}
	updated.Amount = SignedAmount(updated.Type, magnitude)
	if err := validateTransaction(updated); err != nil {
		return Transaction{}, err
	}
	if err := validateAmount(updated.Amount); err != nil {
		return Transaction{}, err
	}

	candidate := make([]Transaction, len(m.Transactions))
	copy(candidate, m.Transactions)
	candidate[idx] = updated
	agg := ComputeAggregates(candidate)
	if err := validateAggregates(agg); err != nil {
		return Transaction{}, err
	}

	m.Transactions = candidate
	m.setAggregates(agg)
	return updated, nil
}

// ApplyDelete 删除交易：撤销其贡献并从集合中移除
func (m *Month) ApplyDelete(id uint) (Transaction, error) {
	idx, ok := m.FindTransaction(id)
	if !ok {
		return Transaction{}, ErrTransactionNotInMonth
	}
	removed := m.Transactions[idx]
	m.Transactions = append(m.Transactions[:idx:idx], m.Transactions[idx+1:]...)
	m.Recompute()
	return removed, nil
}

// CheckInvariant 校验 balance == income - needs - wants - savings，
// 且各汇总字段等于交易集合按类型的金额之和
func (m *Month) CheckInvariant() error {
	stored := m.Aggregates()
	expectedBalance := stored.Income - stored.Needs - stored.Wants - stored.Savings
	if !nearlyEqual(stored.Balance, expectedBalance) {
		return fmt.Errorf("%w: %d %s balance %.2f, expected %.2f",
			ErrInvariantViolation, m.Year, m.Name, stored.Balance, expectedBalance)
	}
	if computed := ComputeAggregates(m.Transactions); !stored.Equal(computed) {
		return fmt.Errorf("%w: %d %s stored %+v, computed %+v",
			ErrInvariantViolation, m.Year, m.Name, stored, computed)
	}
	return nil
}

func validateTransaction(tx Transaction) error {
	if strings.TrimSpace(tx.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if !tx.Type.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("`%s` is not a valid enum value for path `type`", tx.Type)}
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return &ValidationError{Field: "amount", Message: "amount must be a finite number"}
	}
	return nil
}

// validateAmount 金额须能存入 decimal(12,2)
func validateAmount(amount float64) error {
	if math.Abs(amount) >= MaxAmount {
		return &ValidationError{Field: "amount", Message: fmt.Sprintf("amount must be less than %.0f", MaxAmount)}
	}
	return nil
}

// validateAggregates 汇总同样按 decimal(12,2) 存储
func validateAggregates(a Aggregates) error {
	for _, v := range []float64{a.Income, a.Needs, a.Wants, a.Savings, a.Balance} {
		if math.Abs(v) >= MaxAmount {
			return &ValidationError{Field: "amount", Message: fmt.Sprintf("month totals must stay below %.0f", MaxAmount)}
		}
	}
	return nil
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= invariantTolerance
}
