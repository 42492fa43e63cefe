package models

import (
	"fmt"
	"slices"
	"time"
)

// TransactionType 交易类型
type TransactionType string

// 交易类型常量
const (
	TypeIncome  TransactionType = "income"
	TypeNeeds   TransactionType = "needs"
	TypeWants   TransactionType = "wants"
	TypeSavings TransactionType = "savings"
)

// GetTransactionTypes 获取所有交易类型
func GetTransactionTypes() []TransactionType {
	return []TransactionType{TypeIncome, TypeNeeds, TypeWants, TypeSavings}
}

// Valid 是否为合法类型
func (t TransactionType) Valid() bool {
	return slices.Contains(GetTransactionTypes(), t)
}

// ParseTransactionType 校验类型字符串
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", &ValidationError{Field: "type", Message: fmt.Sprintf("`%s` is not a valid enum value for path `type`", s)}
	}
	return t, nil
}

// Transaction 交易记录模型，金额符号由类型决定：收入为正，其余为负
type Transaction struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	MonthID   uint            `json:"month_id" gorm:"index;not null"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Amount    float64         `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date      time.Time       `json:"date" gorm:"not null"`
	Type      TransactionType `json:"type" gorm:"size:20;not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
