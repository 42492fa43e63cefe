package models

import (
	"fmt"
	"strings"
	"time"
)

// 年份范围
const (
	MinYear = 2000
	MaxYear = 2100
)

// monthNames 按日历顺序排列的月份名称
var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Categories 三类支出累计值（均为非负的金额绝对值）
type Categories struct {
	Needs   float64 `json:"needs" gorm:"column:needs;type:decimal(12,2);not null;default:0"`
	Wants   float64 `json:"wants" gorm:"column:wants;type:decimal(12,2);not null;default:0"`
	Savings float64 `json:"savings" gorm:"column:savings;type:decimal(12,2);not null;default:0"`
}

// Month 月度预算模型，(year, month) 唯一
type Month struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Year         int           `json:"year" gorm:"not null;uniqueIndex:idx_month_year,priority:2"`
	Name         string        `json:"month" gorm:"column:month;size:20;not null;uniqueIndex:idx_month_year,priority:1"`
	Categories   Categories    `json:"categories" gorm:"embedded"`
	Income       float64       `json:"income" gorm:"type:decimal(12,2);not null;default:0"`
	Balance      float64       `json:"balance" gorm:"type:decimal(12,2);not null;default:0"`
	Transactions []Transaction `json:"transactions" gorm:"foreignKey:MonthID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Month) TableName() string {
	return "months"
}

// NormalizeMonthName 首字母大写、其余小写，例如 "march" -> "March"
func NormalizeMonthName(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) == 0 {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + strings.ToLower(string(r[1:]))
}

// MonthIndex 返回月份在日历中的序号（1-12），无效名称返回 0
func MonthIndex(name string) int {
	name = NormalizeMonthName(name)
	for i, n := range monthNames {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// ParseMonthName 规范化并校验月份名称
func ParseMonthName(name string) (string, error) {
	normalized := NormalizeMonthName(name)
	if MonthIndex(normalized) == 0 {
		return "", &ValidationError{Field: "month", Message: fmt.Sprintf("%s is not a valid month!", name)}
	}
	return normalized, nil
}

// ValidateYear 校验年份范围
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return &ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year %d is out of range [%d, %d]", year, MinYear, MaxYear),
		}
	}
	return nil
}

// Less 按年份、月份的日历顺序比较
func (m Month) Less(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return MonthIndex(m.Name) < MonthIndex(other.Name)
}

// FindTransaction 在月份的交易集合中查找
func (m *Month) FindTransaction(id uint) (int, bool) {
	for i := range m.Transactions {
		if m.Transactions[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
