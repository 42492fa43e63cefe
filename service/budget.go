package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"budget/logger"
	"budget/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrMonthNotFound 月份不存在
	ErrMonthNotFound = errors.New("month not found")
	// ErrTransactionNotFound 交易不存在（或不属于该月份）
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrMonthExists (year, month) 已存在
	ErrMonthExists = errors.New("month already exists")
	// ErrCascadeFailure 删除月份及其交易未能整体完成，已回滚
	ErrCascadeFailure = errors.New("failed to delete month and its transactions")
)

// MonthInput 创建月份的参数
type MonthInput struct {
	Year  int
	Month string
}

// MonthUpdate 修改月份的参数，仅允许修改年份和月份名称
type MonthUpdate struct {
	Year  *int
	Month *string
}

// TransactionInput 创建交易的参数，Amount 只取绝对值，符号由 Type 决定
type TransactionInput struct {
	Name   string
	Amount float64
	Date   time.Time
	Type   string
}

// BudgetService 月份与交易的存储及汇总维护。
// 每个写操作在一个数据库事务内完成交易写入与月份汇总写入。
type BudgetService struct {
	db  *gorm.DB
	log *logrus.Entry
}

// NewBudgetService 创建服务
func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{
		db:  db,
		log: logger.WithComponent(logger.ComponentBudget),
	}
}

// ListMonths 获取所有月份（含交易），按年份、月份顺序排列
func (s *BudgetService) ListMonths(ctx context.Context) ([]models.Month, error) {
	var months []models.Month
	if err := preloadTransactions(s.db.WithContext(ctx)).Order("year ASC").Find(&months).Error; err != nil {
		return nil, fmt.Errorf("查询月份列表失败: %w", err)
	}
	for i := range months {
		if months[i].Transactions == nil {
			months[i].Transactions = []models.Transaction{}
		}
	}
	sort.SliceStable(months, func(i, j int) bool { return months[i].Less(months[j]) })
	return months, nil
}

// GetMonth 获取单个月份，月份名称不区分大小写
func (s *BudgetService) GetMonth(ctx context.Context, year int, month string) (*models.Month, error) {
	return s.findMonth(s.db.WithContext(ctx), year, month, true)
}

// CreateMonth 创建月份，名称规范化为首字母大写
func (s *BudgetService) CreateMonth(ctx context.Context, in MonthInput) (*models.Month, error) {
	if err := models.ValidateYear(in.Year); err != nil {
		return nil, err
	}
	name, err := models.ParseMonthName(in.Month)
	if err != nil {
		return nil, err
	}

	m := models.Month{Year: in.Year, Name: name}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := monthExists(tx, in.Year, name, 0)
		if err != nil {
			return err
		}
		if exists {
			return ErrMonthExists
		}
		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrMonthExists
			}
			return fmt.Errorf("创建月份失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.Transactions = []models.Transaction{}

	s.log.WithFields(logrus.Fields{logger.FieldYear: m.Year, logger.FieldMonth: m.Name}).Info("创建月份")
	return &m, nil
}

// UpdateMonth 修改月份的年份或名称；汇总字段不可直接修改
func (s *BudgetService) UpdateMonth(ctx context.Context, year int, month string, upd MonthUpdate) (*models.Month, error) {
	var result *models.Month
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.findMonth(forUpdate(tx), year, month, false)
		if err != nil {
			return err
		}

		newYear, newName := m.Year, m.Name
		if upd.Year != nil {
			if err := models.ValidateYear(*upd.Year); err != nil {
				return err
			}
			newYear = *upd.Year
		}
		if upd.Month != nil {
			if newName, err = models.ParseMonthName(*upd.Month); err != nil {
				return err
			}
		}

		if newYear != m.Year || newName != m.Name {
			exists, err := monthExists(tx, newYear, newName, m.ID)
			if err != nil {
				return err
			}
			if exists {
				return ErrMonthExists
			}
			err = tx.Model(&models.Month{ID: m.ID}).Updates(map[string]interface{}{
				"year":  newYear,
				"month": newName,
			}).Error
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrMonthExists
				}
				return fmt.Errorf("更新月份失败: %w", err)
			}
		}

		result, err = s.findMonth(tx, newYear, newName, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteMonth 删除月份及其全部交易，作为一个整体提交或回滚。
// 返回被删除的交易数量。
func (s *BudgetService) DeleteMonth(ctx context.Context, year int, month string) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.findMonth(forUpdate(tx), year, month, false)
		if err != nil {
			return err
		}

		res := tx.Where("month_id = ?", m.ID).Delete(&models.Transaction{})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrCascadeFailure, res.Error)
		}
		deleted = res.RowsAffected

		if err := tx.Delete(&models.Month{}, m.ID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCascadeFailure, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		logger.FieldYear:  year,
		logger.FieldMonth: models.NormalizeMonthName(month),
		"transactions":    deleted,
	}).Info("删除月份")
	return deleted, nil
}

// ListTransactions 获取月份下的交易
func (s *BudgetService) ListTransactions(ctx context.Context, year int, month string) ([]models.Transaction, error) {
	m, err := s.findMonth(s.db.WithContext(ctx), year, month, true)
	if err != nil {
		return nil, err
	}
	return m.Transactions, nil
}

// CreateTransaction 新增交易并更新月份汇总
func (s *BudgetService) CreateTransaction(ctx context.Context, year int, month string, in TransactionInput) (*models.Transaction, error) {
	typ, err := models.ParseTransactionType(in.Type)
	if err != nil {
		return nil, err
	}
	t := models.Transaction{
		Name:   in.Name,
		Amount: in.Amount,
		Date:   in.Date,
		Type:   typ,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.findMonth(forUpdate(tx), year, month, true)
		if err != nil {
			return err
		}
		if err := m.ApplyInsert(&t); err != nil {
			return err
		}
		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("创建交易失败: %w", err)
		}
		m.Transactions[len(m.Transactions)-1] = t
		return saveAggregates(tx, m)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		logger.FieldYear:   year,
		logger.FieldMonth:  models.NormalizeMonthName(month),
		logger.FieldTxID:   t.ID,
		logger.FieldTxType: t.Type,
	}).Debug("新增交易")
	return &t, nil
}

// UpdateTransaction 修改交易：撤销旧贡献后按新字段重新计入汇总
func (s *BudgetService) UpdateTransaction(ctx context.Context, year int, month string, id uint, fields models.TransactionFields) (*models.Transaction, error) {
	var updated models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.findMonth(forUpdate(tx), year, month, true)
		if err != nil {
			return err
		}
		updated, err = m.ApplyUpdate(id, fields)
		if errors.Is(err, models.ErrTransactionNotInMonth) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		err = tx.Model(&models.Transaction{ID: id}).Updates(map[string]interface{}{
			"name":   updated.Name,
			"amount": updated.Amount,
			"date":   updated.Date,
			"type":   updated.Type,
		}).Error
		if err != nil {
			return fmt.Errorf("更新交易失败: %w", err)
		}
		if err := saveAggregates(tx, m); err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		logger.FieldYear:   year,
		logger.FieldMonth:  models.NormalizeMonthName(month),
		logger.FieldTxID:   id,
		logger.FieldTxType: updated.Type,
	}).Debug("更新交易")
	return &updated, nil
}

// DeleteTransaction 删除交易并撤销其对汇总的贡献
func (s *BudgetService) DeleteTransaction(ctx context.Context, year int, month string, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.findMonth(forUpdate(tx), year, month, true)
		if err != nil {
			return err
		}
		if _, err := m.ApplyDelete(id); err != nil {
			if errors.Is(err, models.ErrTransactionNotInMonth) {
				return ErrTransactionNotFound
			}
			return err
		}
		res := tx.Delete(&models.Transaction{}, id)
		if res.Error != nil {
			return fmt.Errorf("删除交易失败: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return saveAggregates(tx, m)
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		logger.FieldYear:  year,
		logger.FieldMonth: models.NormalizeMonthName(month),
		logger.FieldTxID:  id,
	}).Debug("删除交易")
	return nil
}

// findMonth 按 (year, month) 查找，月份名称先规范化
func (s *BudgetService) findMonth(db *gorm.DB, year int, month string, withTransactions bool) (*models.Month, error) {
	name := models.NormalizeMonthName(month)
	if models.MonthIndex(name) == 0 {
		return nil, ErrMonthNotFound
	}

	q := db
	if withTransactions {
		q = preloadTransactions(q)
	}
	var m models.Month
	if err := q.Where("year = ? AND month = ?", year, name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMonthNotFound
		}
		return nil, fmt.Errorf("查询月份失败: %w", err)
	}
	if m.Transactions == nil {
		m.Transactions = []models.Transaction{}
	}
	return &m, nil
}

// forUpdate 在事务内锁定月份行，并发写同一月份时串行重算汇总。
// sqlite 不支持行锁，其写操作本身已串行。
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func preloadTransactions(db *gorm.DB) *gorm.DB {
	return db.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC, id ASC")
	})
}

func monthExists(tx *gorm.DB, year int, name string, excludeID uint) (bool, error) {
	q := tx.Model(&models.Month{}).Where("year = ? AND month = ?", year, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询月份失败: %w", err)
	}
	return count > 0, nil
}

// saveAggregates 写入月份汇总字段，写入前校验不变式
func saveAggregates(tx *gorm.DB, m *models.Month) error {
	if err := m.CheckInvariant(); err != nil {
		return err
	}
	err := tx.Model(&models.Month{ID: m.ID}).Updates(map[string]interface{}{
		"income":  m.Income,
		"needs":   m.Categories.Needs,
		"wants":   m.Categories.Wants,
		"savings": m.Categories.Savings,
		"balance": m.Balance,
	}).Error
	if err != nil {
		return fmt.Errorf("更新月份汇总失败: %w", err)
	}
	return nil
}
