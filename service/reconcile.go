package service

import (
	"context"
	"fmt"
	"time"

	"budget/logger"
	"budget/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RepairedMonth 一次修复记录
type RepairedMonth struct {
	Year   int               `json:"year"`
	Month  string            `json:"month"`
	Before models.Aggregates `json:"before"`
	After  models.Aggregates `json:"after"`
}

// ReconcileReport 一致性检查结果
type ReconcileReport struct {
	Checked  int             `json:"checked"`
	Repaired []RepairedMonth `json:"repaired"`
}

// Reconcile 用交易集合重新计算每个月份的汇总，修复不一致的记录
func (s *BudgetService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	log := logger.WithComponent(logger.ComponentIntegrity)
	report := &ReconcileReport{Repaired: []RepairedMonth{}}

	var months []models.Month
	if err := preloadTransactions(s.db.WithContext(ctx)).Find(&months).Error; err != nil {
		return nil, fmt.Errorf("查询月份列表失败: %w", err)
	}

	for i := range months {
		m := &months[i]
		report.Checked++
		if err := m.CheckInvariant(); err == nil {
			continue
		}

		before := m.Aggregates()
		m.Recompute()
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return saveAggregates(tx, m)
		})
		if err != nil {
			return report, fmt.Errorf("修复 %d %s 失败: %w", m.Year, m.Name, err)
		}

		report.Repaired = append(report.Repaired, RepairedMonth{
			Year:   m.Year,
			Month:  m.Name,
			Before: before,
			After:  m.Aggregates(),
		})
		log.WithFields(logrus.Fields{
			logger.FieldYear:  m.Year,
			logger.FieldMonth: m.Name,
			"before":          before,
			"after":           m.Aggregates(),
		}).Warn("月份汇总与交易不一致，已修复")
	}

	log.WithFields(logrus.Fields{
		"checked":  report.Checked,
		"repaired": len(report.Repaired),
	}).Info("一致性检查完成")
	return report, nil
}

// RunReconciler 按固定间隔执行一致性检查，直到 ctx 结束
func (s *BudgetService) RunReconciler(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Reconcile(ctx); err != nil {
				logger.WithComponent(logger.ComponentIntegrity).
					WithField(logger.FieldError, err).
					Error("一致性检查失败")
			}
		}
	}
}
