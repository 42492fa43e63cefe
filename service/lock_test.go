package service

import (
	"context"
	"testing"

	"budget/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockService(t *testing.T) (*BudgetService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return NewBudgetService(gormDB), mock
}

// 写操作在事务内以 SELECT ... FOR UPDATE 锁定月份行
func TestMutations_LockMonthRow(t *testing.T) {
	ctx := context.Background()
	lockedLookup := "SELECT \\* FROM `months` WHERE year = \\? AND month = \\?.*FOR UPDATE"

	cases := []struct {
		name string
		run  func(svc *BudgetService) error
	}{
		{"新增交易", func(svc *BudgetService) error {
			_, err := svc.CreateTransaction(ctx, 2024, "March", TransactionInput{Name: "Rent", Amount: 400, Type: "needs"})
			return err
		}},
		{"修改交易", func(svc *BudgetService) error {
			_, err := svc.UpdateTransaction(ctx, 2024, "March", 1, models.TransactionFields{})
			return err
		}},
		{"删除交易", func(svc *BudgetService) error {
			return svc.DeleteTransaction(ctx, 2024, "March", 1)
		}},
		{"删除月份", func(svc *BudgetService) error {
			_, err := svc.DeleteMonth(ctx, 2024, "March")
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mock := setupMockService(t)
			mock.ExpectBegin()
			mock.ExpectQuery(lockedLookup).WillReturnRows(sqlmock.NewRows([]string{"id", "year", "month"}))
			mock.ExpectRollback()

			assert.ErrorIs(t, tc.run(svc), ErrMonthNotFound)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// 只读查询不加锁
func TestGetMonth_NoLock(t *testing.T) {
	svc, mock := setupMockService(t)
	mock.ExpectQuery("SELECT \\* FROM `months` WHERE year = \\? AND month = \\? ORDER BY `months`.`id` LIMIT (\\?|1)$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "year", "month"}))

	_, err := svc.GetMonth(context.Background(), 2024, "March")
	assert.ErrorIs(t, err, ErrMonthNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
