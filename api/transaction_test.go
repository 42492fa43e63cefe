package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getMonth(t *testing.T, r *gin.Engine, path string) monthBody {
	t.Helper()
	w, resp := doJSON(r, "GET", path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var m monthBody
	require.NoError(t, json.Unmarshal(resp.Data, &m))
	return m
}

func createTransaction(t *testing.T, r *gin.Engine, body gin.H) transactionBody {
	t.Helper()
	w, resp := doJSON(r, "POST", "/api/months/2024/March/transactions", body)
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)
	var tx transactionBody
	require.NoError(t, json.Unmarshal(resp.Data, &tx))
	return tx
}

func TestTransactionHandler_Lifecycle(t *testing.T) {
	r := newSQLiteEngine(t)
	doJSON(r, "POST", "/api/months", gin.H{"year": 2024, "month": "March"})

	createTransaction(t, r, gin.H{"name": "Salary", "amount": 1000, "type": "income", "date": "2024-03-01"})
	rent := createTransaction(t, r, gin.H{"name": "Rent", "amount": 400, "type": "needs"})
	assert.Equal(t, -400.0, rent.Amount)
	movie := createTransaction(t, r, gin.H{"name": "Movie", "amount": -50, "type": "wants"})
	assert.Equal(t, -50.0, movie.Amount)
	createTransaction(t, r, gin.H{"name": "ETF", "amount": 100, "type": "savings"})

	m := getMonth(t, r, "/api/months/2024/march")
	assert.Equal(t, 1000.0, m.Income)
	assert.Equal(t, 400.0, m.Categories.Needs)
	assert.Equal(t, 50.0, m.Categories.Wants)
	assert.Equal(t, 100.0, m.Categories.Savings)
	assert.Equal(t, 450.0, m.Balance)
	assert.Len(t, m.Transactions, 4)

	// 修改类型：needs -> income
	path := fmt.Sprintf("/api/months/2024/March/transactions/%d", rent.ID)
	w, resp := doJSON(r, "PUT", path, gin.H{"type": "income"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated transactionBody
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, 400.0, updated.Amount)
	assert.Equal(t, "income", updated.Type)
	assert.Equal(t, "Rent", updated.Name)

	m = getMonth(t, r, "/api/months/2024/March")
	assert.Equal(t, 1400.0, m.Income)
	assert.Equal(t, 0.0, m.Categories.Needs)
	assert.Equal(t, 1250.0, m.Balance)

	// 删除交易
	w, resp = doJSON(r, "DELETE", path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Transaction deleted", resp.Message)

	m = getMonth(t, r, "/api/months/2024/March")
	assert.Equal(t, 1000.0, m.Income)
	assert.Equal(t, 850.0, m.Balance)

	w, resp = doJSON(r, "GET", "/api/months/2024/March/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []transactionBody
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Len(t, list, 3)
}

func TestTransactionHandler_CreateValidation(t *testing.T) {
	r := newSQLiteEngine(t)
	doJSON(r, "POST", "/api/months", gin.H{"year": 2024, "month": "March"})

	cases := []struct {
		name string
		body gin.H
	}{
		{"缺少名称", gin.H{"amount": 10, "type": "needs"}},
		{"缺少金额", gin.H{"name": "x", "type": "needs"}},
		{"类型无效", gin.H{"name": "x", "amount": 10, "type": "luxury"}},
		{"日期无效", gin.H{"name": "x", "amount": 10, "type": "needs", "date": "03/01/2024"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := doJSON(r, "POST", "/api/months/2024/March/transactions", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	m := getMonth(t, r, "/api/months/2024/March")
	assert.Empty(t, m.Transactions)
	assert.Equal(t, 0.0, m.Balance)

	w, resp := doJSON(r, "POST", "/api/months/2024/April/transactions", gin.H{"name": "x", "amount": 10, "type": "needs"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, MsgMonthNotFound, resp.Message)
}

func TestTransactionHandler_UpdateDeleteErrors(t *testing.T) {
	r := newSQLiteEngine(t)
	doJSON(r, "POST", "/api/months", gin.H{"year": 2024, "month": "March"})
	doJSON(r, "POST", "/api/months", gin.H{"year": 2024, "month": "April"})
	tx := createTransaction(t, r, gin.H{"name": "Rent", "amount": 400, "type": "needs"})

	// 交易属于其他月份
	other := fmt.Sprintf("/api/months/2024/April/transactions/%d", tx.ID)
	w, resp := doJSON(r, "PUT", other, gin.H{"amount": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, MsgTransactionNotFound, resp.Message)
	w, _ = doJSON(r, "DELETE", other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(r, "DELETE", "/api/months/2024/March/transactions/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = doJSON(r, "PUT", "/api/months/2024/March/transactions/abc", gin.H{"amount": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid transaction id", resp.Message)

	own := fmt.Sprintf("/api/months/2024/March/transactions/%d", tx.ID)
	w, _ = doJSON(r, "PUT", own, gin.H{"type": "luxury"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = doJSON(r, "PUT", own, gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m := getMonth(t, r, "/api/months/2024/March")
	assert.Equal(t, 400.0, m.Categories.Needs)
	assert.Equal(t, -400.0, m.Balance)
}

func TestTransactionHandler_Create_MonthNotFound_Mock(t *testing.T) {
	svc, mock := setupMockService(t)
	r := newTestEngine(svc)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `months` WHERE year = ? AND month = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "year", "month"}))
	mock.ExpectRollback()

	w, resp := doJSON(r, "POST", "/api/months/2024/March/transactions", gin.H{"name": "Rent", "amount": 400, "type": "needs"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, MsgMonthNotFound, resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_AmountOutOfRange(t *testing.T) {
	r := newSQLiteEngine(t)
	doJSON(r, "POST", "/api/months", gin.H{"year": 2024, "month": "March"})

	w, resp := doJSON(r, "POST", "/api/months/2024/March/transactions", gin.H{"name": "Lottery", "amount": 1e11, "type": "income"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Message, "amount must be less than")

	tx := createTransaction(t, r, gin.H{"name": "Tiny", "amount": 0.004, "type": "needs"})
	assert.Zero(t, tx.Amount)
	m := getMonth(t, r, "/api/months/2024/March")
	assert.Zero(t, m.Categories.Needs)
}
