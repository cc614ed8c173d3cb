package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"fintrack/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumRow(total float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"total"}).AddRow(total)
}

func TestSavingsHandler_Create_Deposit(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 存入不需要余额校验，事务内直接 INSERT
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `savings_transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/savings", NewSavingsHandler().Create)

	body := `{"amount":300,"action":"deposit","description":"Emergency fund","date":"2025-01-15T10:00:00Z"}`
	req := httptest.NewRequest("POST", "/savings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, models.SavingsActionDeposit, data["action"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavingsHandler_Create_ActionNormalized(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `savings_transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/savings", NewSavingsHandler().Create)

	// 大小写和空白归一化
	body := `{"amount":100,"action":" Deposit "}`
	req := httptest.NewRequest("POST", "/savings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavingsHandler_Create_InvalidAction(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/savings", NewSavingsHandler().Create)

	body := `{"amount":100,"action":"transfer"}`
	req := httptest.NewRequest("POST", "/savings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "deposit 或 withdraw")
}

func TestSavingsHandler_Create_Withdraw(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 事务内先查余额（存入、取出两次求和），再 INSERT
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint(1), models.SavingsActionDeposit).
		WillReturnRows(sumRow(500))
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint(1), models.SavingsActionWithdraw).
		WillReturnRows(sumRow(100))
	mock.ExpectExec("INSERT INTO `savings_transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/savings", NewSavingsHandler().Create)

	// 余额 400，取出 300 成功
	body := `{"amount":300,"action":"withdraw"}`
	req := httptest.NewRequest("POST", "/savings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSavingsHandler_Create_Withdraw_InsufficientBalance(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 余额 400，取出 500 应失败并回滚，不产生 INSERT
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint(1), models.SavingsActionDeposit).
		WillReturnRows(sumRow(500))
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint(1), models.SavingsActionWithdraw).
		WillReturnRows(sumRow(100))
	mock.ExpectRollback()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/savings", NewSavingsHandler().Create)

	body := `{"amount":500,"action":"withdraw"}`
	req := httptest.NewRequest("POST", "/savings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "储蓄余额不足")
	require.NoError(t, mock.ExpectationsWereMet())
}
