package api

import (
	"encoding/json"
	"testing"
	"time"

	"budgetbuddy/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResetRouter(db *gorm.DB, t *testing.T) *gin.Engine {
	cfg := newTestConfig(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewPasswordResetHandler(cfg, store.NewUserStore(db))
	router.POST("/password/request-reset", h.RequestReset)
	router.POST("/password/verify-code", h.VerifyCode)
	router.POST("/password/reset", h.ResetPassword)
	return router
}

func TestPasswordResetHandler_RequestReset_UnknownEmail(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newResetRouter(db, t)

	w := postJSON(router, "/password/request-reset", `{"email":"nobody@example.com"}`)

	// 未注册邮箱返回与已注册相同的提示
	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "如果该邮箱已注册，您将收到密码重置验证码", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPasswordResetHandler_VerifyCode_Invalid(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `password_resets`").
		WithArgs("alice@example.com", "000000", false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newResetRouter(db, t)

	w := postJSON(router, "/password/verify-code",
		`{"email":"alice@example.com","code":"000000"}`)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "验证码无效或已过期", resp["message"])
}

func TestPasswordResetHandler_VerifyCode_Expired(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	expired := time.Now().Add(-time.Minute)
	mock.ExpectQuery("SELECT .* FROM `password_resets`").
		WithArgs("alice@example.com", "123456", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "code", "email", "expires_at", "used"}).
			AddRow(1, 1, "123456", "alice@example.com", expired, false))

	router := newResetRouter(db, t)

	w := postJSON(router, "/password/verify-code",
		`{"email":"alice@example.com","code":"123456"}`)

	assert.Equal(t, 400, w.Code)
}

func TestPasswordResetHandler_ResetPassword(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	valid := time.Now().Add(10 * time.Minute)
	mock.ExpectQuery("SELECT .* FROM `password_resets`").
		WithArgs("alice@example.com", "123456", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "code", "email", "expires_at", "used"}).
			AddRow(1, 7, "123456", "alice@example.com", valid, false))

	// 更新用户密码
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 作废同邮箱验证码
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `password_resets`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newResetRouter(db, t)

	w := postJSON(router, "/password/reset",
		`{"email":"alice@example.com","code":"123456","new_password":"newpassword123"}`)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "密码重置成功，请使用新密码登录", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}
