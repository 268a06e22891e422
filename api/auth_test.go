package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	// TranslateError 与生产配置保持一致，唯一索引冲突翻译为 gorm.ErrDuplicatedKey
	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "email", "first_name", "middle_name", "last_name", "created_at", "updated_at", "deleted_at"})
}

func TestAuthHandler_Register(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	defer func() { config.GlobalConfig = nil }()

	// 检查用户名/邮箱不存在：SELECT 返回无记录
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("newuser", "test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{}))

	// GORM Create 使用事务
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/register", h.Register)

	body := `{"username":"newuser","password":"password123","email":"test@example.com","first_name":"Flavio","last_name":"Rossi"}`
	req := httptest.NewRequest("POST", "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(200), resp["code"])
	assert.Equal(t, "注册成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret"},
	}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	// SELECT 返回已有用户
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("existinguser", "e@x.com").
		WillReturnRows(userRows().
			AddRow(1, "existinguser", "hash", "e@x.com", "F", "", "L", time.Now(), time.Now(), nil))

	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/register", h.Register)

	body := `{"username":"existinguser","password":"password123","email":"e@x.com","first_name":"F","last_name":"L"}`
	req := httptest.NewRequest("POST", "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "用户名或邮箱已被注册", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	defer func() { config.GlobalConfig = nil }()

	// SELECT 用户（username OR email）
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("loginuser", "loginuser").
		WillReturnRows(userRows().
			AddRow(1, "loginuser", string(hashed), "login@x.com", "F", "", "L", time.Now(), time.Now(), nil))

	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/login", h.Login)

	body := `{"username":"loginuser","password":"password123"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(200), resp["code"])
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}, JWT: config.JWTConfig{Secret: "x"}}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("loginuser", "loginuser").
		WillReturnRows(userRows().
			AddRow(1, "loginuser", string(hashed), "login@x.com", "F", "", "L", time.Now(), time.Now(), nil))

	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/login", h.Login)

	body := `{"username":"loginuser","password":"wrong"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_UserNotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}, JWT: config.JWTConfig{Secret: "x"}}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("nouser", "nouser").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/login", h.Login)

	body := `{"username":"nouser","password":"any"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
