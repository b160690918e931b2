package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"it-inventory/internal/config"
	"it-inventory/internal/database"
	"it-inventory/internal/models"
	"it-inventory/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestUsername = "testadmin"
	TestPassword = "Test123!"
)

// SetupTestDB открывает соединение с тестовой базой в отдельной схеме.
// Каждый тест получает изолированную схему, которая удаляется после него.
// Без доступной базы тест пропускается.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load()

	baseDSN := os.Getenv("TEST_DB_DSN")
	if baseDSN == "" {
		baseDSN = os.Getenv("DB_DSN")
	}
	if baseDSN == "" {
		t.Skip("TEST_DB_DSN is not set, skipping database test")
	}

	schemaName := fmt.Sprintf("test_inventory_%d", time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("test database is not reachable: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path в DSN, чтобы все соединения пула работали в схеме теста
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test schema: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter собирает полный роутер приложения поверх тестовой базы.
func SetupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServerPort:      "8080",
		SessionSecret:   "test-session-secret",
		FrontendBaseURL: "http://localhost:3000",
	}
	return server.NewRouter(cfg, zap.NewNop(), db)
}

// SeedUser заводит пользователя с заданной ролью.
func SeedUser(t *testing.T, db *gorm.DB, username, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Username: username, PasswordHash: string(hash), Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// Login выполняет вход и возвращает cookie сессии для последующих запросов.
func Login(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	w := DoRequest(r, http.MethodPost, "/api/login", map[string]any{
		"username": username,
		"password": password,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: status %d, body %s", w.Code, w.Body.String())
	}
	res := w.Result()
	defer res.Body.Close()
	return res.Cookies()
}

// LoginAsAdmin заводит админа и возвращает cookie его сессии.
func LoginAsAdmin(t *testing.T, db *gorm.DB, r *gin.Engine) []*http.Cookie {
	t.Helper()
	SeedUser(t, db, TestUsername, TestPassword, models.RoleAdmin)
	return Login(t, r, TestUsername, TestPassword)
}

// DoRequest выполняет запрос к тестовому роутеру.
func DoRequest(r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse разбирает JSON-ответ в карту.
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return result
}

// ParseListResponse разбирает JSON-массив ответа.
func ParseListResponse(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var result []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return result
}

// SeedType заводит тип устройства.
func SeedType(t *testing.T, db *gorm.DB, name string) *models.Type {
	t.Helper()
	typ := &models.Type{Name: name}
	if err := db.Create(typ).Error; err != nil {
		t.Fatalf("failed to seed type: %v", err)
	}
	return typ
}

// SeedStatus заводит статус.
func SeedStatus(t *testing.T, db *gorm.DB, name string) *models.Status {
	t.Helper()
	st := &models.Status{Name: name}
	if err := db.Create(st).Error; err != nil {
		t.Fatalf("failed to seed status: %v", err)
	}
	return st
}

// SeedDepartment заводит отдел.
func SeedDepartment(t *testing.T, db *gorm.DB, name string) *models.Department {
	t.Helper()
	d := &models.Department{Name: name}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("failed to seed department: %v", err)
	}
	return d
}

// SeedEmployee заводит сотрудника.
func SeedEmployee(t *testing.T, db *gorm.DB, name string, departmentID uint) *models.Employee {
	t.Helper()
	e := &models.Employee{Name: name, DepartmentID: &departmentID}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return e
}
