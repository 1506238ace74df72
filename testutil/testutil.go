// Package testutil wires up an in-memory copy of the whole application for
// handler-level tests: SQLite instead of Postgres, miniredis instead of Redis.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/auth"
	"github.com/rajsomesetty/primerice-backend/config"
	"github.com/rajsomesetty/primerice-backend/models"
	"github.com/rajsomesetty/primerice-backend/routes"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const JWTSecret = "test-secret"

// NewTestDB opens a fresh in-memory SQLite database migrated to the full
// schema. Each test gets its own database, named after the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Keep all sessions on one connection so the shared in-memory database
	// is not dropped between queries.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	); err != nil {
		t.Fatalf("auto-migrate failed: %v", err)
	}
	return db
}

// NewRedis starts a miniredis server for the test and returns a client bound
// to it.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

// NewServer builds a gin engine with the full route table mounted on the
// given database.
func NewServer(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	rdb, _ := NewRedis(t)
	return NewServerWithRedis(t, db, rdb)
}

// NewServerWithRedis is NewServer with a caller-supplied Redis client, for
// tests that need to reach into the OTP store.
func NewServerWithRedis(t *testing.T, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: JWTSecret},
		Uploads: config.UploadsConfig{Dir: t.TempDir(), PublicPath: "/uploads"},
	}

	r := gin.New()
	routes.SetupRoutes(r, db, rdb, cfg, zap.NewNop())
	return r
}

// CreateUser inserts a user with the given role. The password is always
// "password123".
func CreateUser(t *testing.T, db *gorm.DB, name, mobile, role string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Name: name, Mobile: mobile, Password: hash, Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// TokenFor issues a valid bearer token for the user.
func TokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := auth.IssueToken(JWTSecret, user.ID, user.Role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// DoJSON performs a JSON request against the engine. An empty token leaves the
// Authorization header unset.
func DoJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a JSON response body into dest.
func Decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
