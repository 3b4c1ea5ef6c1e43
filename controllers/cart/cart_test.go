package cartControllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

// A malformed product id in the path is a client error; it must never reach
// the integer product_id column.
func TestDeleteCartItem_BadProductIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t)
	hub := realtime.NewHub()

	r := gin.New()
	r.DELETE("/api/cart/:product_id", func(c *gin.Context) {
		c.Set("user_id", uint(7))
		DeleteCartItem(db, hub)(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/cart/not-a-number", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdminUserCart_BadUserIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t)

	r := gin.New()
	r.GET("/api/admin/user-cart/:user_id", GetAdminUserCart(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/user-cart/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
