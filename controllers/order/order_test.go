package orderControllers

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

// Gateway order ids are non-numeric; the lookup must never bind them against
// the bigint id column, where Postgres would fail the cast.
func TestGetOrderByID_GatewayOrderID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "user_id", "total_amount", "status"}).
			AddRow(12, "order_abc123", 7, 1499.50, "Paid"))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_row"}))

	r := gin.New()
	r.GET("/api/orders/:orderID", GetOrderByIDHandler(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/order_abc123", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order_id":"order_abc123"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_NumericRowID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "user_id", "total_amount", "status"}).
			AddRow(12, "order_abc123", 7, 1499.50, "Paid"))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_row"}))

	r := gin.New()
	r.GET("/api/orders/:orderID", GetOrderByIDHandler(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/12", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := gin.New()
	r.GET("/api/orders/:orderID", GetOrderByIDHandler(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/order_missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
