package membershipControllers

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

const sweepSQL = `UPDATE "users" SET .*membership_status.* WHERE is_admin = .* AND membership_status = .* AND membership_end_date < .*`

func TestExpireStale_FlipsOnlyStaleActiveRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(sweepSQL).WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := ExpireStale(db, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireStale_SecondRunIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)

	// The predicate only matches Active rows with a past end date; the first
	// run flips them to Expired, so an immediate second run matches nothing.
	mock.ExpectExec(sweepSQL).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(sweepSQL).WillReturnResult(sqlmock.NewResult(0, 0))

	now := time.Now()

	first, err := ExpireStale(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, first)

	second, err := ExpireStale(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}
