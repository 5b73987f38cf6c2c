package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestDecreaseStockIfEnough(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryGormRepository(db)

	//在庫が足りれば1行更新される
	mock.ExpectExec(`UPDATE "products" SET .*"stock_quantity"=stock_quantity - \$1.*id = \$\d+ AND stock_quantity >= \$\d+`).
		WithArgs(int64(3), sqlmock.AnyArg(), int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.DecreaseStockIfEnough(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecreaseStockIfEnough_InsufficientStock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryGormRepository(db)

	//条件に合う行が無ければ0行更新＝在庫不足
	mock.ExpectExec(`UPDATE "products" SET .*"stock_quantity"=stock_quantity - \$1`).
		WithArgs(int64(10), sqlmock.AnyArg(), int64(7), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.DecreaseStockIfEnough(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncreaseStock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryGormRepository(db)

	mock.ExpectExec(`UPDATE "products" SET .*"stock_quantity"=stock_quantity \+ \$1.*id = \$\d+`).
		WithArgs(int64(3), sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncreaseStock(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
