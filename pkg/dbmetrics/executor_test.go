package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &fakeDB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "SELECT", Operation("SELECT id FROM bookings"))
	assert.Equal(t, "INSERT", Operation("  insert into bookings (id) values ($1)"))
	assert.Equal(t, "UPDATE", Operation("UPDATE\nbookings SET status = $1"))
	assert.Equal(t, "OTHER", Operation("VACUUM"))
	assert.Equal(t, "OTHER", Operation(""))
}

var _ TxExecutor = (*sql.Tx)(nil)
var _ TxExecutor = (*Tx)(nil)
var _ DBExecutor = (*DB)(nil)
