package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderRepository_FindByIDForUpdateTxLocksRow(t *testing.T) {
	db, recorder := newDryRunDB(t)
	repo := NewOrderRepository(db)

	_, _ = repo.FindByIDForUpdateTx(context.Background(), db, 1)

	sql := recorder.last(t)
	assert.Contains(t, sql, "`orders`")
	assert.Contains(t, sql, "FOR UPDATE")
}
