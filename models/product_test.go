package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockThenRelease_RestoresCounters(t *testing.T) {
	p := Product{StockQuantity: 8, LockedCount: 2}

	require.NoError(t, p.Lock(3))
	assert.Equal(t, 5, p.StockQuantity)
	assert.Equal(t, 5, p.LockedCount)

	require.NoError(t, p.Release(3))
	assert.Equal(t, 8, p.StockQuantity)
	assert.Equal(t, 2, p.LockedCount)
}

func TestLock_InsufficientStock(t *testing.T) {
	p := Product{StockQuantity: 2}

	err := p.Lock(3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, p.StockQuantity)
	assert.Equal(t, 0, p.LockedCount)
}

func TestLockThenConfirmConsumed(t *testing.T) {
	p := Product{StockQuantity: 5, LockedCount: 0}

	require.NoError(t, p.Lock(5))
	assert.Equal(t, 0, p.StockQuantity)
	assert.Equal(t, 5, p.LockedCount)

	require.NoError(t, p.ConfirmConsumed(5))
	assert.Equal(t, 0, p.StockQuantity)
	assert.Equal(t, 0, p.LockedCount)
}

func TestRelease_Underflow(t *testing.T) {
	p := Product{StockQuantity: 5, LockedCount: 1}

	assert.ErrorIs(t, p.Release(2), ErrLockUnderflow)
	assert.ErrorIs(t, p.ConfirmConsumed(2), ErrLockUnderflow)
	assert.Equal(t, 5, p.StockQuantity)
	assert.Equal(t, 1, p.LockedCount)
}

func TestCounterOps_RejectNonPositiveCount(t *testing.T) {
	p := Product{StockQuantity: 5, LockedCount: 5}

	assert.Error(t, p.Lock(0))
	assert.Error(t, p.Release(-1))
	assert.Error(t, p.ConfirmConsumed(0))
}
