package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefundSplit(t *testing.T) {
	refund, remainder := RefundSplit(1000)
	assert.InDelta(t, 900.0, refund, 1e-9)
	assert.InDelta(t, 100.0, remainder, 1e-9)
}

func TestRefundSplit_SumsToTotal(t *testing.T) {
	for _, total := range []float64{0, 1, 99.99, 1499.50, 250000} {
		refund, remainder := RefundSplit(total)
		assert.InDelta(t, total, refund+remainder, 1e-9)
		assert.InDelta(t, total*CancelRefundFraction, refund, 1e-9)
	}
}
