package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCartDelta(t *testing.T) {
	tests := []struct {
		name      string
		exists    bool
		current   int
		delta     int
		wantCount int
		wantAct   CartAction
	}{
		{"new item", false, 0, 2, 2, CartCreate},
		{"new item with bad delta", false, 0, -1, 0, CartDelete},
		{"increment", true, 1, 1, 2, CartUpdate},
		{"decrement", true, 3, -1, 2, CartUpdate},
		{"decrement to zero deletes", true, 1, -1, 0, CartDelete},
		{"decrement past zero deletes", true, 1, -5, 0, CartDelete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, act := ApplyCartDelta(tt.exists, tt.current, tt.delta)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantAct, act)
		})
	}
}
