package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPrice(t *testing.T) {
	tests := []struct {
		name    string
		current uint64
		ceiling uint64
		want    uint64
	}{
		{"two percent", 100, 200, 102},
		{"truncates", 102, 200, 104},
		{"small price never moves", 49, 98, 49},
		{"fifty rises by one", 50, 100, 51},
		{"clamped", 199, 200, 200},
		{"at ceiling", 200, 200, 200},
		{"zero", 0, 0, 0},
		{"large no wrap", math.MaxUint64 / 200, math.MaxUint64, math.MaxUint64 / 200 * 102 / 100},
		{"overflowing quotient clamps", math.MaxUint64, math.MaxUint64, math.MaxUint64},
		{"near max below ceiling", math.MaxUint64 / 2, math.MaxUint64, 9407839477591871323},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextPrice(tt.current, tt.ceiling))
		})
	}
}
