package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_RoundsHalfUp(t *testing.T) {
	cases := []struct {
		amount int64
		rate   string
		want   int64
	}{
		{2000, "0.05", 100},
		{10, "0.05", 1},
		{9, "0.05", 0},
		{100, "0.005", 1},
		{30, "0.005", 0},
		{999, "1.4", 1399},
		{0, "0.03", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Apply(tc.amount, Rate(tc.rate)), "%d * %s", tc.amount, tc.rate)
	}
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, int64(29), PercentOf(400, 1400))
	assert.Equal(t, int64(50), PercentOf(1, 2))
	assert.Equal(t, int64(0), PercentOf(5, 0))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 4.5, RoundTo(4.45, 1))
	assert.Equal(t, 3.7, RoundTo(3.6666, 1))
}
