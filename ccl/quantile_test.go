package ccl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantile_Linear(t *testing.T) {
	t.Parallel()

	testTable := []struct {
		name     string
		values   []float64
		q        float64
		expected float64
	}{
		{"exact rank", []float64{50, 10, 40, 20, 30}, 0.75, 40},
		{"interpolated", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"minimum", []float64{3, 1, 2}, 0, 1},
		{"maximum", []float64{3, 1, 2}, 1, 3},
		{"single value", []float64{7}, 0.9, 7},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, testCase.expected, quantileLinear(testCase.values, testCase.q), 1e-12)
		})
	}

	t.Run("empty set", func(t *testing.T) {
		t.Parallel()

		assert.True(t, math.IsNaN(quantileLinear(nil, 0.5)))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		t.Parallel()

		values := []float64{3, 1, 2}
		quantileLinear(values, 0.5)

		assert.Equal(t, []float64{3, 1, 2}, values)
	})
}

func TestQuantile_Nearest(t *testing.T) {
	t.Parallel()

	t.Run("odd count is the middle value", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 1020.0, quantileNearest([]float64{1100, 980, 1020, 1000, 1050}, 0.5))
	})

	t.Run("even count is an observed middle value", func(t *testing.T) {
		t.Parallel()

		for _, values := range [][]float64{
			{1, 2},
			{1, 2, 3, 4},
			{10, 20, 30, 40, 50, 60},
		} {
			var (
				median = quantileNearest(values, 0.5)
				mid    = len(values) / 2
			)

			assert.Contains(t, []float64{values[mid-1], values[mid]}, median)
		}
	})

	t.Run("halfway rounds to the even rank", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 1.0, quantileNearest([]float64{2, 1}, 0.5))
		assert.Equal(t, 3.0, quantileNearest([]float64{4, 3, 2, 1}, 0.5))
		assert.Equal(t, 30.0, quantileNearest([]float64{60, 50, 40, 30, 20, 10}, 0.5))
	})

	t.Run("empty set", func(t *testing.T) {
		t.Parallel()

		assert.True(t, math.IsNaN(quantileNearest(nil, 0.5)))
	})
}
