package floatutils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestClip(t *testing.T) {
	assert.Equal(t, 0.3, Clip(0.1, 0.3, 1))
	assert.Equal(t, 1.0, Clip(1.5, 0.3, 1))
	assert.Equal(t, 0.5, Clip(0.5, 0.3, 1))
}

func TestWithin(t *testing.T) {
	i := r1.Interval{Min: 0, Max: 1}
	assert.True(t, Within(0, i))
	assert.True(t, Within(1, i))
	assert.False(t, Within(1.01, i))
	assert.False(t, Within(math.NaN(), i))
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(-3))
	assert.False(t, Finite(math.Inf(-1)))
	assert.False(t, Finite(math.NaN()))
}
