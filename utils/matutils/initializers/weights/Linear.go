package weights

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LinearUV initializes every entry of a matrix with values drawn from
// a univariate distribution
type LinearUV struct {
	distuv.Rander
}

// NewLinearUV creates and returns a new LinearUV
func NewLinearUV(rand distuv.Rander) LinearUV {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return LinearUV{rand}
}

// NewZero returns an initializer setting every entry to 0
func NewZero() LinearUV {
	return NewLinearUV(NewZeroUV())
}

// NewUniform returns an initializer drawing every entry uniformly
// from [0, max) using a source seeded with seed
func NewUniform(max float64, seed uint64) LinearUV {
	return NewLinearUV(distuv.Uniform{
		Min: 0,
		Max: max,
		Src: rand.NewSource(seed),
	})
}

// Initialize initializes a matrix of weights using values drawn from
// a univariate distribution
func (l LinearUV) Initialize(weights *mat.Dense) {
	if weights == nil {
		return
	}

	r, c := weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			weights.Set(i, j, l.Rand())
		}
	}
}
