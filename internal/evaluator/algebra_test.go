package evaluator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

var (
	boolType = &DataType{Name: "Bool", Variants: []string{"F", "T"}}
	atomF    = &Atom{Data: boolType, Index: 0}
	atomT    = &Atom{Data: boolType, Index: 1}
)

func sup(branches ...Branch) *Superposition {
	return &Superposition{Branches: branches}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"plain value untouched", atomT, "T"},
		{"coalesce", sup(Branch{atomF, 0.5}, Branch{atomT, 0.5}, Branch{atomF, 0.5}), "{F: 1, T: 0.5}"},
		{"cancel", sup(Branch{atomF, 1}, Branch{atomT, 1}, Branch{atomF, -1}), "T"},
		{"cancel all", sup(Branch{atomF, 1}, Branch{atomF, -1}), "{}"},
		{"below epsilon", sup(Branch{atomF, 1}, Branch{atomT, 1e-12}), "F"},
		{"first occurrence order", sup(Branch{atomT, 1}, Branch{atomF, 1}, Branch{atomT, 1}), "{T: 2, F: 1}"},
		{"tuples by structure", sup(
			Branch{&Tuple{Elements: []Value{atomF, atomT}}, 1},
			Branch{&Tuple{Elements: []Value{atomF, atomT}}, 1},
		), "{(F, T): 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Merge(tt.input).Inspect())
		})
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	values := []Value{
		sup(Branch{atomF, 0.3}, Branch{atomT, -0.2}, Branch{atomF, 0.1i}),
		sup(Branch{atomF, 1}, Branch{atomF, -1}),
		TensorN([]Value{sup(Branch{atomF, 1}, Branch{atomT, 1}), atomT}),
		atomF,
	}
	for _, v := range values {
		once := Merge(v)
		assert.Equal(t, once.Inspect(), Merge(once).Inspect())
	}
}

func TestNormalize(t *testing.T) {
	v := sup(Branch{atomF, 3}, Branch{atomT, 4i})
	n, err := Normalize(v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, floats.Sum(Probabilities(n)), 1e-12)
	assert.Equal(t, "{F: 0.6, T: 0.8i}", n.Inspect())

	again, err := Normalize(n)
	require.NoError(t, err)
	assert.True(t, Equal(n, again))
	assert.Equal(t, n.Inspect(), again.Inspect())

	plain, err := Normalize(atomT)
	require.NoError(t, err)
	assert.Same(t, atomT, plain)

	_, err = Normalize(NullState)
	assert.ErrorIs(t, err, ErrDegenerateState)
	_, err = Normalize(sup(Branch{atomF, 0}))
	assert.ErrorIs(t, err, ErrDegenerateState)
}

func TestTensor(t *testing.T) {
	plain := TensorN([]Value{atomF, atomT})
	assert.IsType(t, &Tuple{}, plain)
	assert.Equal(t, "(F, T)", plain.Inspect())

	h := sup(Branch{atomF, Amplitude(complex(1/math.Sqrt2, 0))}, Branch{atomT, Amplitude(complex(1/math.Sqrt2, 0))})
	pair := Tensor(h, h)
	require.IsType(t, &Superposition{}, pair)
	assert.Len(t, pair.(*Superposition).Branches, 4)
	assert.InDelta(t, 1.0, floats.Sum(Probabilities(pair)), 1e-12)
	assert.Equal(t, 4, TensorCount([]Value{h, h}))

	assert.Equal(t, "{}", Tensor(h, NullState).Inspect())
}

func TestEqual(t *testing.T) {
	a := Amplitude(complex(1/math.Sqrt2, 0))
	tests := []struct {
		name  string
		x, y  Value
		equal bool
	}{
		{"same atom", atomT, atomT, true},
		{"different atoms", atomT, atomF, false},
		{"redeclared type", atomT, &Atom{Data: &DataType{Name: "Bool", Variants: []string{"F", "T"}}, Index: 1}, true},
		{"lifted unit branch", atomT, sup(Branch{atomT, 1}), true},
		{"unnormalized", sup(Branch{atomF, 2}, Branch{atomT, 2}), sup(Branch{atomT, a}, Branch{atomF, a}), true},
		{"relative phase", sup(Branch{atomF, a}, Branch{atomT, a}), sup(Branch{atomF, a}, Branch{atomT, -a}), false},
		{"global phase", atomT, PhaseFlip(atomT), false},
		{"both null", NullState, sup(Branch{atomF, 1}, Branch{atomF, -1}), true},
		{"null and value", NullState, atomF, false},
		{"tuples", &Tuple{Elements: []Value{atomF, atomT}}, &Tuple{Elements: []Value{atomF, atomT}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.x, tt.y))
			assert.Equal(t, tt.equal, Equal(tt.y, tt.x))
		})
	}
}

func TestAmplitudeString(t *testing.T) {
	tests := []struct {
		amp      Amplitude
		expected string
	}{
		{1, "1"},
		{Amplitude(complex(1/math.Sqrt2, 0)), "0.7071"},
		{-0.5, "-0.5"},
		{0.5i, "0.5i"},
		{complex(0.5, -0.5), "0.5-0.5i"},
		{complex(0.5, 0.25), "0.5+0.25i"},
		{complex(-0.00001, 0), "0"},
		{Polar(1, math.Pi), "-1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.amp.String())
	}
}

func TestAmplitudeFlip(t *testing.T) {
	assert.True(t, Amplitude(-1).IsFlipped())
	assert.True(t, Polar(0.5, math.Pi).IsFlipped())
	assert.False(t, Amplitude(1).IsFlipped())
	assert.False(t, Amplitude(1i).IsFlipped())
	assert.False(t, Amplitude(0).IsFlipped())
	assert.InDelta(t, 0.25, Polar(0.5, 1.3).Probability(), 1e-12)
}

func TestEnvironmentShadowing(t *testing.T) {
	root := NewEnvironment().With("x", atomF)
	inner := root.With("x", atomT)

	v, err := inner.Lookup("x")
	require.NoError(t, err)
	assert.Same(t, atomT, v)

	v, err = root.Lookup("x")
	require.NoError(t, err)
	assert.Same(t, atomF, v)

	_, err = root.Lookup("y")
	assert.ErrorIs(t, err, ErrUnboundIdentifier)
	assert.Equal(t, []string{"x"}, inner.Names())
}
