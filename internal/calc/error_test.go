package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ml/loom/internal/calc"
	"github.com/loom-ml/loom/internal/tensor"
)

func TestMeanAbsoluteError(t *testing.T) {
	acc := calc.NewMeanAbsoluteError()
	assert.Equal(t, float32(0), acc.TotalError(), "empty accumulator reports zero")

	require.NoError(t, acc.AddSample(tensor.Vector([]float32{1, 2}), tensor.Vector([]float32{0, 0})))
	assert.InDelta(t, 1.5, acc.TotalError(), 1e-6)

	require.NoError(t, acc.AddSample(tensor.Vector([]float32{3}), tensor.Vector([]float32{-1})))
	assert.InDelta(t, (1.0+2.0+4.0)/3.0, acc.TotalError(), 1e-6)

	acc.Reset()
	assert.Equal(t, float32(0), acc.TotalError())
}

func TestMeanSquaredError(t *testing.T) {
	acc := calc.NewMeanSquaredError()

	require.NoError(t, acc.AddSample(tensor.Vector([]float32{2, 0}), tensor.Vector([]float32{0, 1})))
	assert.InDelta(t, (4.0+1.0)/2.0, acc.TotalError(), 1e-6)

	acc.Reset()
	assert.Equal(t, float32(0), acc.TotalError())
}

func TestOutputError_ShapeMismatch(t *testing.T) {
	acc := calc.NewMeanAbsoluteError()
	err := acc.AddSample(tensor.Vector([]float32{1, 2}), tensor.Vector([]float32{1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape mismatch")
}

func TestOutputError_NilTensor(t *testing.T) {
	acc := calc.NewMeanSquaredError()
	err := acc.AddSample(nil, tensor.Vector([]float32{1}))
	require.Error(t, err)
}
