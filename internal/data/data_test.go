package data_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ml/loom/internal/data"
	"github.com/loom-ml/loom/internal/tensor"
)

func TestSliceProvider_ExhaustionAndReset(t *testing.T) {
	p := data.NewSliceProvider(
		data.Example{Input: tensor.Vector([]float32{1}), Target: tensor.Vector([]float32{0})},
		data.Example{Input: tensor.Vector([]float32{2}), Target: tensor.Vector([]float32{1})},
	)

	assert.Equal(t, 2, p.Size())

	first := p.Next()
	require.NotNil(t, first)
	assert.Equal(t, []float32{1}, first.Input.Data())

	second := p.Next()
	require.NotNil(t, second)
	assert.Nil(t, p.Next(), "exhaustion signaled by nil")
	assert.Nil(t, p.Next(), "stays exhausted")

	p.Reset()
	again := p.Next()
	require.NotNil(t, again)
	assert.Equal(t, []float32{1}, again.Input.Data())
}

func TestSliceProvider_HandsOutFreshTensors(t *testing.T) {
	original := tensor.Vector([]float32{3, 4})
	p := data.NewSliceProvider(
		data.Example{Input: original, Target: tensor.Vector([]float32{0, 0})},
	)

	ex := p.Next()
	require.NotNil(t, ex)

	// The trainer zeroes example buffers in place; the provider's
	// stored tensors must survive that.
	ex.Input.Zero()
	assert.Equal(t, []float32{3, 4}, original.Data())

	p.Reset()
	assert.Equal(t, []float32{3, 4}, p.Next().Input.Data())
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "label,f0,f1\n1,10,20\n0,30,40\n")

	p, err := data.LoadCSV(path, data.CSVConfig{Classes: 2, SkipHeader: true})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Size())

	first := p.Next()
	require.NotNil(t, first)
	assert.Equal(t, []float32{10, 20}, first.Input.Data())
	assert.Equal(t, []float32{0, 1}, first.Target.Data(), "one-hot target")

	second := p.Next()
	require.NotNil(t, second)
	assert.Equal(t, []float32{1, 0}, second.Target.Data())

	assert.Nil(t, p.Next())
	p.Reset()
	assert.NotNil(t, p.Next())
}

func TestLoadCSV_Scaling(t *testing.T) {
	path := writeCSV(t, "0,255,51\n")

	p, err := data.LoadCSV(path, data.CSVConfig{Classes: 1, Scale: 255})
	require.NoError(t, err)

	ex := p.Next()
	require.NotNil(t, ex)
	assert.InDelta(t, 1.0, ex.Input.Data()[0], 1e-6)
	assert.InDelta(t, 0.2, ex.Input.Data()[1], 1e-6)
}

func TestLoadCSV_MaxRows(t *testing.T) {
	path := writeCSV(t, "0,1\n0,2\n0,3\n")

	p, err := data.LoadCSV(path, data.CSVConfig{Classes: 1, MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Size())
}

func TestLoadCSV_Invalid(t *testing.T) {
	cases := map[string]struct {
		content string
		cfg     data.CSVConfig
	}{
		"label out of range": {"5,1\n", data.CSVConfig{Classes: 2}},
		"bad label":          {"x,1\n", data.CSVConfig{Classes: 2}},
		"bad feature":        {"0,abc\n", data.CSVConfig{Classes: 2}},
		"too few columns":    {"0\n", data.CSVConfig{Classes: 2}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeCSV(t, tc.content)
			_, err := data.LoadCSV(path, tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := data.LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), data.CSVConfig{Classes: 1})
	assert.Error(t, err)
}
