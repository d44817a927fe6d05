package calc

import (
	"fmt"
	"math"

	"github.com/loom-ml/loom/internal/tensor"
)

// MeanAbsoluteError aggregates mean(|predicted - target|) across all
// elements of all added samples.
type MeanAbsoluteError struct {
	sum   float64
	count int
}

// NewMeanAbsoluteError creates an empty MAE accumulator.
func NewMeanAbsoluteError() *MeanAbsoluteError {
	return &MeanAbsoluteError{}
}

// AddSample scores one prediction against its target.
func (m *MeanAbsoluteError) AddSample(predicted, target *tensor.Tensor) error {
	p, t, err := pairData(predicted, target)
	if err != nil {
		return err
	}
	for i := range p {
		m.sum += math.Abs(float64(p[i] - t[i]))
	}
	m.count += len(p)
	return nil
}

// TotalError returns the mean absolute error over all added samples,
// or 0 if no samples were added.
func (m *MeanAbsoluteError) TotalError() float32 {
	if m.count == 0 {
		return 0
	}
	return float32(m.sum / float64(m.count))
}

// Reset discards accumulated state.
func (m *MeanAbsoluteError) Reset() {
	m.sum = 0
	m.count = 0
}

// MeanSquaredError aggregates mean((predicted - target)²) across all
// elements of all added samples.
type MeanSquaredError struct {
	sum   float64
	count int
}

// NewMeanSquaredError creates an empty MSE accumulator.
func NewMeanSquaredError() *MeanSquaredError {
	return &MeanSquaredError{}
}

// AddSample scores one prediction against its target.
func (m *MeanSquaredError) AddSample(predicted, target *tensor.Tensor) error {
	p, t, err := pairData(predicted, target)
	if err != nil {
		return err
	}
	for i := range p {
		d := float64(p[i] - t[i])
		m.sum += d * d
	}
	m.count += len(p)
	return nil
}

// TotalError returns the mean squared error over all added samples,
// or 0 if no samples were added.
func (m *MeanSquaredError) TotalError() float32 {
	if m.count == 0 {
		return 0
	}
	return float32(m.sum / float64(m.count))
}

// Reset discards accumulated state.
func (m *MeanSquaredError) Reset() {
	m.sum = 0
	m.count = 0
}

func pairData(predicted, target *tensor.Tensor) ([]float32, []float32, error) {
	if predicted == nil || target == nil {
		return nil, nil, fmt.Errorf("output error: nil tensor")
	}
	if !predicted.Shape().Equal(target.Shape()) {
		return nil, nil, fmt.Errorf("output error: shape mismatch %v vs %v", predicted.Shape(), target.Shape())
	}
	return predicted.Data(), target.Data(), nil
}
