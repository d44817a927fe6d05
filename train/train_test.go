package train_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ml/loom/tensor"
	"github.com/loom-ml/loom/train"
)

// TestEvaluate_PublicAPI wires a dense network end to end through the
// facade: Xavier-initialized weights, a two-example pass, and the MSE
// aggregate.
func TestEvaluate_PublicAPI(t *testing.T) {
	in := train.NewLayer("in")
	out := train.NewLayer("out")

	dense, err := train.NewDense(in, out, 2, 2)
	require.NoError(t, err)

	network, err := train.NewNetwork(in, out, dense)
	require.NoError(t, err)

	examples := []train.Example{
		{Input: tensor.Vector([]float32{1, 0}), Target: tensor.Vector([]float32{1, 0})},
		{Input: tensor.Vector([]float32{0, 1}), Target: tensor.Vector([]float32{0, 1})},
	}

	trainer := train.New(train.Config{
		Network:         network,
		TestingProvider: train.NewSliceProvider(examples...),
		OutputError:     train.NewMeanSquaredError(),
		Calculator:      train.NewFeedforward(network),
		Initializer:     train.NewXavier(2, 2, 42),
	})

	progress := train.NewProgress(0)
	trainer.Subscribe(progress)

	trainer.InitializeWeights()
	assert.False(t, dense.Weights().IsZero(), "Xavier left weights zero")

	total, err := trainer.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, int64(2), progress.Samples())
	assert.Greater(t, total, float32(0), "random weights should not match the targets exactly")
}

// TestEvaluate_IdentityNetwork pins the aggregate error for an
// identity calculator, per the engine's reference scenario.
func TestEvaluate_IdentityNetwork(t *testing.T) {
	in := train.NewLayer("in")
	out := train.NewLayer("out")
	network, err := train.NewNetwork(in, out, train.NewIdentity(in, out))
	require.NoError(t, err)

	trainer := train.New(train.Config{
		Network:         network,
		TestingProvider: train.NewSliceProvider(
			train.Example{Input: tensor.Vector([]float32{2}), Target: tensor.Vector([]float32{1})},
			train.Example{Input: tensor.Vector([]float32{5}), Target: tensor.Vector([]float32{2})},
		),
		OutputError: train.NewMeanAbsoluteError(),
		Calculator:  train.NewFeedforward(network),
	})

	total, err := trainer.Evaluate()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, total, 1e-6) // mean(|2-1|, |5-2|)
}
