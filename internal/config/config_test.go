package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ml/loom/internal/config"
)

func writeExperiment(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validExperiment = `
network:
  layers: [4, 8, 3]
metric: mae
initializer:
  kind: xavier
  seed: 42
data:
  test_csv: testdata/iris.csv
  classes: 3
  scale: 1
store:
  backend: sqlite
  path: runs.db
progress_every: 100
`

func TestLoad_Valid(t *testing.T) {
	exp, err := config.Load(writeExperiment(t, validExperiment))
	require.NoError(t, err)

	assert.Equal(t, []int{4, 8, 3}, exp.Network.Layers)
	assert.Equal(t, "mae", exp.Metric)
	assert.Equal(t, "xavier", exp.Initializer.Kind)
	assert.Equal(t, int64(42), exp.Initializer.Seed)
	assert.Equal(t, "testdata/iris.csv", exp.Data.TestCSV)
	assert.Equal(t, 3, exp.Data.Classes)
	assert.Equal(t, "sqlite", exp.Store.Backend)
	assert.Equal(t, 100, exp.ProgressEvery)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := config.Load(writeExperiment(t, "network: [not: valid"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Experiment {
		exp, err := config.Load(writeExperiment(t, validExperiment))
		require.NoError(t, err)
		return exp
	}

	cases := map[string]func(*config.Experiment){
		"too few layers":       func(e *config.Experiment) { e.Network.Layers = []int{3} },
		"zero width layer":     func(e *config.Experiment) { e.Network.Layers = []int{4, 0, 3} },
		"missing metric":       func(e *config.Experiment) { e.Metric = "" },
		"unknown metric":       func(e *config.Experiment) { e.Metric = "rmse" },
		"unknown initializer":  func(e *config.Experiment) { e.Initializer.Kind = "he" },
		"missing csv":          func(e *config.Experiment) { e.Data.TestCSV = "" },
		"bad classes":          func(e *config.Experiment) { e.Data.Classes = 0 },
		"classes/output drift": func(e *config.Experiment) { e.Data.Classes = 5 },
		"unknown store":        func(e *config.Experiment) { e.Store.Backend = "postgres" },
		"sqlite needs a path":  func(e *config.Experiment) { e.Store.Backend = "sqlite"; e.Store.Path = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			exp := valid()
			mutate(exp)
			assert.Error(t, exp.Validate())
		})
	}

	t.Run("no initializer is valid", func(t *testing.T) {
		exp := valid()
		exp.Initializer.Kind = ""
		assert.NoError(t, exp.Validate())
	})

	t.Run("memory store needs no path", func(t *testing.T) {
		exp := valid()
		exp.Store.Backend = "memory"
		exp.Store.Path = ""
		assert.NoError(t, exp.Validate())
	})
}
