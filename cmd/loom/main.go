// Package main provides the Loom evaluation engine CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/loom-ml/loom/internal/calc"
	"github.com/loom-ml/loom/internal/config"
	"github.com/loom-ml/loom/internal/data"
	"github.com/loom-ml/loom/internal/graph"
	"github.com/loom-ml/loom/internal/random"
	"github.com/loom-ml/loom/internal/storage"
	"github.com/loom-ml/loom/internal/training"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Loom %s\n", version)
	case "eval":
		if err := runEval(os.Args[2:]); err != nil {
			log.Fatalf("eval: %v", err)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Loom - neural network evaluation engine")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version              Show version")
	fmt.Println("  eval -config FILE    Run an evaluation pass from an experiment file")
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	configPath := fs.String("config", "experiment.yaml", "Path to the experiment YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	exp, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	network, err := buildNetwork(exp)
	if err != nil {
		return err
	}

	provider, err := data.LoadCSV(exp.Data.TestCSV, data.CSVConfig{
		Classes:    exp.Data.Classes,
		Scale:      exp.Data.Scale,
		SkipHeader: exp.Data.SkipHeader,
		MaxRows:    exp.Data.MaxRows,
	})
	if err != nil {
		return err
	}

	metric, err := buildMetric(exp.Metric)
	if err != nil {
		return err
	}

	initializer, err := buildInitializer(exp)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(exp.Store.Backend, exp.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.CloseIfSupported(store); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	trainer := training.New(training.Config{
		Network:         network,
		TestingProvider: provider,
		OutputError:     metric,
		Calculator:      calc.NewFeedforward(network),
		Initializer:     initializer,
	})
	trainer.Subscribe(training.NewProgress(exp.ProgressEvery))
	trainer.Subscribe(storage.NewRecorder(store, exp.Metric, metric))

	trainer.InitializeWeights()

	total, err := trainer.Evaluate()
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %s=%.6f over %d samples\n", trainer.RunID(), exp.Metric, total, provider.Size())

	if rec, ok, err := store.GetRun(context.Background(), trainer.RunID()); err == nil && ok {
		fmt.Printf("recorded at %s\n", rec.FinishedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}

func buildNetwork(exp *config.Experiment) (*graph.Network, error) {
	widths := exp.Network.Layers

	layers := make([]*graph.Layer, len(widths))
	for i := range widths {
		layers[i] = graph.NewLayer(fmt.Sprintf("layer-%d", i))
	}

	connections := make([]graph.Connection, 0, len(widths)-1)
	for i := 0; i < len(widths)-1; i++ {
		dense, err := graph.NewDense(layers[i], layers[i+1], widths[i+1], widths[i])
		if err != nil {
			return nil, err
		}
		connections = append(connections, dense)
	}

	return graph.NewNetwork(layers[0], layers[len(layers)-1], connections...)
}

func buildMetric(name string) (calc.OutputError, error) {
	switch name {
	case "mae":
		return calc.NewMeanAbsoluteError(), nil
	case "mse":
		return calc.NewMeanSquaredError(), nil
	default:
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
}

func buildInitializer(exp *config.Experiment) (random.Initializer, error) {
	init := exp.Initializer
	switch init.Kind {
	case "":
		return nil, nil
	case "xavier":
		// Fan-in/fan-out from the first and last layer widths.
		widths := exp.Network.Layers
		return random.NewXavier(widths[0], widths[len(widths)-1], init.Seed), nil
	case "uniform":
		return random.NewUniform(init.Min, init.Max, init.Seed), nil
	case "normal":
		return random.NewNormal(init.Mean, init.Stddev, init.Seed), nil
	default:
		return nil, fmt.Errorf("unknown initializer: %s", init.Kind)
	}
}
