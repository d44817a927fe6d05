package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/loom-ml/loom/internal/tensor"
)

// CSVConfig controls how a CSV file is interpreted.
type CSVConfig struct {
	// Classes is the number of label classes. The first column of each
	// row is the class index, one-hot encoded into the target tensor.
	Classes int
	// Scale divides every feature value; 0 means no scaling. Use 255
	// for byte-valued pixel data.
	Scale float32
	// SkipHeader skips the first row.
	SkipHeader bool
	// MaxRows limits the number of rows loaded; 0 loads all.
	MaxRows int
}

// CSVProvider serves examples parsed from a Kaggle-style CSV file:
//
//	label,feature0,feature1,...
//	5,0,0,12,...
//
// Rows are parsed eagerly at load time; tensors are built fresh per
// Next call.
type CSVProvider struct {
	features [][]float32
	labels   []int
	cfg      CSVConfig
	pos      int
}

// LoadCSV reads filename into a CSVProvider.
func LoadCSV(filename string, cfg CSVConfig) (*CSVProvider, error) {
	if cfg.Classes <= 0 {
		return nil, fmt.Errorf("csv provider: Classes must be positive, got %d", cfg.Classes)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if cfg.SkipHeader {
		if len(records) == 0 {
			return nil, fmt.Errorf("CSV file is empty")
		}
		records = records[1:]
	}
	if cfg.MaxRows > 0 && len(records) > cfg.MaxRows {
		records = records[:cfg.MaxRows]
	}

	p := &CSVProvider{cfg: cfg}
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: need a label and at least one feature, got %d columns", i+1, len(record))
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %w", i+1, err)
		}
		if label < 0 || label >= cfg.Classes {
			return nil, fmt.Errorf("label out of range [0, %d) at row %d: %d", cfg.Classes, i+1, label)
		}

		features := make([]float32, len(record)-1)
		for j, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid feature at row %d column %d: %w", i+1, j+1, err)
			}
			if cfg.Scale != 0 {
				v /= float64(cfg.Scale)
			}
			features[j] = float32(v)
		}

		p.features = append(p.features, features)
		p.labels = append(p.labels, label)
	}

	return p, nil
}

// Next returns the next example with a one-hot target, or nil at the
// end of the file.
func (p *CSVProvider) Next() *Example {
	if p.pos >= len(p.features) {
		return nil
	}

	input := tensor.Vector(p.features[p.pos])
	target := tensor.Zeros(tensor.Shape{p.cfg.Classes})
	target.Data()[p.labels[p.pos]] = 1

	p.pos++
	return &Example{Input: input, Target: target}
}

// Reset rewinds to the first row.
func (p *CSVProvider) Reset() {
	p.pos = 0
}

// Size returns the number of rows loaded.
func (p *CSVProvider) Size() int {
	return len(p.features)
}
