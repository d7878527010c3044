package evaluate

import (
	"fmt"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
)

const (
	// DefaultTestFraction is the share of samples held out for evaluation.
	DefaultTestFraction = 0.2
	// DefaultSeed makes the held-out partition reproducible.
	DefaultSeed uint64 = 42
)

// Options configures an evaluation run.
type Options struct {
	TestFraction float64
	Seed         uint64
	Classifier   classifier.Options
}

// DefaultOptions returns an 80/20 split with seed 42.
func DefaultOptions() Options {
	return Options{
		TestFraction: DefaultTestFraction,
		Seed:         DefaultSeed,
		Classifier:   classifier.DefaultOptions(),
	}
}

// Evaluation is the outcome of training on the split and scoring the held-out set.
// Model is the evaluation model; it has seen only the training partition.
type Evaluation struct {
	Model     *classifier.Model
	Report    *Report
	TrainSize int
	TestSize  int
	Seed      uint64
}

// Run splits samples, trains on the training partition and reports on the rest.
func Run(samples []classifier.Sample, opts Options) (*Evaluation, error) {
	train, test, err := Split(samples, opts.TestFraction, opts.Seed)
	if err != nil {
		return nil, err
	}

	model, err := classifier.Train(train, opts.Classifier)
	if err != nil {
		return nil, fmt.Errorf("training evaluation model: %w", err)
	}

	truth := make([]classifier.Label, len(test))
	texts := make([]string, len(test))
	for i, s := range test {
		truth[i] = s.Label
		texts[i] = s.Text
	}

	report, err := NewReport(truth, model.PredictBatch(texts))
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		Model:     model,
		Report:    report,
		TrainSize: len(train),
		TestSize:  len(test),
		Seed:      opts.Seed,
	}, nil
}
