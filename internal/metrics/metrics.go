// Package metrics records run statistics in a private Prometheus registry and
// writes them out as a textfile once a batch run finishes.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/TheApexWu/BloodMeridianNLP/internal/evaluate"
)

const namespace = "meridian"

// Recorder holds the collectors for one run.
type Recorder struct {
	registry *prometheus.Registry

	samplesLoaded    *prometheus.GaugeVec
	tokensClassified *prometheus.CounterVec
	linesScanned     prometheus.Counter
	linesRetained    prometheus.Counter
	stageDuration    *prometheus.HistogramVec
	vocabularySize   *prometheus.GaugeVec
	evalAccuracy     prometheus.Gauge
	evalF1           *prometheus.GaugeVec
}

// New creates a recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		samplesLoaded: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "lexicon_samples",
				Help:      "Number of lexicon samples loaded per label",
			},
			[]string{"label"},
		),
		tokensClassified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_classified_total",
				Help:      "Document tokens classified, by predicted label",
			},
			[]string{"label"},
		),
		linesScanned: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_scanned_total",
				Help:      "Document lines containing at least one token",
			},
		),
		linesRetained: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_retained_total",
				Help:      "Document lines kept as dialogue",
			},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Pipeline stage duration in seconds",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 60},
			},
			[]string{"stage"}, // stage: load, evaluate, train, scan, write
		),
		vocabularySize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "model_vocabulary_size",
				Help:      "Distinct n-grams seen in training",
			},
			[]string{"model"}, // model: evaluation, production
		),
		evalAccuracy: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "evaluation_accuracy",
				Help:      "Accuracy on the held-out split",
			},
		),
		evalF1: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "evaluation_f1",
				Help:      "Per-class F1 score on the held-out split",
			},
			[]string{"label"},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// RecordSamples sets the loaded sample count for label.
func (r *Recorder) RecordSamples(label classifier.Label, n int) {
	r.samplesLoaded.WithLabelValues(label.String()).Set(float64(n))
}

// RecordToken counts one classified token.
func (r *Recorder) RecordToken(label classifier.Label) {
	r.tokensClassified.WithLabelValues(label.String()).Inc()
}

// RecordLines adds scanned and retained line counts.
func (r *Recorder) RecordLines(scanned, retained int) {
	r.linesScanned.Add(float64(scanned))
	r.linesRetained.Add(float64(retained))
}

// ObserveStage records how long a stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordVocabulary sets the vocabulary size for the named model.
func (r *Recorder) RecordVocabulary(model string, size int) {
	r.vocabularySize.WithLabelValues(model).Set(float64(size))
}

// RecordEvaluation stores accuracy and per-class F1 from a report.
func (r *Recorder) RecordEvaluation(rep *evaluate.Report) {
	r.evalAccuracy.Set(rep.Accuracy)
	for _, c := range rep.Classes {
		r.evalF1.WithLabelValues(c.Label).Set(c.F1)
	}
}

// WriteTextfile writes all metrics in the text exposition format. The file is
// replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
