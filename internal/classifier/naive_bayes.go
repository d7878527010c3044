// Package classifier implements a two-class multinomial Naive Bayes model over
// character n-gram features.
package classifier

import (
	"errors"
	"fmt"
	"math"

	"github.com/TheApexWu/BloodMeridianNLP/internal/ngram"
)

// DefaultSmoothing is the additive (Laplace) smoothing constant.
const DefaultSmoothing = 1.0

var (
	// ErrNoSamples is returned when training is attempted on an empty set.
	ErrNoSamples = errors.New("no training samples")
	// ErrEmptyClass is returned when one of the labels has no training samples.
	// It signals degenerate input rather than an I/O failure.
	ErrEmptyClass = errors.New("class has no training samples")
	// ErrInvalidSmoothing is returned for a non-positive smoothing constant.
	ErrInvalidSmoothing = errors.New("smoothing must be positive")
	// ErrEmptyVocabulary is returned when no sample is long enough to yield an
	// n-gram, so no likelihood can be estimated.
	ErrEmptyVocabulary = errors.New("training samples yield no n-grams")
)

// Options controls training and inference.
type Options struct {
	// Extractor produces the n-gram features for every text unit.
	Extractor ngram.Extractor
	// Smoothing is the additive constant applied to every feature count.
	Smoothing float64
	// IgnoreUnseen drops features outside the training vocabulary instead of
	// scoring them with the smoothed fallback probability.
	IgnoreUnseen bool
	// AllowEmptyClass trains even when a label has no samples. That label gets
	// a zero prior and is never predicted.
	AllowEmptyClass bool
}

// DefaultOptions returns 2..4 n-grams with add-one smoothing.
func DefaultOptions() Options {
	return Options{
		Extractor: ngram.DefaultExtractor(),
		Smoothing: DefaultSmoothing,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if err := o.Extractor.Validate(); err != nil {
		return err
	}
	if !(o.Smoothing > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSmoothing, o.Smoothing)
	}
	return nil
}

// Scores holds the joint log-probability of a text unit under each label.
type Scores [numLabels]float64

// Best returns the label with the highest score, preferring earlier labels on ties.
func (s Scores) Best() Label {
	best := Labels[0]
	for _, l := range Labels[1:] {
		if s[l] > s[best] {
			best = l
		}
	}
	return best
}

// Model is a trained classifier. It is immutable and safe for concurrent use.
type Model struct {
	opts          Options
	samples       int
	classCount    [numLabels]int
	featureTotal  [numLabels]int
	logPrior      [numLabels]float64
	logUnseen     [numLabels]float64
	logLikelihood map[string][numLabels]float64
}

// Train estimates priors and smoothed per-class n-gram likelihoods from samples.
func Train(samples []Sample, opts Options) (*Model, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	m := &Model{opts: opts, samples: len(samples)}
	counts := make(map[string][numLabels]int)

	for i, s := range samples {
		if !s.Label.Valid() {
			return nil, fmt.Errorf("sample %d: invalid label %v", i, s.Label)
		}
		m.classCount[s.Label]++
		for gram, c := range opts.Extractor.Extract(s.Text) {
			perClass := counts[gram]
			perClass[s.Label] += c
			counts[gram] = perClass
			m.featureTotal[s.Label] += c
		}
	}

	for _, l := range Labels {
		if m.classCount[l] == 0 && !opts.AllowEmptyClass {
			return nil, fmt.Errorf("%w: %s", ErrEmptyClass, l)
		}
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: shortest n-gram is %d runes", ErrEmptyVocabulary, opts.Extractor.MinN)
	}

	vocab := float64(len(counts))
	alpha := opts.Smoothing
	var denom [numLabels]float64
	for _, l := range Labels {
		m.logPrior[l] = math.Log(float64(m.classCount[l]) / float64(m.samples))
		denom[l] = math.Log(float64(m.featureTotal[l]) + alpha*vocab)
		m.logUnseen[l] = math.Log(alpha) - denom[l]
	}

	m.logLikelihood = make(map[string][numLabels]float64, len(counts))
	for gram, perClass := range counts {
		var ll [numLabels]float64
		for _, l := range Labels {
			ll[l] = math.Log(float64(perClass[l])+alpha) - denom[l]
		}
		m.logLikelihood[gram] = ll
	}

	return m, nil
}

// Scores returns the joint log-probability of text under each label.
func (m *Model) Scores(text string) Scores {
	s := Scores(m.logPrior)
	for gram, c := range m.opts.Extractor.Extract(text) {
		ll, known := m.logLikelihood[gram]
		if !known {
			if m.opts.IgnoreUnseen {
				continue
			}
			ll = m.logUnseen
		}
		for _, l := range Labels {
			s[l] += float64(c) * ll[l]
		}
	}
	return s
}

// Predict returns the most likely label for text.
func (m *Model) Predict(text string) Label {
	return m.Scores(text).Best()
}

// PredictBatch classifies each text independently, preserving order.
func (m *Model) PredictBatch(texts []string) []Label {
	out := make([]Label, len(texts))
	for i, t := range texts {
		out[i] = m.Predict(t)
	}
	return out
}

// SampleCount returns the number of samples the model was trained on.
func (m *Model) SampleCount() int { return m.samples }

// ClassCount returns the number of training samples carrying label l.
func (m *Model) ClassCount(l Label) int { return m.classCount[l] }

// VocabularySize returns the number of distinct n-grams seen during training.
func (m *Model) VocabularySize() int { return len(m.logLikelihood) }

// Prior returns the prior probability of label l.
func (m *Model) Prior(l Label) float64 { return math.Exp(m.logPrior[l]) }

// Options returns the options the model was trained with.
func (m *Model) Options() Options { return m.opts }
