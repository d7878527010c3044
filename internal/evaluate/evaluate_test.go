package evaluate

import (
	"testing"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/TheApexWu/BloodMeridianNLP/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSamples() []classifier.Sample {
	var out []classifier.Sample
	for _, w := range testutil.SpanishWords {
		out = append(out, classifier.Sample{Text: w, Label: classifier.Spanish})
	}
	for _, w := range testutil.EnglishWords {
		out = append(out, classifier.Sample{Text: w, Label: classifier.English})
	}
	return out
}

func TestRun_TrainsOnTrainingPartitionOnly(t *testing.T) {
	samples := fixtureSamples()

	ev, err := Run(samples, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, ev.TrainSize+ev.TestSize, len(samples))
	assert.Equal(t, ev.TrainSize, ev.Model.SampleCount())
	assert.Equal(t, ev.TestSize, ev.Report.Total)
	assert.Equal(t, DefaultSeed, ev.Seed)

	var support int
	for _, c := range ev.Report.Classes {
		support += c.Support
	}
	assert.Equal(t, ev.TestSize, support)
}

func TestRun_Reproducible(t *testing.T) {
	samples := fixtureSamples()

	first, err := Run(samples, DefaultOptions())
	require.NoError(t, err)
	second, err := Run(samples, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.Report, second.Report)

	a, err := FormatReport(first, "text")
	require.NoError(t, err)
	b, err := FormatReport(second, "text")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_PropagatesDegenerateInput(t *testing.T) {
	samples := make([]classifier.Sample, 0, 10)
	for _, w := range testutil.SpanishWords[:10] {
		samples = append(samples, classifier.Sample{Text: w, Label: classifier.Spanish})
	}

	_, err := Run(samples, DefaultOptions())
	require.ErrorIs(t, err, classifier.ErrEmptyClass)
}

func TestRun_InvalidFraction(t *testing.T) {
	opts := DefaultOptions()
	opts.TestFraction = 1.5

	_, err := Run(fixtureSamples(), opts)
	require.Error(t, err)
}
