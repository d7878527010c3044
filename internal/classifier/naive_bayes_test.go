package classifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() []Sample {
	spanish := []string{"gato", "perro", "negro", "casa", "llamar", "niño", "caballo", "muerto", "hombre", "noche", "el", "la", "que", "señor"}
	english := []string{"the", "quick", "fox", "brown", "house", "night", "horse", "kill", "man", "there", "which", "thought", "through", "would"}
	out := make([]Sample, 0, len(spanish)+len(english))
	for _, w := range spanish {
		out = append(out, Sample{Text: w, Label: Spanish})
	}
	for _, w := range english {
		out = append(out, Sample{Text: w, Label: English})
	}
	return out
}

func TestTrain_PredictsTrainingWords(t *testing.T) {
	m, err := Train(sampleSet(), DefaultOptions())
	require.NoError(t, err)

	for _, s := range sampleSet() {
		assert.Equal(t, s.Label, m.Predict(s.Text), "word %q", s.Text)
	}
}

func TestTrain_GeneralisesOrthography(t *testing.T) {
	m, err := Train(sampleSet(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, Spanish, m.Predict("caballero"))
	assert.Equal(t, English, m.Predict("thoughts"))
}

func TestTrain_PriorsAndCounts(t *testing.T) {
	samples := []Sample{
		{Text: "ab", Label: Spanish},
		{Text: "ab", Label: Spanish},
		{Text: "cd", Label: English},
	}
	m, err := Train(samples, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, m.SampleCount())
	assert.Equal(t, 2, m.ClassCount(Spanish))
	assert.Equal(t, 1, m.ClassCount(English))
	assert.Equal(t, 2, m.VocabularySize())
	assert.InDelta(t, 2.0/3.0, m.Prior(Spanish), 1e-12)
	assert.InDelta(t, 1.0/3.0, m.Prior(English), 1e-12)
}

func TestScores_SmoothedLikelihood(t *testing.T) {
	samples := []Sample{
		{Text: "ab", Label: Spanish},
		{Text: "cd", Label: English},
	}
	m, err := Train(samples, DefaultOptions())
	require.NoError(t, err)

	// |V| = 2, one feature occurrence per class, alpha = 1.
	s := m.Scores("ab")
	assert.InDelta(t, math.Log(0.5)+math.Log(2.0/3.0), s[Spanish], 1e-12)
	assert.InDelta(t, math.Log(0.5)+math.Log(1.0/3.0), s[English], 1e-12)
	assert.Equal(t, Spanish, s.Best())
}

func TestScores_UnseenFallback(t *testing.T) {
	samples := []Sample{
		{Text: "ab", Label: Spanish},
		{Text: "ab", Label: Spanish},
		{Text: "cd", Label: English},
	}

	smoothed, err := Train(samples, DefaultOptions())
	require.NoError(t, err)

	// "zzzz" has six out-of-vocabulary n-grams; the smaller English feature
	// total makes each of them likelier under English than under Spanish.
	s := smoothed.Scores("zzzz")
	assert.InDelta(t, math.Log(2.0/3.0)+6*math.Log(1.0/4.0), s[Spanish], 1e-12)
	assert.InDelta(t, math.Log(1.0/3.0)+6*math.Log(1.0/3.0), s[English], 1e-12)
	assert.Equal(t, English, smoothed.Predict("zzzz"))

	opts := DefaultOptions()
	opts.IgnoreUnseen = true
	ignoring, err := Train(samples, opts)
	require.NoError(t, err)

	// Only the prior remains.
	assert.Equal(t, Spanish, ignoring.Predict("zzzz"))
}

func TestPredict_TieGoesToFirstLabel(t *testing.T) {
	samples := []Sample{
		{Text: "ab", Label: Spanish},
		{Text: "ab", Label: English},
	}
	m, err := Train(samples, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, English, m.Predict("ab"))
	assert.Equal(t, English, m.Predict("xy"))
	assert.Equal(t, English, m.Predict(""))
}

func TestPredict_AlwaysKnownLabel(t *testing.T) {
	m, err := Train(sampleSet(), DefaultOptions())
	require.NoError(t, err)

	for _, w := range []string{"", "a", "zzz", "qwxv", "123", "!!", "ñ", "supercalifragilistic"} {
		assert.True(t, m.Predict(w).Valid(), "word %q", w)
	}
}

func TestPredictBatch_PreservesOrder(t *testing.T) {
	m, err := Train(sampleSet(), DefaultOptions())
	require.NoError(t, err)

	words := []string{"gato", "the", "perro", "fox"}
	got := m.PredictBatch(words)
	require.Len(t, got, len(words))
	for i, w := range words {
		assert.Equal(t, m.Predict(w), got[i])
	}
	assert.Empty(t, m.PredictBatch(nil))
}

func TestTrain_Errors(t *testing.T) {
	t.Run("no samples", func(t *testing.T) {
		_, err := Train(nil, DefaultOptions())
		require.ErrorIs(t, err, ErrNoSamples)
	})

	t.Run("empty class", func(t *testing.T) {
		_, err := Train([]Sample{{Text: "gato", Label: Spanish}}, DefaultOptions())
		require.ErrorIs(t, err, ErrEmptyClass)
		assert.Contains(t, err.Error(), "english")
	})

	t.Run("invalid smoothing", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Smoothing = 0
		_, err := Train(sampleSet(), opts)
		require.ErrorIs(t, err, ErrInvalidSmoothing)
	})

	t.Run("no n-grams", func(t *testing.T) {
		samples := []Sample{{Text: "y", Label: Spanish}, {Text: "a", Label: English}, {Text: "", Label: English}}
		_, err := Train(samples, DefaultOptions())
		require.ErrorIs(t, err, ErrEmptyVocabulary)
	})

	t.Run("invalid label", func(t *testing.T) {
		_, err := Train([]Sample{{Text: "x", Label: Label(7)}}, DefaultOptions())
		require.Error(t, err)
	})
}

func TestTrain_AllowEmptyClass(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowEmptyClass = true

	m, err := Train([]Sample{{Text: "gato", Label: Spanish}}, opts)
	require.NoError(t, err)

	assert.Zero(t, m.Prior(English))
	assert.Equal(t, Spanish, m.Predict("the"))
	assert.True(t, math.IsInf(m.Scores("the")[English], -1))
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in   string
		want Label
	}{
		{"english", English},
		{"EN", English},
		{" spanish ", Spanish},
		{"es", Spanish},
	}
	for _, tt := range tests {
		got, err := ParseLabel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLabel("french")
	require.Error(t, err)
}

func TestLabel_String(t *testing.T) {
	assert.Equal(t, "english", English.String())
	assert.Equal(t, "spanish", Spanish.String())
	assert.Equal(t, "label(9)", Label(9).String())
}
