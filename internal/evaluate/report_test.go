package evaluate

import (
	"testing"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	en = classifier.English
	es = classifier.Spanish
)

func TestNewReport_Metrics(t *testing.T) {
	truth := []classifier.Label{es, es, es, es, en, en, en, en, en, en}
	pred := []classifier.Label{es, es, es, en, en, en, en, en, en, es}

	r, err := NewReport(truth, pred)
	require.NoError(t, err)

	assert.Equal(t, 10, r.Total)
	assert.InDelta(t, 0.8, r.Accuracy, 1e-12)

	spanish, ok := r.Class(es)
	require.True(t, ok)
	// tp=3 fp=1 fn=1
	assert.InDelta(t, 0.75, spanish.Precision, 1e-12)
	assert.InDelta(t, 0.75, spanish.Recall, 1e-12)
	assert.InDelta(t, 0.75, spanish.F1, 1e-12)
	assert.Equal(t, 4, spanish.Support)

	english, ok := r.Class(en)
	require.True(t, ok)
	// tp=5 fp=1 fn=1
	assert.InDelta(t, 5.0/6.0, english.Precision, 1e-12)
	assert.InDelta(t, 5.0/6.0, english.Recall, 1e-12)
	assert.Equal(t, 6, english.Support)

	assert.InDelta(t, (0.75+5.0/6.0)/2, r.MacroAvg.Precision, 1e-12)
	assert.InDelta(t, 0.4*0.75+0.6*5.0/6.0, r.WeightedAvg.F1, 1e-12)
}

func TestNewReport_ZeroDivision(t *testing.T) {
	truth := []classifier.Label{en, en}
	pred := []classifier.Label{en, en}

	r, err := NewReport(truth, pred)
	require.NoError(t, err)

	spanish, ok := r.Class(es)
	require.True(t, ok)
	assert.Zero(t, spanish.Precision)
	assert.Zero(t, spanish.Recall)
	assert.Zero(t, spanish.F1)
	assert.Zero(t, spanish.Support)
	assert.InDelta(t, 1.0, r.Accuracy, 1e-12)
}

func TestNewReport_LengthMismatch(t *testing.T) {
	_, err := NewReport([]classifier.Label{en}, nil)
	require.Error(t, err)
}
