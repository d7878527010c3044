package evaluate

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvaluation(t *testing.T) *Evaluation {
	t.Helper()

	truth := []classifier.Label{es, es, en, en}
	pred := []classifier.Label{es, en, en, en}
	r, err := NewReport(truth, pred)
	require.NoError(t, err)
	return &Evaluation{Report: r, TrainSize: 16, TestSize: 4, Seed: 42}
}

func TestFormatReport_Text(t *testing.T) {
	out, err := FormatReport(sampleEvaluation(t), "text")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "              precision    recall  f1-score   support", lines[0])
	assert.Equal(t, "     english       0.67      1.00      0.80         2", lines[2])
	assert.Equal(t, "     spanish       1.00      0.50      0.67         2", lines[3])
	assert.Equal(t, "    accuracy                           0.75         4", lines[5])
	assert.True(t, strings.HasPrefix(lines[6], "   macro avg"))
	assert.True(t, strings.HasPrefix(lines[7], "weighted avg"))
}

func TestFormatReport_JSON(t *testing.T) {
	out, err := FormatReport(sampleEvaluation(t), "json")
	require.NoError(t, err)

	var decoded struct {
		Seed      uint64 `json:"seed"`
		TrainSize int    `json:"train_size"`
		TestSize  int    `json:"test_size"`
		Report    Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, uint64(42), decoded.Seed)
	assert.Equal(t, 16, decoded.TrainSize)
	assert.Len(t, decoded.Report.Classes, 2)
	assert.InDelta(t, 0.75, decoded.Report.Accuracy, 1e-12)
}

func TestFormatReport_CSV(t *testing.T) {
	out, err := FormatReport(sampleEvaluation(t), "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"label", "precision", "recall", "f1", "support"}, records[0])
	assert.Equal(t, []string{"spanish", "1.0000", "0.5000", "0.6667", "2"}, records[2])
	assert.Equal(t, "accuracy", records[3][0])
}

func TestFormatReport_Errors(t *testing.T) {
	_, err := FormatReport(sampleEvaluation(t), "xml")
	require.Error(t, err)

	_, err = FormatReport(nil, "text")
	require.Error(t, err)
}
