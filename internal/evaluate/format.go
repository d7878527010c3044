package evaluate

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Formats lists the supported report formats.
var Formats = []string{"text", "json", "csv"}

// FormatReport renders an evaluation in the given format (text, json or csv).
func FormatReport(e *Evaluation, format string) (string, error) {
	if e == nil || e.Report == nil {
		return "", errors.New("no evaluation to format")
	}
	switch format {
	case "json":
		return formatJSON(e)
	case "csv":
		return formatCSV(e.Report)
	case "text", "":
		return formatText(e.Report), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
}

func formatJSON(e *Evaluation) (string, error) {
	out := struct {
		Seed      uint64  `json:"seed"`
		TrainSize int     `json:"train_size"`
		TestSize  int     `json:"test_size"`
		Report    *Report `json:"report"`
	}{
		Seed:      e.Seed,
		TrainSize: e.TrainSize,
		TestSize:  e.TestSize,
		Report:    e.Report,
	}
	bts, err := json.MarshalIndent(out, "", "  ")
	return string(bts), err
}

func formatCSV(r *Report) (string, error) {
	rows := [][]string{{"label", "precision", "recall", "f1", "support"}}
	row := func(m ClassMetrics) []string {
		return []string{
			m.Label,
			fmt.Sprintf("%.4f", m.Precision),
			fmt.Sprintf("%.4f", m.Recall),
			fmt.Sprintf("%.4f", m.F1),
			strconv.Itoa(m.Support),
		}
	}
	for _, c := range r.Classes {
		rows = append(rows, row(c))
	}
	rows = append(rows,
		[]string{"accuracy", "", "", fmt.Sprintf("%.4f", r.Accuracy), strconv.Itoa(r.Total)},
		row(r.MacroAvg),
		row(r.WeightedAvg),
	)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatText renders the familiar precision/recall/f1-score/support table.
func formatText(r *Report) string {
	width := len("weighted avg")
	for _, c := range r.Classes {
		width = max(width, len(c.Label))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	for _, c := range r.Classes {
		writeTextRow(&b, width, c)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%*s  %9s %9s %9.2f %9d\n", width, "accuracy", "", "", r.Accuracy, r.Total)
	writeTextRow(&b, width, r.MacroAvg)
	writeTextRow(&b, width, r.WeightedAvg)
	return b.String()
}

func writeTextRow(b *strings.Builder, width int, m ClassMetrics) {
	fmt.Fprintf(b, "%*s  %9.2f %9.2f %9.2f %9d\n", width, m.Label, m.Precision, m.Recall, m.F1, m.Support)
}
