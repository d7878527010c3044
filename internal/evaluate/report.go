// Package evaluate measures classifier quality on a seeded held-out split.
package evaluate

import (
	"fmt"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
)

// ClassMetrics holds precision, recall, F1 and support for one row of a report.
type ClassMetrics struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report summarizes predictions against ground truth.
type Report struct {
	Classes     []ClassMetrics `json:"classes"`
	Accuracy    float64        `json:"accuracy"`
	MacroAvg    ClassMetrics   `json:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg"`
	Total       int            `json:"total"`
}

// Class returns the metrics row for label, if present.
func (r *Report) Class(label classifier.Label) (ClassMetrics, bool) {
	for _, c := range r.Classes {
		if c.Label == label.String() {
			return c, true
		}
	}
	return ClassMetrics{}, false
}

// NewReport computes per-class metrics. Ratios with a zero denominator are 0.
func NewReport(truth, pred []classifier.Label) (*Report, error) {
	if len(truth) != len(pred) {
		return nil, fmt.Errorf("length mismatch: %d labels vs %d predictions", len(truth), len(pred))
	}

	r := &Report{Total: len(truth)}
	correct := 0
	for i := range truth {
		if truth[i] == pred[i] {
			correct++
		}
	}
	r.Accuracy = ratio(correct, len(truth))

	for _, l := range classifier.Labels {
		tp, fp, fn, support := 0, 0, 0, 0
		for i := range truth {
			if truth[i] == l {
				support++
			}
			switch {
			case pred[i] == l && truth[i] == l:
				tp++
			case pred[i] == l:
				fp++
			case truth[i] == l:
				fn++
			}
		}
		m := ClassMetrics{
			Label:     l.String(),
			Precision: ratio(tp, tp+fp),
			Recall:    ratio(tp, tp+fn),
			Support:   support,
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes = append(r.Classes, m)
	}

	r.MacroAvg = ClassMetrics{Label: "macro avg", Support: r.Total}
	r.WeightedAvg = ClassMetrics{Label: "weighted avg", Support: r.Total}
	for _, c := range r.Classes {
		n := float64(len(r.Classes))
		r.MacroAvg.Precision += c.Precision / n
		r.MacroAvg.Recall += c.Recall / n
		r.MacroAvg.F1 += c.F1 / n
		if r.Total > 0 {
			w := float64(c.Support) / float64(r.Total)
			r.WeightedAvg.Precision += c.Precision * w
			r.WeightedAvg.Recall += c.Recall * w
			r.WeightedAvg.F1 += c.F1 * w
		}
	}

	return r, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
