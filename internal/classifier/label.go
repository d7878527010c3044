package classifier

import (
	"fmt"
	"strings"
)

// Label is one of the two languages the classifier distinguishes.
type Label int

const (
	// English is LanguageA.
	English Label = iota
	// Spanish is LanguageB.
	Spanish
)

// numLabels is the size of the label set; per-class arrays are indexed by Label.
const numLabels = 2

// Labels lists every label in class order. Ties resolve to the earlier entry.
var Labels = [numLabels]Label{English, Spanish}

// String returns the lowercase language name.
func (l Label) String() string {
	switch l {
	case English:
		return "english"
	case Spanish:
		return "spanish"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	return l == English || l == Spanish
}

// ParseLabel accepts "english"/"en" and "spanish"/"es", case-insensitively.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en":
		return English, nil
	case "spanish", "es":
		return Spanish, nil
	default:
		return 0, fmt.Errorf("unknown label %q (must be english or spanish)", s)
	}
}

// Sample is a labeled training or evaluation text.
type Sample struct {
	Text  string
	Label Label
}
