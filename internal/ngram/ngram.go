// Package ngram turns short text units into bags of overlapping character n-grams.
package ngram

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

const (
	// DefaultMinN is the shortest n-gram extracted by default.
	DefaultMinN = 2
	// DefaultMaxN is the longest n-gram extracted by default.
	DefaultMaxN = 4
)

// ErrInvalidRange is returned when an n-gram length range is unusable.
var ErrInvalidRange = errors.New("invalid n-gram range")

// Features is a sparse multiset of n-grams mapped to their occurrence count.
type Features map[string]int

// Total returns the sum of all n-gram counts.
func (f Features) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// Keys returns the distinct n-grams in lexical order.
func (f Features) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extractor produces character n-grams of every length in [MinN, MaxN].
type Extractor struct {
	MinN int
	MaxN int
}

// DefaultExtractor returns an extractor for 2..4 character n-grams.
func DefaultExtractor() Extractor {
	return Extractor{MinN: DefaultMinN, MaxN: DefaultMaxN}
}

// NewExtractor validates the range and returns an extractor.
func NewExtractor(minN, maxN int) (Extractor, error) {
	e := Extractor{MinN: minN, MaxN: maxN}
	if err := e.Validate(); err != nil {
		return Extractor{}, err
	}
	return e, nil
}

// Validate checks that 1 <= MinN <= MaxN.
func (e Extractor) Validate() error {
	if e.MinN < 1 {
		return fmt.Errorf("%w: min_n %d must be at least 1", ErrInvalidRange, e.MinN)
	}
	if e.MaxN < e.MinN {
		return fmt.Errorf("%w: max_n %d is smaller than min_n %d", ErrInvalidRange, e.MaxN, e.MinN)
	}
	return nil
}

var whitespaceRun = regexp.MustCompile(`\s\s+`)

// Extract returns the n-gram multiset of text using a stride-1 sliding window
// over runes. Runs of whitespace count as a single space. Text is not padded
// and not case-folded; callers lower-case beforehand.
func (e Extractor) Extract(text string) Features {
	features := make(Features)
	if text == "" {
		return features
	}
	runes := []rune(whitespaceRun.ReplaceAllString(text, " "))
	for n := e.MinN; n <= e.MaxN && n <= len(runes); n++ {
		for i := 0; i+n <= len(runes); i++ {
			features[string(runes[i:i+n])]++
		}
	}
	return features
}
