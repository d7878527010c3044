// Package lexicon loads the per-language word lists used to train the classifier.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Options controls how word-list lines become samples.
type Options struct {
	// KeepBlank emits an empty-string sample for every blank line instead of
	// skipping it.
	KeepBlank bool
}

// Lexicon holds the normalized words of both languages in file order.
type Lexicon struct {
	Spanish []string
	English []string
}

// Load reads the Spanish and English word lists.
func Load(spanishPath, englishPath string, opts Options) (*Lexicon, error) {
	spanish, err := LoadWords(spanishPath, opts)
	if err != nil {
		return nil, fmt.Errorf("spanish lexicon: %w", err)
	}
	english, err := LoadWords(englishPath, opts)
	if err != nil {
		return nil, fmt.Errorf("english lexicon: %w", err)
	}
	return &Lexicon{Spanish: spanish, English: english}, nil
}

// Samples returns every Spanish word followed by every English word, labeled.
func (l *Lexicon) Samples() []classifier.Sample {
	out := make([]classifier.Sample, 0, len(l.Spanish)+len(l.English))
	for _, w := range l.Spanish {
		out = append(out, classifier.Sample{Text: w, Label: classifier.Spanish})
	}
	for _, w := range l.English {
		out = append(out, classifier.Sample{Text: w, Label: classifier.English})
	}
	return out
}

// Count returns the number of words loaded for label.
func (l *Lexicon) Count(label classifier.Label) int {
	switch label {
	case classifier.Spanish:
		return len(l.Spanish)
	case classifier.English:
		return len(l.English)
	default:
		return 0
	}
}

// LoadWords reads a word-per-line file.
func LoadWords(path string, opts Options) ([]string, error) {
	if path == "" {
		return nil, errors.New("word list path cannot be empty")
	}
	f, err := os.Open(path) //nolint:gosec // G304: word list path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() { _ = f.Close() }()

	words, err := ReadWords(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed reading word list %s: %w", path, err)
	}
	return words, nil
}

// ReadWords reads one word per line from r. Each line is NFC-normalized,
// trimmed and lower-cased; a UTF-8 BOM on the first line is dropped.
func ReadWords(r io.Reader, opts Options) ([]string, error) {
	scanner := bufio.NewScanner(r)
	lower := cases.Lower(language.Und)
	words := make([]string, 0, 1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		word := normalize(line, lower)
		if word == "" && !opts.KeepBlank {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Normalize applies the word-list normalization to a single string.
func Normalize(s string) string {
	return normalize(s, cases.Lower(language.Und))
}

func normalize(s string, lower cases.Caser) string {
	return lower.String(strings.TrimSpace(norm.NFC.String(s)))
}
