// Package scan extracts words and lines of a target language from a document.
package scan

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
)

// DefaultThreshold is the share of target-language tokens a line must exceed.
const DefaultThreshold = 0.5

const (
	wordSeparator     = "\n"
	dialogueSeparator = "\n\n"
)

var tokenPattern = regexp.MustCompile(`[A-Za-z]+`)

// Predictor labels a single lower-cased word.
type Predictor interface {
	Predict(text string) classifier.Label
}

// Options configures extraction.
type Options struct {
	// Threshold is exclusive: a line with exactly this share is dropped.
	Threshold float64
	Target    classifier.Label
}

// DefaultOptions keeps lines that are more than half Spanish.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Target: classifier.Spanish}
}

// Validate checks the threshold and target label.
func (o Options) Validate() error {
	if o.Threshold < 0 || o.Threshold >= 1 {
		return fmt.Errorf("threshold must be in [0, 1), got %v", o.Threshold)
	}
	if !o.Target.Valid() {
		return fmt.Errorf("invalid target label %d", int(o.Target))
	}
	return nil
}

// Scanner classifies document tokens, memoising one prediction per distinct word.
type Scanner struct {
	predictor Predictor
	opts      Options
	memo      *gocache.Cache
}

// New creates a scanner over p.
func New(p Predictor, opts Options) (*Scanner, error) {
	if p == nil {
		return nil, errors.New("predictor is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Scanner{
		predictor: p,
		opts:      opts,
		memo:      gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// Options returns the scanner configuration.
func (s *Scanner) Options() Options { return s.opts }

// Label classifies a token after lower-casing it.
func (s *Scanner) Label(token string) classifier.Label {
	key := strings.ToLower(token)
	if v, ok := s.memo.Get(key); ok {
		return v.(classifier.Label)
	}
	l := s.predictor.Predict(key)
	s.memo.Set(key, l, gocache.NoExpiration)
	return l
}

// CachedWords reports how many distinct words have been classified.
func (s *Scanner) CachedWords() int { return s.memo.ItemCount() }

// ExtractWords returns every token labeled with the target language, in
// document order, duplicates kept, original spelling preserved.
func (s *Scanner) ExtractWords(document string) []string {
	var out []string
	for _, tok := range Tokenize(document) {
		if s.Label(tok) == s.opts.Target {
			out = append(out, tok)
		}
	}
	return out
}

// LineShare returns the share of target-language tokens in line and the
// number of tokens it holds.
func (s *Scanner) LineShare(line string) (share float64, tokens int) {
	toks := Tokenize(line)
	if len(toks) == 0 {
		return 0, 0
	}
	hits := 0
	for _, tok := range toks {
		if s.Label(tok) == s.opts.Target {
			hits++
		}
	}
	return float64(hits) / float64(len(toks)), len(toks)
}

// ExtractDialogue returns the lines whose target share strictly exceeds the
// threshold. Lines without tokens are skipped.
func (s *Scanner) ExtractDialogue(document string) []string {
	var out []string
	for _, line := range SplitLines(document) {
		share, n := s.LineShare(line)
		if n == 0 {
			continue
		}
		if share > s.opts.Threshold {
			out = append(out, line)
		}
	}
	return out
}

// Tokenize returns the maximal runs of ASCII letters in text.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// SplitLines splits on "\n" and drops one trailing "\r" per line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// JoinWords renders the word artifact.
func JoinWords(words []string) string {
	return strings.Join(words, wordSeparator)
}

// JoinDialogue renders the dialogue artifact.
func JoinDialogue(lines []string) string {
	return strings.Join(lines, dialogueSeparator)
}
