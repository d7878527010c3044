package pdf

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// DefaultStripPatterns remove header and footer noise from the source edition.
var DefaultStripPatterns = []string{
	`© Copyright Reserved.*`,
	`Pdfcorner.com`,
	`Blood Meridian Pdf.*`,
}

// DefaultDialogueVerbs start a new line when followed by a word ("said the judge").
var DefaultDialogueVerbs = []string{"said", "cried", "called", "asked", "replied"}

// CleanOptions configures the cleanup rules.
type CleanOptions struct {
	StripPatterns []string
	DialogueVerbs []string
}

// DefaultCleanOptions returns the stock rules.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		StripPatterns: append([]string(nil), DefaultStripPatterns...),
		DialogueVerbs: append([]string(nil), DefaultDialogueVerbs...),
	}
}

var (
	brokenInitial  = regexp.MustCompile(`\b([A-Z])\n\s*([a-z])`)
	repeatedBreaks = regexp.MustCompile(`\n{2,}`)
)

// Cleaner applies the cleanup rules in order: strip noise, rejoin drop-cap
// initials split from their word, break lines before dialogue verbs, collapse
// runs of blank lines, NFC-normalise.
type Cleaner struct {
	strip    []*regexp.Regexp
	dialogue []*regexp.Regexp
}

// NewCleaner compiles opts. Strip patterns are case-insensitive.
func NewCleaner(opts CleanOptions) (*Cleaner, error) {
	c := &Cleaner{}
	for _, p := range opts.StripPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid strip pattern %q: %w", p, err)
		}
		c.strip = append(c.strip, re)
	}
	for _, v := range opts.DialogueVerbs {
		re, err := regexp.Compile(`(\b` + regexp.QuoteMeta(v) + `\b\s+\w+)`)
		if err != nil {
			return nil, fmt.Errorf("invalid dialogue verb %q: %w", v, err)
		}
		c.dialogue = append(c.dialogue, re)
	}
	return c, nil
}

// Clean returns the cleaned text.
func (c *Cleaner) Clean(text string) string {
	for _, re := range c.strip {
		text = re.ReplaceAllString(text, "")
	}
	text = brokenInitial.ReplaceAllString(text, "${1}${2}")
	for _, re := range c.dialogue {
		text = re.ReplaceAllString(text, "\n${1}")
	}
	text = repeatedBreaks.ReplaceAllString(text, "\n\n")
	return norm.NFC.String(text)
}
