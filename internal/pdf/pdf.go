// Package pdf converts PDF documents to cleaned plain text for scanning.
package pdf

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrNoText is returned when no page yields any text.
var ErrNoText = errors.New("no extractable text in PDF")

// Options configures a conversion.
type Options struct {
	// Pages is a range like "1-5" or "1,3,7-9". Empty means every page.
	Pages string
	// Password unlocks encrypted documents.
	Password string
	Clean    CleanOptions
}

// DefaultOptions converts every page with the stock cleanup rules.
func DefaultOptions() Options {
	return Options{Clean: DefaultCleanOptions()}
}

// Conversion is the outcome of Convert.
type Conversion struct {
	TotalPages     int
	ProcessedPages []int
	Text           string
}

// PageCount returns the number of pages in filename.
func PageCount(filename string) (int, error) {
	n, err := api.PageCountFile(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF %q: %w", filename, err)
	}
	return n, nil
}

// Convert extracts the text of every selected page, joins the pages with a
// blank line and applies the cleanup rules.
func Convert(filename string, opts Options) (*Conversion, error) {
	cleaner, err := NewCleaner(opts.Clean)
	if err != nil {
		return nil, err
	}

	source, cleanup, err := unlock(filename, opts.Password)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	total, err := PageCount(source)
	if err != nil {
		return nil, err
	}

	pages, err := ExtractText(source, opts.Pages)
	if err != nil {
		return nil, err
	}

	var raw strings.Builder
	conv := &Conversion{TotalPages: total}
	for _, p := range pages {
		if p.Text == "" {
			continue
		}
		raw.WriteString(p.Text)
		raw.WriteString("\n\n")
		conv.ProcessedPages = append(conv.ProcessedPages, p.Number)
	}
	if len(conv.ProcessedPages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoText, filename)
	}

	conv.Text = cleaner.Clean(raw.String())
	return conv, nil
}

// unlock returns a readable path for filename, decrypting into a temp file
// when needed. The cleanup func is always safe to call.
func unlock(filename, password string) (string, func(), error) {
	noop := func() {}

	encrypted, err := IsEncrypted(filename)
	if err != nil {
		return "", noop, err
	}
	if !encrypted {
		return filename, noop, nil
	}
	if password == "" {
		return "", noop, fmt.Errorf("%w: %s", ErrPasswordRequired, filename)
	}

	decrypted, err := Decrypt(filename, Credentials{UserPassword: password, OwnerPassword: password})
	if err != nil {
		return "", noop, err
	}
	return decrypted, func() { _ = RemoveDecrypted(decrypted) }, nil
}

// parsePageRange parses a page range string like "1-5" or "1,3,5". The result
// is sorted and free of duplicates.
func parsePageRange(pageRange string) ([]int, error) {
	if strings.TrimSpace(pageRange) == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(pageRange, ",") {
		tokenPages, err := parseRangeToken(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		pages = append(pages, tokenPages...)
	}
	slices.Sort(pages)
	return slices.Compact(pages), nil
}

// parseRangeToken parses either a single page token (e.g., "3") or a range token (e.g., "1-5").
func parseRangeToken(part string) ([]int, error) {
	if !strings.Contains(part, "-") {
		page, err := strconv.Atoi(part)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("invalid page number: %s", part)
		}
		return []int{page}, nil
	}

	bounds := strings.Split(part, "-")
	if len(bounds) != 2 {
		return nil, fmt.Errorf("invalid range format: %s", part)
	}
	start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil || start < 1 {
		return nil, fmt.Errorf("invalid start page: %s", bounds[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid end page: %s", bounds[1])
	}
	if start > end {
		return nil, fmt.Errorf("start page %d greater than end page %d", start, end)
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out, nil
}
