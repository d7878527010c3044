package pdf

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dslipak/pdf"
)

// PageText is the vector text of one page.
type PageText struct {
	Number int
	Text   string
	Method string // "plain" or "rows"
}

// ExtractText returns the text of the selected pages in page order. Pages
// outside the document are ignored; unreadable pages yield empty text.
func ExtractText(filename, pageRange string) ([]PageText, error) {
	pageNumbers, err := parsePageRange(pageRange)
	if err != nil {
		return nil, fmt.Errorf("invalid page range %q: %w", pageRange, err)
	}

	reader, err := pdf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %q: %w", filename, err)
	}

	total := reader.NumPage()
	if len(pageNumbers) == 0 {
		for i := 1; i <= total; i++ {
			pageNumbers = append(pageNumbers, i)
		}
	}

	out := make([]PageText, 0, len(pageNumbers))
	for _, n := range pageNumbers {
		if n < 1 || n > total {
			continue
		}
		text, method, err := extractPageText(reader, n)
		if err != nil {
			slog.Debug("Skipping unreadable page", "page", n, "error", err)
		}
		out = append(out, PageText{Number: n, Text: text, Method: method})
	}
	return out, nil
}

// extractPageText prefers the content-stream order of GetPlainText and falls
// back to row grouping when that yields nothing.
func extractPageText(reader *pdf.Reader, n int) (string, string, error) {
	page := reader.Page(n)
	if page.V.IsNull() {
		return "", "", fmt.Errorf("page %d is null", n)
	}

	plain, err := page.GetPlainText(make(map[string]*pdf.Font))
	if err == nil && strings.TrimSpace(plain) != "" {
		return plain, "plain", nil
	}

	rows, rowErr := page.GetTextByRow()
	if rowErr != nil {
		if err == nil {
			err = rowErr
		}
		return "", "", err
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		words := make([]string, 0, len(row.Content))
		for _, t := range row.Content {
			words = append(words, t.S)
		}
		b.WriteString(strings.Join(words, " "))
	}
	return b.String(), "rows", nil
}
