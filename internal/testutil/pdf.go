package testutil

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// BuildTextPDF renders a minimal PDF with one page per entry. Each entry's
// lines are drawn top to bottom in Helvetica.
func BuildTextPDF(pages ...[]string) []byte {
	var objects []string
	pageIDs := make([]int, len(pages))
	// 1 catalog, 2 pages, 3 font, then a page and a content stream per page
	for i := range pages {
		pageIDs[i] = 4 + 2*i
	}

	kids := make([]string, len(pageIDs))
	for i, id := range pageIDs {
		kids[i] = fmt.Sprintf("%d 0 R", id)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	escape := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	for i, lines := range pages {
		var stream strings.Builder
		stream.WriteString("BT\n/F1 12 Tf\n14 TL\n72 720 Td\n")
		for _, l := range lines {
			fmt.Fprintf(&stream, "(%s) Tj\nT*\n", escape.Replace(l))
		}
		stream.WriteString("ET")
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageIDs[i]+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// WriteTextPDF writes BuildTextPDF(pages...) to dir/name and returns the path.
func WriteTextPDF(t *testing.T, dir, name string, pages ...[]string) string {
	t.Helper()
	return WriteFile(t, dir, name, string(BuildTextPDF(pages...)))
}
