package decode

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFDecoder extracts page text from PDF bytes.
type PDFDecoder struct{}

// Extensions implements Decoder.
func (d *PDFDecoder) Extensions() []string { return []string{".pdf"} }

// Decode implements Decoder. Null pages are skipped; a page-level extraction
// failure aborts the whole decode so partial text is never silently returned.
func (d *PDFDecoder) Decode(content []byte) (string, map[string]interface{}, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("open PDF: %w", err)
	}
	var b strings.Builder
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		b.WriteString(text)
		if i < numPages {
			b.WriteByte('\n')
		}
	}
	meta := map[string]interface{}{"pages": numPages}
	return strings.TrimSpace(b.String()), meta, nil
}
