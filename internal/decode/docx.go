package decode

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DOCX is a ZIP package whose main body lives in word/document.xml (OOXML).
// Text is carried in <w:t> nodes; extracting those directly keeps content
// readable regardless of paragraph or run attributes.
const docxMainDocumentPath = "word/document.xml"

const docxContentTypesPath = "[Content_Types].xml"

const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// docxTextNode matches <w:t>...</w:t> with any attributes.
var docxTextNode = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// docxPartName finds the main document PartName in [Content_Types].xml,
// whichever attribute order the producer used.
var docxPartName = []*regexp.Regexp{
	regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`),
	regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`),
}

// DocxDecoder extracts text from DOCX bytes.
type DocxDecoder struct{}

// Extensions implements Decoder.
func (d *DocxDecoder) Extensions() []string { return []string{".docx"} }

// Decode implements Decoder.
func (d *DocxDecoder) Decode(content []byte) (string, map[string]interface{}, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("decode DOCX: not a zip: %w", err)
	}

	docPath := mainDocumentPath(zr)
	docXML, err := readZipFile(zr, docPath)
	if err != nil {
		return "", nil, fmt.Errorf("decode DOCX: %w", err)
	}

	parts := docxTextNode.FindAllStringSubmatch(string(docXML), -1)
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(p[1]))
	}
	meta := map[string]interface{}{"text_nodes": len(parts)}
	return strings.TrimSpace(b.String()), meta, nil
}

// mainDocumentPath resolves the main body path from [Content_Types].xml,
// falling back to the conventional word/document.xml.
func mainDocumentPath(zr *zip.Reader) string {
	data, err := readZipFile(zr, docxContentTypesPath)
	if err != nil {
		return docxMainDocumentPath
	}
	for _, re := range docxPartName {
		if m := re.FindSubmatch(data); len(m) > 1 {
			return strings.TrimPrefix(string(m[1]), "/")
		}
	}
	return docxMainDocumentPath
}

// readZipFile returns the contents of name inside the archive.
func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
