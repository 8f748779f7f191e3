package decode

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names accepted in the plain decoder's fallback list.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// PlainDecoder decodes .txt and .md files, trying each configured encoding in
// order and reporting which one succeeded. Latin-1 accepts any byte sequence,
// so placing it last makes the chain total.
type PlainDecoder struct {
	encodings []string
}

// NewPlainDecoder creates a plain text decoder with the given encoding order.
// Empty or nil falls back to [utf-8, latin-1].
func NewPlainDecoder(encodings []string) *PlainDecoder {
	if len(encodings) == 0 {
		encodings = []string{EncodingUTF8, EncodingLatin1}
	}
	return &PlainDecoder{encodings: encodings}
}

// Extensions implements Decoder.
func (d *PlainDecoder) Extensions() []string { return []string{".txt", ".md"} }

// Decode tries each encoding in order and returns the first successful decode
// plus line/word/character counts. All encodings failing yields ErrDecode.
func (d *PlainDecoder) Decode(content []byte) (string, map[string]interface{}, error) {
	for _, enc := range d.encodings {
		text, ok := decodeWith(content, enc)
		if !ok {
			continue
		}
		text = strings.TrimSpace(text)
		meta := map[string]interface{}{
			"encoding":         enc,
			"lines_count":      len(strings.Split(text, "\n")),
			"words_count":      len(strings.Fields(text)),
			"characters_count": utf8.RuneCountInString(text),
		}
		return text, meta, nil
	}
	return "", nil, fmt.Errorf("%w: tried %v", ErrDecode, d.encodings)
}

// decodeWith decodes content under a named encoding; ok is false when the
// bytes are invalid for that encoding or the name is unknown.
func decodeWith(content []byte, encoding string) (string, bool) {
	switch strings.ToLower(encoding) {
	case EncodingUTF8, "utf8":
		if !utf8.Valid(content) {
			return "", false
		}
		return string(content), true
	case EncodingLatin1, "iso-8859-1":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
		if err != nil {
			return "", false
		}
		return string(decoded), true
	default:
		return "", false
	}
}
