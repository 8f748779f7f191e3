package decode

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelDecoder renders every sheet of an XLSX workbook as readable text,
// one line per row with cells joined by " | ".
type ExcelDecoder struct{}

// Extensions implements Decoder.
func (d *ExcelDecoder) Extensions() []string { return []string{".xlsx"} }

// Decode implements Decoder.
func (d *ExcelDecoder) Decode(content []byte) (string, map[string]interface{}, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", nil, fmt.Errorf("open XLSX: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	sheets := f.GetSheetList()
	totalRows := 0
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(sheets) > 1 {
			fmt.Fprintf(&b, "Sheet: %s\n", sheet)
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " | "))
			if line != "" {
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
		totalRows += len(rows)
	}
	meta := map[string]interface{}{
		"sheets":     len(sheets),
		"rows_count": totalRows,
	}
	return strings.TrimSpace(b.String()), meta, nil
}
