package decode

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// csvSampleRows is how many data rows are rendered into the text view.
const csvSampleRows = 10

// CSVDecoder renders tabular CSV data as readable text: a summary line, the
// header, and a sample of rows. Column structure goes into the metadata map.
type CSVDecoder struct{}

// Extensions implements Decoder.
func (d *CSVDecoder) Extensions() []string { return []string{".csv"} }

// Decode implements Decoder.
func (d *CSVDecoder) Decode(content []byte) (string, map[string]interface{}, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return "", nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return "", map[string]interface{}{"rows_count": 0, "columns_count": 0}, nil
	}

	header := rows[0]
	data := rows[1:]

	var b strings.Builder
	fmt.Fprintf(&b, "CSV Data with %d rows and %d columns\n", len(data), len(header))
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(header, ", "))
	for i, row := range data {
		if i >= csvSampleRows {
			fmt.Fprintf(&b, "... and %d more rows\n", len(data)-csvSampleRows)
			break
		}
		cells := make([]string, 0, len(row))
		for j, val := range row {
			col := fmt.Sprintf("col%d", j+1)
			if j < len(header) {
				col = header[j]
			}
			cells = append(cells, fmt.Sprintf("%s: %s", col, val))
		}
		fmt.Fprintf(&b, "Row %d: %s\n", i+1, strings.Join(cells, " | "))
	}

	meta := map[string]interface{}{
		"rows_count":    len(data),
		"columns_count": len(header),
		"columns":       append([]string(nil), header...),
	}
	return strings.TrimSpace(b.String()), meta, nil
}
