// Package validate checks document and project records before they leave the
// processing pipeline. Validation never fails with an error: every check
// returns an explicit ok flag plus an ordered list of messages.
package validate

import (
	"fmt"
	"strconv"
	"strings"
)

// projectRequiredFields are checked in order so error messages are stable.
var projectRequiredFields = []string{"title", "description", "sector"}

// ProjectRecord validates a project record map. Required: title (string),
// description (string), sector (string or list of strings). Optional: budget
// must parse as a number after stripping currency symbols and thousands
// separators; timeline must be a string. Works on arbitrary input, including
// nil maps.
func ProjectRecord(record map[string]interface{}) (bool, []string) {
	var errors []string

	for _, field := range projectRequiredFields {
		if v, ok := record[field]; !ok || isEmpty(v) {
			errors = append(errors, fmt.Sprintf("missing required field: %s", field))
		}
	}

	if v, ok := record["title"]; ok && !isEmpty(v) {
		if _, isStr := v.(string); !isStr {
			errors = append(errors, "title must be a string")
		}
	}
	if v, ok := record["description"]; ok && !isEmpty(v) {
		if _, isStr := v.(string); !isStr {
			errors = append(errors, "description must be a string")
		}
	}
	if v, ok := record["sector"]; ok && !isEmpty(v) && !isStringOrList(v) {
		errors = append(errors, "sector must be a string or list")
	}

	if v, ok := record["budget"]; ok {
		if _, err := ParseBudget(v); err != nil {
			errors = append(errors, "budget must be a valid number")
		}
	}
	if v, ok := record["timeline"]; ok {
		if _, isStr := v.(string); !isStr {
			errors = append(errors, "timeline must be a string")
		}
	}

	return len(errors) == 0, errors
}

// DocumentMetadata validates decoded-document metadata: filename and file_path
// must be present and non-empty.
func DocumentMetadata(metadata map[string]interface{}) (bool, []string) {
	var errors []string
	for _, field := range []string{"filename", "file_path"} {
		if v, ok := metadata[field]; !ok || isEmpty(v) {
			errors = append(errors, fmt.Sprintf("missing required metadata field: %s", field))
		}
	}
	return len(errors) == 0, errors
}

// budgetStrip removes currency markers and thousands separators before parsing.
var budgetStrip = strings.NewReplacer("$", "", "€", "", "£", "", "USD", "", "usd", "", ",", "", " ", "")

// ParseBudget parses a budget value (number or currency-formatted string) into
// a float. "$450,000" and "450000" both parse; "eighteen" does not.
func ParseBudget(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		stripped := budgetStrip.Replace(n)
		if stripped == "" {
			return 0, fmt.Errorf("empty budget value")
		}
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return 0, fmt.Errorf("parse budget %q: %w", n, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("budget has unsupported type %T", v)
	}
}

// isEmpty reports whether a value counts as missing: nil, "", or an empty list.
func isEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case []interface{}:
		return len(x) == 0
	default:
		return false
	}
}

// isStringOrList reports whether v is a string or a list of strings.
func isStringOrList(v interface{}) bool {
	switch x := v.(type) {
	case string:
		return true
	case []string:
		return true
	case []interface{}:
		for _, e := range x {
			if _, ok := e.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
