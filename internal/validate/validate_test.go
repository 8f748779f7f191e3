package validate

import (
	"strings"
	"testing"
)

func TestProjectRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  map[string]interface{}
		ok      bool
		wantErr string // substring expected in one of the messages; "" = no expectation
	}{
		{
			"valid full record",
			map[string]interface{}{
				"title":       "Infrastructure Reconstruction",
				"description": "Rebuild roads and bridges",
				"sector":      []string{"infrastructure"},
				"budget":      "$75,000,000",
				"timeline":    "18 months",
			},
			true, "",
		},
		{
			"missing title",
			map[string]interface{}{"description": "x", "sector": "housing"},
			false, "title",
		},
		{
			"only description",
			map[string]interface{}{"description": "x"},
			false, "title",
		},
		{"nil record", nil, false, "missing required field"},
		{
			"sector as plain string",
			map[string]interface{}{"title": "t", "description": "d", "sector": "health"},
			true, "",
		},
		{
			"sector wrong type",
			map[string]interface{}{"title": "t", "description": "d", "sector": 5},
			false, "sector must be a string or list",
		},
		{
			"bad budget",
			map[string]interface{}{"title": "t", "description": "d", "sector": "health", "budget": "lots"},
			false, "budget",
		},
		{
			"numeric budget",
			map[string]interface{}{"title": "t", "description": "d", "sector": "health", "budget": 1500000.0},
			true, "",
		},
		{
			"timeline wrong type",
			map[string]interface{}{"title": "t", "description": "d", "sector": "health", "timeline": 12},
			false, "timeline",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, errors := ProjectRecord(tt.record)
			if ok != tt.ok {
				t.Errorf("ok = %v, want %v (errors: %v)", ok, tt.ok, errors)
			}
			if tt.wantErr != "" {
				found := false
				for _, e := range errors {
					if strings.Contains(e, tt.wantErr) {
						found = true
					}
				}
				if !found {
					t.Errorf("expected an error mentioning %q, got %v", tt.wantErr, errors)
				}
			}
			if !ok && len(errors) == 0 {
				t.Error("invalid record must carry at least one message")
			}
		})
	}
}

func TestDocumentMetadata(t *testing.T) {
	ok, errors := DocumentMetadata(map[string]interface{}{
		"filename":  "plan.pdf",
		"file_path": "/docs/plan.pdf",
	})
	if !ok || len(errors) != 0 {
		t.Errorf("expected valid, got %v %v", ok, errors)
	}

	ok, errors = DocumentMetadata(map[string]interface{}{"filename": ""})
	if ok {
		t.Error("expected invalid")
	}
	if len(errors) != 2 {
		t.Errorf("expected 2 errors (filename, file_path), got %v", errors)
	}
}

func TestParseBudget(t *testing.T) {
	tests := []struct {
		in      interface{}
		want    float64
		wantErr bool
	}{
		{"$450,000", 450000, false},
		{"€1,200.50", 1200.50, false},
		{"USD 75000", 75000, false},
		{42, 42, false},
		{3.14, 3.14, false},
		{"eighteen", 0, true},
		{nil, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseBudget(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBudget(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseBudget(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
