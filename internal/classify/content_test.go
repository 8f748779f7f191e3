package classify

import (
	"testing"

	"github.com/sarahlunette/resilience2reliefai/internal/models"
)

func TestContentClassifier_ClassifySector(t *testing.T) {
	c := NewContentClassifier(nil)
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"infrastructure", "Build new roads and bridges", []string{"infrastructure"}},
		{"multi label", "Rebuild the hospital and repair housing", []string{"housing", "health"}},
		{"no match falls back to general", "Lorem ipsum dolor", []string{models.SectorGeneral}},
		{"diacritics normalized", "Réparation of the hôpital clinic", []string{"health"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ClassifySector(tt.text)
			if len(got) == 0 {
				t.Fatal("sectors must never be empty")
			}
			for _, want := range tt.want {
				if !containsLabel(got, want) {
					t.Errorf("ClassifySector(%q) = %v, want it to include %q", tt.text, got, want)
				}
			}
		})
	}
}

func TestContentClassifier_DeterminePriority(t *testing.T) {
	c := NewContentClassifier(nil)
	tests := []struct {
		name string
		text string
		want string
	}{
		{"high", "Emergency response is critical and urgent", models.PriorityHigh},
		{"medium keyword", "This work is important and necessary", models.PriorityMedium},
		{"low keyword", "Optional long-term enhancement", models.PriorityLow},
		{"default medium", "Normal recovery text", models.PriorityMedium},
		{"high beats low when both present", "urgent but optional", models.PriorityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.DeterminePriority(tt.text); got != tt.want {
				t.Errorf("DeterminePriority(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestContentClassifier_Classify(t *testing.T) {
	c := NewContentClassifier(nil)
	got := c.Classify("Urgent repair of water and sanitation systems")
	if got.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want high", got.Priority)
	}
	if !containsLabel(got.Sectors, "infrastructure") {
		t.Errorf("Sectors = %v, want infrastructure", got.Sectors)
	}
}

func containsLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}
