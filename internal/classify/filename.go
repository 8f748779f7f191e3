package classify

import "strings"

// FilenameClassification holds metadata inferred from a filename. Empty fields
// mean the category did not match; categories never influence each other.
type FilenameClassification struct {
	DisasterType string `json:"disaster_type,omitempty"`
	Region       string `json:"region,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
}

// FilenameClassifier infers disaster type, region, and document type from a
// filename via ordered keyword-set lookup.
type FilenameClassifier struct {
	gazetteer *Gazetteer
}

// NewFilenameClassifier creates a classifier over g. A nil g uses the defaults.
func NewFilenameClassifier(g *Gazetteer) *FilenameClassifier {
	if g == nil {
		g = Default()
	}
	return &FilenameClassifier{gazetteer: g}
}

// Classify lowercases filename and evaluates each category independently:
// the first label in declared order with a keyword substring match wins,
// no match leaves the field empty.
func (c *FilenameClassifier) Classify(filename string) FilenameClassification {
	lowered := strings.ToLower(filename)
	return FilenameClassification{
		DisasterType: c.gazetteer.DisasterTypes.matchFirst(lowered),
		Region:       c.gazetteer.Regions.matchFirst(lowered),
		DocumentType: c.gazetteer.DocumentTypes.matchFirst(lowered),
	}
}
