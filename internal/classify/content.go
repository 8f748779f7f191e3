package classify

import (
	"github.com/sarahlunette/resilience2reliefai/internal/models"
	"github.com/sarahlunette/resilience2reliefai/internal/textproc"
)

// ContentClassifier assigns sector labels and a priority tier to free text.
type ContentClassifier struct {
	gazetteer *Gazetteer
}

// NewContentClassifier creates a classifier over g. A nil g uses the defaults.
func NewContentClassifier(g *Gazetteer) *ContentClassifier {
	if g == nil {
		g = Default()
	}
	return &ContentClassifier{gazetteer: g}
}

// ClassifySector returns every sector whose keywords appear in the normalized
// text (multi-label), or {"general"} when none match.
func (c *ContentClassifier) ClassifySector(text string) []string {
	sectors := c.gazetteer.Sectors.matchAll(textproc.Normalize(text))
	if len(sectors) == 0 {
		return []string{models.SectorGeneral}
	}
	return sectors
}

// DeterminePriority returns the first priority tier, in declared order
// (high, medium, low), with a keyword match. Default is medium.
func (c *ContentClassifier) DeterminePriority(text string) string {
	if p := c.gazetteer.Priorities.matchFirst(textproc.Normalize(text)); p != "" {
		return p
	}
	return models.PriorityMedium
}

// Classify runs both sector and priority classification.
func (c *ContentClassifier) Classify(text string) models.ClassificationResult {
	return models.ClassificationResult{
		Sectors:  c.ClassifySector(text),
		Priority: c.DeterminePriority(text),
	}
}
