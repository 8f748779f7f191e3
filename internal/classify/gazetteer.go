// Package classify infers document metadata (disaster type, region, document
// type) and content classification (sectors, priority) from keyword gazetteers.
package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LabelKeywords maps one canonical label to the keywords that select it.
type LabelKeywords struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Category is an ordered list of labeled keyword sets. Order matters: the first
// label with a matching keyword wins in single-label categories.
type Category []LabelKeywords

// matchFirst returns the first label whose keywords contain a substring of text,
// or "" when none match. text must already be lowercased/normalized.
func (c Category) matchFirst(text string) string {
	for _, lk := range c {
		for _, kw := range lk.Keywords {
			if kw != "" && strings.Contains(text, kw) {
				return lk.Label
			}
		}
	}
	return ""
}

// matchAll returns every label whose keywords contain a substring of text,
// in declared order.
func (c Category) matchAll(text string) []string {
	var labels []string
	for _, lk := range c {
		for _, kw := range lk.Keywords {
			if kw != "" && strings.Contains(text, kw) {
				labels = append(labels, lk.Label)
				break
			}
		}
	}
	return labels
}

// Gazetteer holds all keyword tables. Tables are configuration data, not logic:
// new locales or disaster vocabularies are added here (or via a YAML override),
// never as new branches in the classifiers.
type Gazetteer struct {
	DisasterTypes Category `yaml:"disaster_types"`
	Regions       Category `yaml:"regions"`
	DocumentTypes Category `yaml:"document_types"`
	Sectors       Category `yaml:"sectors"`
	Priorities    Category `yaml:"priorities"`
}

// Default returns the built-in gazetteer with a Pacific disaster-recovery focus.
func Default() *Gazetteer {
	return &Gazetteer{
		DisasterTypes: Category{
			{Label: "cyclone", Keywords: []string{"cyclone", "hurricane", "typhoon"}},
			{Label: "earthquake", Keywords: []string{"earthquake", "seismic"}},
			{Label: "tsunami", Keywords: []string{"tsunami"}},
			{Label: "flood", Keywords: []string{"flood", "flooding"}},
			{Label: "drought", Keywords: []string{"drought"}},
			{Label: "volcanic", Keywords: []string{"volcanic", "volcano"}},
			{Label: "wildfire", Keywords: []string{"wildfire", "fire"}},
			{Label: "landslide", Keywords: []string{"landslide"}},
		},
		Regions: Category{
			{Label: "vanuatu", Keywords: []string{"vanuatu"}},
			{Label: "samoa", Keywords: []string{"samoa"}},
			{Label: "fiji", Keywords: []string{"fiji"}},
			{Label: "tonga", Keywords: []string{"tonga"}},
			{Label: "solomon_islands", Keywords: []string{"solomon", "solomons"}},
			{Label: "papua_new_guinea", Keywords: []string{"papua", "png"}},
			{Label: "marshall_islands", Keywords: []string{"marshall"}},
			{Label: "palau", Keywords: []string{"palau"}},
			{Label: "micronesia", Keywords: []string{"micronesia"}},
			{Label: "nauru", Keywords: []string{"nauru"}},
			{Label: "kiribati", Keywords: []string{"kiribati"}},
			{Label: "tuvalu", Keywords: []string{"tuvalu"}},
		},
		DocumentTypes: Category{
			{Label: "assessment", Keywords: []string{"assessment", "evaluation", "analysis"}},
			{Label: "recovery_plan", Keywords: []string{"recovery", "reconstruction", "rebuild"}},
			{Label: "funding_guide", Keywords: []string{"funding", "finance", "budget", "donor"}},
			{Label: "best_practices", Keywords: []string{"best_practices", "guidelines", "manual"}},
			{Label: "case_study", Keywords: []string{"case_study", "example", "success"}},
		},
		Sectors: Category{
			{Label: "infrastructure", Keywords: []string{
				"road", "bridge", "port", "airport", "electricity", "power", "grid",
				"water", "sanitation", "sewage", "telecommunications", "internet",
			}},
			{Label: "housing", Keywords: []string{
				"housing", "shelter", "residential", "accommodation", "home",
				"building", "construction", "repair", "rebuild", "reconstruct",
			}},
			{Label: "agriculture", Keywords: []string{
				"agriculture", "farming", "crop", "livestock", "fishery", "aquaculture",
				"food security", "irrigation", "fertilizer", "seed", "harvest",
			}},
			{Label: "health", Keywords: []string{
				"health", "hospital", "clinic", "medical", "healthcare", "medicine",
				"doctor", "nurse", "treatment", "vaccination", "epidemic", "disease",
			}},
			{Label: "education", Keywords: []string{
				"education", "school", "university", "training", "capacity building",
				"teacher", "student", "learning", "knowledge", "skill",
			}},
			{Label: "environment", Keywords: []string{
				"environment", "climate", "forest", "mangrove", "coral", "ecosystem",
				"biodiversity", "conservation", "restoration", "renewable energy",
			}},
			{Label: "economic", Keywords: []string{
				"economy", "economic", "business", "employment", "job", "livelihood",
				"income", "poverty", "finance", "microfinance", "market", "trade",
			}},
			{Label: "governance", Keywords: []string{
				"governance", "government", "policy", "institution", "capacity",
				"administration", "management", "coordination", "planning",
			}},
		},
		Priorities: Category{
			{Label: "high", Keywords: []string{
				"emergency", "urgent", "critical", "immediate", "life-threatening",
				"essential", "priority", "vital", "crucial", "catastrophic",
			}},
			{Label: "medium", Keywords: []string{
				"important", "significant", "necessary", "required", "needed",
				"beneficial", "valuable", "useful", "recommended",
			}},
			{Label: "low", Keywords: []string{
				"optional", "future", "long-term", "enhancement", "improvement",
				"additional", "supplementary", "nice-to-have",
			}},
		},
	}
}

// Load reads a gazetteer override from a YAML file. Tables missing from the
// file keep the built-in defaults, so an override can replace a single category.
func Load(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}
	var loaded Gazetteer
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse gazetteer: %w", err)
	}
	g := Default()
	if len(loaded.DisasterTypes) > 0 {
		g.DisasterTypes = loaded.DisasterTypes
	}
	if len(loaded.Regions) > 0 {
		g.Regions = loaded.Regions
	}
	if len(loaded.DocumentTypes) > 0 {
		g.DocumentTypes = loaded.DocumentTypes
	}
	if len(loaded.Sectors) > 0 {
		g.Sectors = loaded.Sectors
	}
	if len(loaded.Priorities) > 0 {
		g.Priorities = loaded.Priorities
	}
	return g, nil
}
