package entity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Patterns holds the regex gazetteer per entity category. Patterns are
// configuration data: extending coverage to a new locale means editing these
// lists (or loading a YAML override), not the extractor.
type Patterns struct {
	Locations     []string `yaml:"locations"`
	Organizations []string `yaml:"organizations"`
	Disasters     []string `yaml:"disasters"`
	Dates         []string `yaml:"dates"`
	Amounts       []string `yaml:"amounts"`
}

// DefaultPatterns returns the built-in Pacific-focused pattern set.
func DefaultPatterns() *Patterns {
	return &Patterns{
		Locations: []string{
			`(?i)\b(?:Vanuatu|Samoa|Fiji|Tonga|Solomon Islands?|Papua New Guinea|PNG)\b`,
			`(?i)\b(?:Marshall Islands?|Palau|Micronesia|Nauru|Kiribati|Tuvalu)\b`,
			`(?i)\b(?:Port Vila|Apia|Suva|Nuku'alofa|Honiara|Port Moresby)\b`,
		},
		Organizations: []string{
			`(?i)\b(?:UNDP|World Bank|USAID|European Union|EU|UN|WHO|UNESCO)\b`,
			`(?i)\b(?:Green Climate Fund|GCF|Pacific Disaster Risk Management|PDRM)\b`,
			`(?i)\b(?:Red Cross|Oxfam|Save the Children|Médecins Sans Frontières|MSF)\b`,
		},
		Disasters: []string{
			// Disaster noun followed by a storm name, e.g. "Cyclone Pam".
			`(?i)\b(?:Cyclone|Hurricane|Typhoon)\s+[A-Z][a-z]+\b`,
			`(?i)\b(?:Earthquake|Tsunami|Flood|Drought|Volcanic eruption)\b`,
		},
		Dates: []string{
			`\b\d{1,2}/\d{1,2}/\d{4}\b`,
			`\b\d{4}-\d{2}-\d{2}\b`,
			`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`,
		},
		Amounts: []string{
			`(?i)\$\s?[\d,]+(?:\.\d{2})?(?:\s?(?:million|billion|thousand|M|B|K))?`,
			`(?i)\bUSD\s?[\d,]+(?:\.\d{2})?(?:\s?(?:million|billion|thousand|M|B|K))?`,
			`(?i)€\s?[\d,]+(?:\.\d{2})?(?:\s?(?:million|billion|thousand|M|B|K))?`,
		},
	}
}

// LoadPatterns reads a pattern override from a YAML file. Categories missing
// from the file keep the built-in defaults.
func LoadPatterns(path string) (*Patterns, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}
	var loaded Patterns
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	p := DefaultPatterns()
	if len(loaded.Locations) > 0 {
		p.Locations = loaded.Locations
	}
	if len(loaded.Organizations) > 0 {
		p.Organizations = loaded.Organizations
	}
	if len(loaded.Disasters) > 0 {
		p.Disasters = loaded.Disasters
	}
	if len(loaded.Dates) > 0 {
		p.Dates = loaded.Dates
	}
	if len(loaded.Amounts) > 0 {
		p.Amounts = loaded.Amounts
	}
	return p, nil
}
