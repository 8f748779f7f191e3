// Package entity mines locations, organizations, disasters, dates, and
// monetary amounts from raw document text using configurable regex gazetteers.
package entity

import (
	"fmt"
	"regexp"

	"github.com/sarahlunette/resilience2reliefai/internal/models"
)

// Extractor applies compiled pattern lists per entity category against raw
// (non-normalized) text. Safe for concurrent use.
type Extractor struct {
	locations     []*regexp.Regexp
	organizations []*regexp.Regexp
	disasters     []*regexp.Regexp
	dates         []*regexp.Regexp
	amounts       []*regexp.Regexp
}

// NewExtractor compiles the pattern set. A nil p uses DefaultPatterns.
// Returns an error if any pattern does not compile.
func NewExtractor(p *Patterns) (*Extractor, error) {
	if p == nil {
		p = DefaultPatterns()
	}
	e := &Extractor{}
	for _, c := range []struct {
		name     string
		patterns []string
		dst      *[]*regexp.Regexp
	}{
		{"locations", p.Locations, &e.locations},
		{"organizations", p.Organizations, &e.organizations},
		{"disasters", p.Disasters, &e.disasters},
		{"dates", p.Dates, &e.dates},
		{"amounts", p.Amounts, &e.amounts},
	} {
		for _, pat := range c.patterns {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("compile %s pattern %q: %w", c.name, pat, err)
			}
			*c.dst = append(*c.dst, re)
		}
	}
	return e, nil
}

// Extract runs every category's patterns over text and returns the five
// deduplicated entity sets.
func (e *Extractor) Extract(text string) models.EntityBundle {
	return models.EntityBundle{
		Locations:     matchAll(e.locations, text),
		Organizations: matchAll(e.organizations, text),
		Disasters:     matchAll(e.disasters, text),
		Dates:         matchAll(e.dates, text),
		Amounts:       matchAll(e.amounts, text),
	}
}

// matchAll unions distinct whole-pattern matches across patterns.
func matchAll(patterns []*regexp.Regexp, text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, re := range patterns {
		for _, m := range re.FindAllString(text, -1) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
