package textproc

import (
	"regexp"
	"sort"
)

// DefaultMinKeywordLength is the minimum token length kept by ExtractKeywords
// when the caller passes a non-positive value.
const DefaultMinKeywordLength = 3

// MaxKeywords caps how many keywords ExtractKeywords returns.
const MaxKeywords = 50

// stopWords are common words excluded from keyword frequency analysis.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "up": {},
	"about": {}, "into": {}, "through": {}, "during": {}, "before": {},
	"after": {}, "above": {}, "below": {}, "between": {}, "among": {},
	"within": {}, "without": {}, "a": {}, "an": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {},
}

// tokenRe extracts maximal lowercase alphabetic runs from normalized text.
var tokenRe = regexp.MustCompile(`[a-z]+`)

// ExtractKeywords returns up to MaxKeywords keywords from text, most frequent
// first, ties broken by first appearance. Tokens shorter than minLength and
// stop words are discarded before counting.
func ExtractKeywords(text string, minLength int) []string {
	if minLength <= 0 {
		minLength = DefaultMinKeywordLength
	}
	counts := make(map[string]int)
	var order []string
	for _, tok := range tokenRe.FindAllString(Normalize(text), -1) {
		if len(tok) < minLength {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > MaxKeywords {
		order = order[:MaxKeywords]
	}
	return order
}
