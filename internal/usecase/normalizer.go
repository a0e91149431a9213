package usecase

import (
	"regexp"
	"strings"
)

// Compiled once at startup from the tables in tables.go. The three strip
// passes run before punctuation cleanup so multi-word tokens still match.
var (
	brandLabelRegex      = regexp.MustCompile(`(` + joinQuoted(brandLabels) + `)`)
	unitSizeRegex        = regexp.MustCompile(`\b(\d+\s*(` + joinQuoted(unitWords) + `)|x\d+)\b`)
	descriptorRegex      = regexp.MustCompile(`\b(` + joinQuoted(descriptorWords) + `)\b`)
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

func joinQuoted(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// Normalizer canonicalizes raw product names and derives keyword sets from
// them. It is stateless; all methods are pure.
type Normalizer struct{}

// NewNormalizer creates a normalizer over the built-in token tables.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize canonicalizes a product name: lowercase, strip retailer/brand
// labels, strip size tokens like "200g", "2 pint" or "x5", strip non-identity
// descriptors, reduce punctuation to spaces and collapse whitespace.
// The passes repeat until a fixed point: removing one token can expose
// another (a descriptor or a hyphen between a number and its unit shields the
// size token), and Normalize(Normalize(s)) must equal Normalize(s).
// Brand labels carry apostrophes, so the brand pass runs before punctuation
// cleanup within each round.
// The result may be empty when the name had no identity-bearing content;
// callers treat that as "no usable signal", never as an error.
func (n *Normalizer) Normalize(name string) string {
	s := strings.ToLower(name)
	for {
		prev := s
		s = brandLabelRegex.ReplaceAllString(s, "")
		s = unitSizeRegex.ReplaceAllString(s, "")
		s = descriptorRegex.ReplaceAllString(s, "")
		s = nonAlphanumericRegex.ReplaceAllString(s, " ")
		s = multipleSpacesRegex.ReplaceAllString(s, " ")
		if s == prev {
			break
		}
	}
	return strings.TrimSpace(s)
}

// ExtractKeywords returns the keyword set for a name in a stable insertion
// order: normalized tokens longer than two characters first, then synonym
// expansions in table order. The order matters downstream: the scorer joins
// the set back into a string for its order-preservation check.
func (n *Normalizer) ExtractKeywords(name string) []string {
	normalized := n.Normalize(name)

	var keywords []string
	seen := make(map[string]bool)
	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			keywords = append(keywords, w)
		}
	}

	var words []string
	for _, w := range strings.Fields(normalized) {
		if len(w) <= 2 {
			continue
		}
		words = append(words, w)
		add(w)
	}

	for _, w := range words {
		for _, g := range synonymGroups {
			if g.matches(w) {
				for _, syn := range g.terms {
					add(syn)
				}
			}
		}
	}

	return keywords
}
