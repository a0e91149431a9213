package usecase

import (
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cartcompare/backend/internal/domain"
)

// Default scoring constants. The comparator runs in two modes with
// deliberately divergent keyword-boost weights and thresholds; unifying them
// would change matching behavior, so both stay configurable and named.
const (
	defaultBulkThreshold     = 0.4 // minimum similarity for cross-store comparison
	defaultStoreThreshold    = 0.3 // minimum similarity for single-store lookup
	defaultOrderBoost        = 0.2 // joined keyword strings contain one another
	defaultPartialBoost      = 0.3 // weight of partial token overlap
	defaultExactNameBoost    = 0.5 // normalized names exactly equal
	defaultBulkKeywordBoost  = 0.3 // partial keyword overlap weight in bulk mode
	defaultStoreKeywordBoost = 0.4 // exact keyword hit weight in single-store mode
	defaultCategoryBoost     = 0.2 // search keyword matches the candidate's category
	defaultFuzzyTrigger      = 0.5 // run the edit-distance fallback below this score
	defaultFuzzyMinScore     = 0.7 // minimum normalized edit similarity to count
	defaultFuzzyWeight       = 0.8 // fuzzy matches are discounted to 80%
	defaultTieBand           = 0.1 // similarity delta treated as a tie when ranking
	defaultTopPerStore       = 5
	defaultMaxComparisons    = 10
	defaultMaxAlternatives   = 4
)

// MatchConfig holds every tunable constant of the matching engine. Zero
// values fall back to the defaults above, so a zero MatchConfig gives the
// calibrated behavior.
type MatchConfig struct {
	BulkThreshold     float64
	StoreThreshold    float64
	OrderBoost        float64
	PartialBoost      float64
	ExactNameBoost    float64
	BulkKeywordBoost  float64
	StoreKeywordBoost float64
	CategoryBoost     float64
	FuzzyTrigger      float64
	FuzzyMinScore     float64
	FuzzyWeight       float64
	TieBand           float64
	TopPerStore       int
	MaxComparisons    int
	MaxAlternatives   int

	EnableDebugLogging bool
}

func (c MatchConfig) withDefaults() MatchConfig {
	def := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	def(&c.BulkThreshold, defaultBulkThreshold)
	def(&c.StoreThreshold, defaultStoreThreshold)
	def(&c.OrderBoost, defaultOrderBoost)
	def(&c.PartialBoost, defaultPartialBoost)
	def(&c.ExactNameBoost, defaultExactNameBoost)
	def(&c.BulkKeywordBoost, defaultBulkKeywordBoost)
	def(&c.StoreKeywordBoost, defaultStoreKeywordBoost)
	def(&c.CategoryBoost, defaultCategoryBoost)
	def(&c.FuzzyTrigger, defaultFuzzyTrigger)
	def(&c.FuzzyMinScore, defaultFuzzyMinScore)
	def(&c.FuzzyWeight, defaultFuzzyWeight)
	def(&c.TieBand, defaultTieBand)
	if c.TopPerStore <= 0 {
		c.TopPerStore = defaultTopPerStore
	}
	if c.MaxComparisons <= 0 {
		c.MaxComparisons = defaultMaxComparisons
	}
	if c.MaxAlternatives <= 0 {
		c.MaxAlternatives = defaultMaxAlternatives
	}
	return c
}

// scoreMode selects which contextual boosts apply on top of the base score.
type scoreMode int

const (
	// modeBulk is cross-store comparison scoring: exact-name bonus, partial
	// keyword overlap, fuzzy fallback and category boost all apply.
	modeBulk scoreMode = iota
	// modeStore is single-store disambiguation: base score plus the heavier
	// exact-keyword-hit boost only.
	modeStore
)

// Scorer computes bounded [0,1] similarity between free-text search terms and
// catalog products.
type Scorer struct {
	normalizer *Normalizer
	cfg        MatchConfig
	log        zerolog.Logger
}

// NewScorer creates a scorer. The config is expected to already have its
// defaults applied.
func NewScorer(normalizer *Normalizer, cfg MatchConfig, log zerolog.Logger) *Scorer {
	return &Scorer{normalizer: normalizer, cfg: cfg, log: log}
}

// termProfile caches the derived forms of one search term so scoring a whole
// catalog does not re-normalize the term per product.
type termProfile struct {
	raw        string
	normalized string
	keywords   []string
	joined     string
}

func (s *Scorer) profile(term string) termProfile {
	keywords := s.normalizer.ExtractKeywords(term)
	return termProfile{
		raw:        term,
		normalized: s.normalizer.Normalize(term),
		keywords:   keywords,
		joined:     strings.Join(keywords, " "),
	}
}

// Similarity scores how plausibly two free-text names denote the same
// product. This is the base signal without comparator-side contextual boosts.
func (s *Scorer) Similarity(searchTerm, candidateName string) float64 {
	p := s.profile(searchTerm)
	return s.base(p, s.normalizer.Normalize(candidateName), s.normalizer.ExtractKeywords(candidateName))
}

// base combines set overlap, keyword order and partial substring signals.
func (s *Scorer) base(p termProfile, candNormalized string, candKeywords []string) float64 {
	// Exact match after normalization is a certain hit.
	if p.normalized == candNormalized {
		return 1.0
	}

	intersection := 0
	inSearch := make(map[string]bool, len(p.keywords))
	for _, kw := range p.keywords {
		inSearch[kw] = true
	}
	union := len(inSearch)
	for _, kw := range candKeywords {
		if inSearch[kw] {
			intersection++
		} else {
			union++
		}
	}

	score := 0.0
	if union > 0 {
		score = float64(intersection) / float64(union)
	}

	// Keyword-order preservation: one joined set containing the other means
	// the term reads as a sub-phrase of the candidate (or vice versa).
	candJoined := strings.Join(candKeywords, " ")
	if strings.Contains(candJoined, p.joined) || strings.Contains(p.joined, candJoined) {
		score += s.cfg.OrderBoost
	}

	// Partial token matches: "straw" vs "strawberry" style hits.
	partial := 0
	for _, kw := range p.keywords {
		for _, ck := range candKeywords {
			if len(kw) >= 3 && len(ck) >= 3 && (strings.Contains(kw, ck) || strings.Contains(ck, kw)) {
				partial++
			}
		}
	}
	if longest := max(len(p.keywords), len(candKeywords)); longest > 0 {
		score += float64(partial) / float64(longest) * s.cfg.PartialBoost
	}

	return math.Min(1.0, score)
}

// ScoreProduct applies the contextual boosts for the given mode on top of the
// base similarity. The result is clamped to [0,1].
func (s *Scorer) ScoreProduct(p termProfile, prod *domain.Product, mode scoreMode) float64 {
	sim := s.base(p, prod.NormalizedName, prod.Keywords)

	switch mode {
	case modeStore:
		// Single-store disambiguation favors exact keyword hits heavily.
		if len(p.keywords) > 0 {
			exact := exactOverlapCount(p.keywords, prod.Keywords)
			sim += float64(exact) / float64(len(p.keywords)) * s.cfg.StoreKeywordBoost
		}

	case modeBulk:
		// Safety net for callers that bypass the base exact-match short
		// circuit.
		if prod.NormalizedName == p.normalized {
			sim += s.cfg.ExactNameBoost
		}

		if len(p.keywords) > 0 {
			overlap := partialOverlapCount(p.keywords, prod.Keywords)
			sim += float64(overlap) / float64(len(p.keywords)) * s.cfg.BulkKeywordBoost
		}

		// Edit-distance fallback catches typos that defeat token overlap.
		if sim < s.cfg.FuzzyTrigger && len(p.raw) > 3 {
			if fuzzy := normalizedEditSimilarity(p.normalized, prod.NormalizedName); fuzzy > s.cfg.FuzzyMinScore {
				sim = math.Max(sim, fuzzy*s.cfg.FuzzyWeight)
			}
		}

		if prod.Category != "" && s.categoryMatches(p, prod.Category) {
			sim += s.cfg.CategoryBoost
		}
	}

	sim = math.Min(1.0, sim)

	if s.cfg.EnableDebugLogging {
		s.log.Debug().
			Str("term", p.raw).
			Str("candidate", prod.OriginalName).
			Str("store", prod.Store).
			Float64("similarity", sim).
			Msg("scored")
	}

	return sim
}

// categoryMatches reports whether any search keyword partially matches any
// keyword of the candidate's category string.
func (s *Scorer) categoryMatches(p termProfile, category string) bool {
	categoryKeywords := s.normalizer.ExtractKeywords(category)
	for _, kw := range p.keywords {
		for _, ck := range categoryKeywords {
			if strings.Contains(ck, kw) || strings.Contains(kw, ck) {
				return true
			}
		}
	}
	return false
}

// partialOverlapCount counts search keywords with at least one substring
// match (either direction) among the candidate keywords.
func partialOverlapCount(searchKeywords, candKeywords []string) int {
	count := 0
	for _, kw := range searchKeywords {
		for _, ck := range candKeywords {
			if strings.Contains(ck, kw) || strings.Contains(kw, ck) {
				count++
				break
			}
		}
	}
	return count
}

// exactOverlapCount counts search keywords present verbatim among the
// candidate keywords.
func exactOverlapCount(searchKeywords, candKeywords []string) int {
	inCand := make(map[string]bool, len(candKeywords))
	for _, ck := range candKeywords {
		inCand[ck] = true
	}
	count := 0
	for _, kw := range searchKeywords {
		if inCand[kw] {
			count++
		}
	}
	return count
}

// normalizedEditSimilarity maps Levenshtein distance into [0,1], where 1 is
// an exact match.
func normalizedEditSimilarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(longest)
}

// levenshteinDistance calculates the edit distance between two strings:
// insertion, deletion and substitution each cost 1, no transposition.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)

	// Two rows instead of the full matrix for space efficiency.
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)

	for j := 0; j <= len(r2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
