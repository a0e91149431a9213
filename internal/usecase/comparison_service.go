package usecase

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/cartcompare/backend/internal/domain"
)

// ComparisonService orchestrates scoring across stores and produces ranked
// price comparisons. It only ever reads the catalog.
type ComparisonService struct {
	repo   domain.CatalogRepository
	scorer *Scorer
	cfg    MatchConfig
	log    zerolog.Logger
}

// NewComparisonService creates a comparison service. Zero fields in cfg fall
// back to the calibrated defaults.
func NewComparisonService(repo domain.CatalogRepository, normalizer *Normalizer, cfg MatchConfig, log zerolog.Logger) *ComparisonService {
	cfg = cfg.withDefaults()
	return &ComparisonService{
		repo:   repo,
		scorer: NewScorer(normalizer, cfg, log),
		cfg:    cfg,
		log:    log,
	}
}

// Config returns the effective matching configuration.
func (s *ComparisonService) Config() MatchConfig { return s.cfg }

// CompareAll scores the whole catalog against the search term, keeps priced
// products above the bulk threshold, pairs the top candidates of every store
// combination and returns the ranked comparisons, truncated to the configured
// maximum. An empty result is a first-class outcome.
func (s *ComparisonService) CompareAll(term string) []domain.Comparison {
	p := s.scorer.profile(term)

	var matches []domain.ScoredProduct
	for _, prod := range s.repo.All() {
		sim := s.scorer.ScoreProduct(p, prod, modeBulk)
		if sim >= s.cfg.BulkThreshold && prod.HasPrice() {
			matches = append(matches, domain.ScoredProduct{Product: *prod, Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	// Group by store, preserving the order stores first appear in the sorted
	// scan so downstream iteration is deterministic.
	byStore := make(map[string][]domain.ScoredProduct)
	var storeOrder []string
	for _, m := range matches {
		if _, ok := byStore[m.Store]; !ok {
			storeOrder = append(storeOrder, m.Store)
		}
		if len(byStore[m.Store]) < s.cfg.TopPerStore {
			byStore[m.Store] = append(byStore[m.Store], m)
		}
	}

	var comparisons []domain.Comparison
	for i := 0; i < len(storeOrder); i++ {
		for j := i + 1; j < len(storeOrder); j++ {
			for _, a := range byStore[storeOrder[i]] {
				for _, b := range byStore[storeOrder[j]] {
					combined := (a.Similarity + b.Similarity) / 2
					if combined < s.cfg.BulkThreshold {
						continue
					}
					comparisons = append(comparisons, buildComparison(term, a, b, combined))
				}
			}
		}
	}

	// Rank by similarity, but treat scores within the tie band as equal and
	// fall through to the bigger saving.
	sort.SliceStable(comparisons, func(i, j int) bool {
		if math.Abs(comparisons[i].CombinedSimilarity-comparisons[j].CombinedSimilarity) > s.cfg.TieBand {
			return comparisons[i].CombinedSimilarity > comparisons[j].CombinedSimilarity
		}
		return comparisons[i].PotentialSaving.GreaterThan(comparisons[j].PotentialSaving)
	})

	if len(comparisons) > s.cfg.MaxComparisons {
		comparisons = comparisons[:s.cfg.MaxComparisons]
	}
	return comparisons
}

// FindInStore scores one store's products against the term and returns the
// best candidates above the single-store threshold, best first.
func (s *ComparisonService) FindInStore(term, store string, limit int) []domain.ScoredProduct {
	if limit <= 0 {
		limit = s.cfg.TopPerStore
	}
	p := s.scorer.profile(term)

	var matches []domain.ScoredProduct
	for _, prod := range s.repo.ByStore(store) {
		sim := s.scorer.ScoreProduct(p, prod, modeStore)
		if sim >= s.cfg.StoreThreshold {
			matches = append(matches, domain.ScoredProduct{Product: *prod, Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// FindAlternatives returns at most one best-scoring priced product per store,
// excluding excludeStore (pass "" to search everywhere), capped at the
// configured number of alternative stores. Scores within the tie band rank by
// the cheaper price.
func (s *ComparisonService) FindAlternatives(term, excludeStore string) []domain.ScoredProduct {
	p := s.scorer.profile(term)

	var matches []domain.ScoredProduct
	for _, prod := range s.repo.All() {
		if excludeStore != "" && prod.Store == excludeStore {
			continue
		}
		sim := s.scorer.ScoreProduct(p, prod, modeBulk)
		if sim >= s.cfg.BulkThreshold && prod.HasPrice() {
			matches = append(matches, domain.ScoredProduct{Product: *prod, Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if math.Abs(matches[i].Similarity-matches[j].Similarity) > s.cfg.TieBand {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Price.LessThan(*matches[j].Price)
	})

	// One representative per store: a single left-to-right scan where only a
	// strictly higher similarity replaces the first-seen entry.
	best := make(map[string]int)
	var storeOrder []string
	for i, m := range matches {
		idx, ok := best[m.Store]
		if !ok {
			best[m.Store] = i
			storeOrder = append(storeOrder, m.Store)
			continue
		}
		if matches[idx].Similarity < m.Similarity {
			best[m.Store] = i
		}
	}

	out := make([]domain.ScoredProduct, 0, len(storeOrder))
	for _, store := range storeOrder {
		out = append(out, matches[best[store]])
		if len(out) == s.cfg.MaxAlternatives {
			break
		}
	}
	return out
}

// buildComparison pairs two priced candidates from different stores. The
// saving is symmetric: the gap between the dearer and the cheaper option.
func buildComparison(term string, a, b domain.ScoredProduct, combined float64) domain.Comparison {
	pa, pb := *a.Price, *b.Price

	diff := pa.Sub(pb).Abs()
	cheaperStore, cheaperPrice := b.Store, pb
	if pa.LessThan(pb) {
		cheaperStore, cheaperPrice = a.Store, pa
	}

	return domain.Comparison{
		ItemA:              comparedItem(a),
		ItemB:              comparedItem(b),
		PriceDifference:    diff,
		PotentialSaving:    diff,
		CombinedSimilarity: combined,
		CheaperStore:       cheaperStore,
		CheaperPrice:       cheaperPrice,
		SearchTerm:         term,
	}
}

func comparedItem(p domain.ScoredProduct) domain.ComparedItem {
	return domain.ComparedItem{
		Name:       p.OriginalName,
		Price:      *p.Price,
		Store:      p.Store,
		Similarity: p.Similarity,
	}
}
