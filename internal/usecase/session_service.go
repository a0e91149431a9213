package usecase

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cartcompare/backend/internal/domain"
)

// SelectedProduct is a product the user picked for one shopping-list line on
// the selection step. Price arrives as the raw string the catalog showed.
type SelectedProduct struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category,omitempty"`
}

// AnalyzeRequest is one shopping-list analysis: the user's home store, the
// free-text list lines and, optionally, a parallel slice with the concrete
// product picked for each line (nil entries where nothing was picked).
type AnalyzeRequest struct {
	HomeStore  string
	Items      []string
	Selections []*SelectedProduct
}

// SessionService analyzes whole shopping lists: one ItemResult per line plus
// the session aggregates the presentation layer reports.
type SessionService struct {
	comparisons *ComparisonService
	log         zerolog.Logger
}

// NewSessionService creates a session service on top of the comparator.
func NewSessionService(comparisons *ComparisonService, log zerolog.Logger) *SessionService {
	return &SessionService{comparisons: comparisons, log: log}
}

// AnalyzeList walks the shopping list in order. A line with a preselected
// product uses it as the fixed home item (similarity 1.0) and compares it
// against the best alternative per other store; otherwise the best home-store
// match is looked up first. Lines with no comparisons are reported as
// unmatched, never as errors.
func (s *SessionService) AnalyzeList(ctx context.Context, req *AnalyzeRequest) ([]domain.ItemResult, *domain.SessionSummary, error) {
	if req == nil || req.HomeStore == "" || len(req.Items) == 0 {
		return nil, nil, domain.ErrInvalidRequest
	}

	results := make([]domain.ItemResult, 0, len(req.Items))
	total := decimal.Zero
	savingsByStore := make(map[string]decimal.Decimal)
	matched := 0

	for i, term := range req.Items {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		var sel *SelectedProduct
		if i < len(req.Selections) {
			sel = req.Selections[i]
		}

		item := s.analyzeItem(term, req.HomeStore, sel)
		if item.BestSaving != nil {
			matched++
			saving := item.BestSaving.PotentialSaving
			total = total.Add(saving)
			if saving.IsPositive() && item.BestSaving.CheaperStore != req.HomeStore {
				savingsByStore[item.BestSaving.CheaperStore] = savingsByStore[item.BestSaving.CheaperStore].Add(saving)
			}
		}
		results = append(results, item)
	}

	summary := &domain.SessionSummary{
		TotalSavings:   total,
		BestStore:      bestAlternativeStore(savingsByStore),
		MatchedItems:   matched,
		TotalItems:     len(req.Items),
		SavingsByStore: savingsByStore,
	}

	s.log.Info().
		Str("homeStore", req.HomeStore).
		Int("items", len(req.Items)).
		Int("matched", matched).
		Str("totalSavings", total.StringFixed(2)).
		Str("bestStore", summary.BestStore).
		Msg("shopping list analyzed")

	return results, summary, nil
}

func (s *SessionService) analyzeItem(term, homeStore string, sel *SelectedProduct) domain.ItemResult {
	var base *domain.ComparedItem
	var comparisons []domain.Comparison

	if home, ok := selectedItem(sel, homeStore); ok {
		// The user picked this product, so it is a perfect match by
		// definition.
		base = home
		comparisons = s.compareAgainstHome(term, *home)
		sort.SliceStable(comparisons, func(i, j int) bool {
			return comparisons[i].PotentialSaving.GreaterThan(comparisons[j].PotentialSaving)
		})
	} else if storeMatches := s.comparisons.FindInStore(term, homeStore, 1); len(storeMatches) > 0 {
		m := storeMatches[0]
		if m.HasPrice() {
			item := comparedItem(m)
			base = &item
			comparisons = s.compareAgainstHome(term, item)
		}
	}

	result := domain.ItemResult{
		SearchTerm:  term,
		BaseProduct: base,
		Comparisons: comparisons,
	}

	if len(comparisons) > 0 {
		result.BestSaving = bestSaving(comparisons)
		result.MatchQuality = comparisons[0].CombinedSimilarity
		if len(result.Comparisons) > 5 {
			result.Comparisons = result.Comparisons[:5]
		}
	}
	return result
}

// compareAgainstHome builds one comparison per alternative store for the
// fixed home item. Savings are directional here: only a cheaper alternative
// counts, an equal price is a valid zero-saving comparison.
func (s *SessionService) compareAgainstHome(term string, home domain.ComparedItem) []domain.Comparison {
	alternatives := s.comparisons.FindAlternatives(term, home.Store)

	comparisons := make([]domain.Comparison, 0, len(alternatives))
	for _, alt := range alternatives {
		altItem := comparedItem(alt)

		saving := home.Price.Sub(altItem.Price)
		if saving.IsNegative() {
			saving = decimal.Zero
		}
		cheaperStore, cheaperPrice := altItem.Store, altItem.Price
		if home.Price.LessThan(altItem.Price) {
			cheaperStore, cheaperPrice = home.Store, home.Price
		}

		comparisons = append(comparisons, domain.Comparison{
			ItemA:              home,
			ItemB:              altItem,
			PriceDifference:    home.Price.Sub(altItem.Price).Abs(),
			PotentialSaving:    saving,
			CombinedSimilarity: (home.Similarity + altItem.Similarity) / 2,
			CheaperStore:       cheaperStore,
			CheaperPrice:       cheaperPrice,
			SearchTerm:         term,
		})
	}
	return comparisons
}

// selectedItem validates a preselection and turns it into the home item.
// A selection with an unparsable price cannot anchor comparisons, so it falls
// back to the search path.
func selectedItem(sel *SelectedProduct, homeStore string) (*domain.ComparedItem, bool) {
	if sel == nil || sel.Name == "" {
		return nil, false
	}
	price, ok := ParsePrice(sel.Price)
	if !ok {
		return nil, false
	}
	return &domain.ComparedItem{
		Name:       sel.Name,
		Price:      price,
		Store:      homeStore,
		Similarity: 1.0,
	}, true
}

// bestSaving picks the comparison with the largest saving; earlier entries
// win ties.
func bestSaving(comparisons []domain.Comparison) *domain.Comparison {
	best := comparisons[0]
	for _, c := range comparisons[1:] {
		if c.PotentialSaving.GreaterThan(best.PotentialSaving) {
			best = c
		}
	}
	return &best
}

// bestAlternativeStore returns the store that accumulated the most savings.
// Store names are visited in lexical order so ties resolve deterministically
// regardless of map iteration order.
func bestAlternativeStore(savings map[string]decimal.Decimal) string {
	names := make([]string, 0, len(savings))
	for name := range savings {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	for _, name := range names {
		if best == "" || savings[name].GreaterThan(savings[best]) {
			best = name
		}
	}
	return best
}
