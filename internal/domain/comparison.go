package domain

import "github.com/shopspring/decimal"

// ComparedItem is one side of a price comparison.
type ComparedItem struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Store      string          `json:"store"`
	Similarity float64         `json:"similarity"`
}

// Comparison relates two similar products from two different stores.
// ItemA.Store != ItemB.Store always holds: a comparison never pairs two
// products from the same store.
type Comparison struct {
	ItemA              ComparedItem    `json:"productA"`
	ItemB              ComparedItem    `json:"productB"`
	PriceDifference    decimal.Decimal `json:"priceDifference"`
	PotentialSaving    decimal.Decimal `json:"potentialSaving"`
	CombinedSimilarity float64         `json:"combinedSimilarity"`
	CheaperStore       string          `json:"cheaperStore"`
	CheaperPrice       decimal.Decimal `json:"cheaperPrice"`
	SearchTerm         string          `json:"searchTerm"`
}

// ItemResult aggregates the comparisons for one shopping-list line.
// BestSaving is nil exactly when Comparisons is empty; an unmatched item is a
// valid outcome, not an error.
type ItemResult struct {
	SearchTerm   string        `json:"searchTerm"`
	BaseProduct  *ComparedItem `json:"baseProduct,omitempty"`
	Comparisons  []Comparison  `json:"comparisons"`
	BestSaving   *Comparison   `json:"bestSaving,omitempty"`
	MatchQuality float64       `json:"matchQuality"`
}

// SessionSummary aggregates a whole shopping-list analysis.
type SessionSummary struct {
	TotalSavings   decimal.Decimal            `json:"totalSavings"`
	BestStore      string                     `json:"bestAlternativeStore"`
	MatchedItems   int                        `json:"matchedItems"`
	TotalItems     int                        `json:"totalItems"`
	SavingsByStore map[string]decimal.Decimal `json:"savingsByStore,omitempty"`
}
