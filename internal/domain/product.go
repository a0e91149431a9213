package domain

import "github.com/shopspring/decimal"

// RawRecord is one already-decoded catalog row handed to the core by an
// ingestion source. Values are raw strings exactly as they appeared in the
// retailer's export.
type RawRecord struct {
	Name     string
	Price    string
	Category string
}

// Product is one catalog entry. NormalizedName and Keywords are derived from
// OriginalName exactly once, when the product is built; a Product is never
// mutated after it enters the catalog.
type Product struct {
	OriginalName   string           `json:"name"`
	NormalizedName string           `json:"normalizedName"`
	Keywords       []string         `json:"keywords,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"` // nil when the raw price was unparsable
	Store          string           `json:"store"`
	Category       string           `json:"category,omitempty"`
}

// HasPrice reports whether the product carries a usable price. Products
// without one stay in the catalog but are excluded from every operation that
// compares prices.
func (p *Product) HasPrice() bool { return p.Price != nil }

// ScoredProduct pairs a catalog product with its similarity to one search
// term. Ephemeral; never stored back into the catalog.
type ScoredProduct struct {
	Product
	Similarity float64 `json:"similarity"`
}
