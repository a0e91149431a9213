package domain

import "context"

// CatalogRepository is the append-only product index for one comparison
// session. Add is only called while catalogs load; every read method is safe
// for concurrent use once loading has finished. Callers must not interleave
// Add with reads: ingestion finishes before querying starts.
type CatalogRepository interface {
	Add(p *Product)
	All() []*Product
	ByStore(store string) []*Product
	ByNormalizedName(name string) []*Product
	Stores() []string // first-seen insertion order
	Len() int
}

// CatalogSource yields raw catalog rows for one retailer. Implementations own
// file formats and character encodings; the matching engine only ever sees
// already-split field values.
type CatalogSource interface {
	Read(ctx context.Context, path string) ([]RawRecord, error)
}
