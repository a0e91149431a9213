package usecase

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/cartcompare/backend/internal/domain"
)

// CatalogService builds immutable products from raw catalog records and
// appends them to the session's index. Normalization, keyword extraction and
// price parsing all happen exactly once, here.
type CatalogService struct {
	repo       domain.CatalogRepository
	normalizer *Normalizer
	log        zerolog.Logger
}

// NewCatalogService creates a catalog service over the given repository.
func NewCatalogService(repo domain.CatalogRepository, normalizer *Normalizer, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, normalizer: normalizer, log: log}
}

// AddProduct derives the cached fields and appends the product. Insertion
// never fails: an unparsable price is stored as absent and the product is
// simply excluded later from price-bearing operations.
func (s *CatalogService) AddProduct(name, rawPrice, store, category string) {
	prod := &domain.Product{
		OriginalName:   name,
		NormalizedName: s.normalizer.Normalize(name),
		Keywords:       s.normalizer.ExtractKeywords(name),
		Store:          store,
		Category:       category,
	}
	if price, ok := ParsePrice(rawPrice); ok {
		prod.Price = &price
	}
	s.repo.Add(prod)
}

// LoadRecords ingests one retailer's records. The boundary rule: a record
// needs a name longer than two characters and a non-empty price field. The
// price may still fail to parse to a number later; that is not a rejection.
func (s *CatalogService) LoadRecords(store string, records []domain.RawRecord) int {
	added := 0
	for _, r := range records {
		if len(strings.TrimSpace(r.Name)) <= 2 || strings.TrimSpace(r.Price) == "" {
			continue
		}
		s.AddProduct(r.Name, r.Price, store, r.Category)
		added++
	}
	s.log.Info().Str("store", store).Int("products", added).Int("skipped", len(records)-added).Msg("catalog loaded")
	return added
}
