package usecase

import "strings"

// synonymGroup maps a concept key to the surface forms treated as equivalent
// during keyword expansion. Expansion is symmetric and transitive only within
// one group; groups never chain into each other, which keeps false-positive
// inflation bounded.
type synonymGroup struct {
	key   string
	terms []string
}

// matches reports whether a keyword belongs to the group: either it equals one
// of the surface forms, or it contains the concept key (so "cheeses" still
// hits the cheese group).
func (g synonymGroup) matches(word string) bool {
	for _, t := range g.terms {
		if t == word {
			return true
		}
	}
	return strings.Contains(word, g.key)
}

// synonymGroups covers dairy, meat, produce, pantry staples and household
// items. Group order is fixed: expansion appends terms in this order, and the
// resulting keyword order feeds the order-preservation boost in the scorer.
var synonymGroups = []synonymGroup{
	{"milk", []string{"milk", "dairy"}},
	{"bread", []string{"bread", "loaf", "baguette", "roll"}},
	{"cheese", []string{"cheese", "cheddar", "mozzarella", "brie", "gouda"}},
	{"yogurt", []string{"yogurt", "yoghurt"}},
	{"biscuits", []string{"biscuits", "cookies", "crackers"}},
	{"crisps", []string{"crisps", "chips"}},
	{"chicken", []string{"chicken", "poultry"}},
	{"beef", []string{"beef", "steak", "mince"}},
	{"pasta", []string{"pasta", "spaghetti", "penne", "fusilli"}},
	{"rice", []string{"rice", "basmati", "jasmine"}},
	{"oil", []string{"oil", "olive", "vegetable", "sunflower"}},
	{"butter", []string{"butter", "margarine", "spread"}},
	{"juice", []string{"juice", "drink", "beverage"}},
	{"cereal", []string{"cereal", "cornflakes", "muesli", "granola"}},
	{"tomato", []string{"tomato", "tomatoes"}},
	{"potato", []string{"potato", "potatoes", "spuds"}},
	{"apple", []string{"apple", "apples"}},
	{"banana", []string{"banana", "bananas"}},
	{"onion", []string{"onion", "onions"}},
	{"carrot", []string{"carrot", "carrots"}},
	{"bell_pepper", []string{"pepper", "peppers", "capsicum"}},
	{"cucumber", []string{"cucumber"}},
	{"lettuce", []string{"lettuce", "salad", "leaves"}},
	{"salmon", []string{"salmon", "fish"}},
	{"tuna", []string{"tuna", "fish"}},
	{"ham", []string{"ham", "bacon"}},
	{"soap", []string{"soap", "wash", "cleaner"}},
	{"shampoo", []string{"shampoo", "hair"}},
	{"detergent", []string{"detergent", "washing", "liquid"}},
	{"toilet", []string{"toilet", "tissue", "paper"}},
	{"tea", []string{"tea", "bags"}},
	{"coffee", []string{"coffee", "instant", "ground"}},
	{"sugar", []string{"sugar", "sweetener"}},
	{"flour", []string{"flour", "plain", "self-raising"}},
	{"salt", []string{"salt", "sea", "table"}},
	{"black_pepper", []string{"pepper", "black", "white", "ground"}},
}

// qualifierGroups documents near-identity brand/variant qualifiers (own-brand
// tiers, organic labels, fat-content tiers). It is informational metadata
// only: normalization already strips most of these, and the extractor
// deliberately never merges this table into keyword sets. Preserve that
// asymmetry when extending the tables.
var qualifierGroups = []synonymGroup{
	{"own brand", []string{"own brand", "everyday", "value", "basic", "essential"}},
	{"organic", []string{"organic", "bio", "natural"}},
	{"free range", []string{"free range", "outdoor bred"}},
	{"low fat", []string{"low fat", "reduced fat", "light"}},
	{"whole", []string{"whole", "full fat"}},
	{"semi skimmed", []string{"semi skimmed", "semi-skimmed", "2%"}},
	{"skimmed", []string{"skimmed", "fat free", "0%"}},
}

// brandLabels are retailer and own-brand marketing names stripped during
// normalization; they carry no product identity.
var brandLabels = []string{
	"tesco", "sainsbury's", "aldi", "morrisons", "asda",
	"specially selected", "everyday essentials", "hearty food co",
	"nature's pick", "willow farms",
}

// unitWords are the size/quantity units recognized after a number, e.g.
// "200g", "2 pint", "x4".
var unitWords = []string{
	"g", "kg", "ml", "l", "cl", "pack", "pieces", "count", "x",
	"pint", "litre", "gram", "kilogram", "millilitre",
}

// descriptorWords are non-identity descriptors: stripping "fresh" or "finest"
// never changes which real-world product a name denotes.
var descriptorWords = []string{
	"fresh", "frozen", "chilled", "ambient", "long life", "uht",
	"new", "improved", "extra", "super", "premium", "deluxe", "finest",
	"taste the difference",
}
