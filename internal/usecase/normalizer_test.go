package usecase

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Whole Milk", "whole milk"},
		{"strips retailer label", "Tesco Milk 2 Pint", "milk"},
		{"strips own-brand label", "Everyday Essentials Penne Pasta 500g", "penne pasta"},
		{"strips size token", "Cheddar Cheese 200g", "cheddar cheese"},
		{"strips multiplier", "Baked Beans 4 x", "baked beans"},
		{"strips bare multiplier", "Bananas x5", "bananas"},
		{"descriptor shields a size token", "6 Premium Pack Eggs", "eggs"},
		{"descriptor between number and unit", "2 Fresh Pint", ""},
		{"hyphen shields a size token", "Milk 2-Pint", "milk"},
		{"strips descriptor", "Fresh Semi Skimmed Milk", "semi skimmed milk"},
		{"strips superlative phrase", "Taste The Difference Sourdough", "sourdough"},
		{"punctuation to spaces", "Ben & Jerry's Ice-Cream", "ben jerry s ice cream"},
		{"collapses whitespace", "  White   Bread  ", "white bread"},
		{"empty input", "", ""},
		{"no identity content", "Tesco 200g", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer()

	inputs := []string{
		"Tesco Milk 2 Pint",
		"ASDA Whole Milk 2 Pint",
		"Specially Selected Premium Chorizo 150g",
		"Fresh Chicken Breast Fillets 300g",
		"Nature's Pick Bananas x5",
		"Long Life Semi-Skimmed Milk 1l",
		"6 Premium Pack Eggs",
		"2 Fresh Pint",
		"Milk 2-Pint",
		"",
		"!!!",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	n := NewNormalizer()

	t.Run("drops short tokens", func(t *testing.T) {
		keywords := n.ExtractKeywords("go oj milk")
		for _, kw := range keywords {
			if kw == "go" || kw == "oj" {
				t.Errorf("keywords contain short token %q", kw)
			}
		}
	})

	t.Run("expands synonym group", func(t *testing.T) {
		keywords := n.ExtractKeywords("Cheddar Cheese 200g")
		for _, want := range []string{"cheese", "cheddar", "mozzarella", "brie", "gouda"} {
			if !containsKeyword(keywords, want) {
				t.Errorf("keywords = %v, missing %q", keywords, want)
			}
		}
	})

	t.Run("base tokens come first in input order", func(t *testing.T) {
		keywords := n.ExtractKeywords("white bread rolls")
		if len(keywords) < 3 || keywords[0] != "white" || keywords[1] != "bread" || keywords[2] != "rolls" {
			t.Errorf("keywords = %v, want base tokens white, bread, rolls first", keywords)
		}
	})

	t.Run("no duplicates", func(t *testing.T) {
		keywords := n.ExtractKeywords("milk milk dairy milk")
		seen := make(map[string]bool)
		for _, kw := range keywords {
			if seen[kw] {
				t.Errorf("duplicate keyword %q in %v", kw, keywords)
			}
			seen[kw] = true
		}
	})

	t.Run("empty name yields empty set", func(t *testing.T) {
		if keywords := n.ExtractKeywords("Tesco 200g"); len(keywords) != 0 {
			t.Errorf("keywords = %v, want empty", keywords)
		}
	})

	t.Run("qualifier table is never merged", func(t *testing.T) {
		// The organic qualifier group lists bio and natural; keyword
		// extraction must not pull them in.
		keywords := n.ExtractKeywords("organic milk")
		if !containsKeyword(keywords, "organic") {
			t.Fatalf("keywords = %v, missing organic", keywords)
		}
		if containsKeyword(keywords, "bio") || containsKeyword(keywords, "natural") {
			t.Errorf("keywords = %v, qualifier synonyms must not be merged", keywords)
		}
	})
}

func TestQualifierGroupsAreMetadataOnly(t *testing.T) {
	// Guards the asymmetry between the two tables: every qualifier group key
	// must stay out of the active synonym table.
	active := make(map[string]bool)
	for _, g := range synonymGroups {
		active[g.key] = true
	}
	for _, q := range qualifierGroups {
		if active[q.key] {
			t.Errorf("qualifier group %q duplicated in active synonym table", q.key)
		}
	}
}

func containsKeyword(keywords []string, want string) bool {
	for _, kw := range keywords {
		if kw == want {
			return true
		}
	}
	return false
}
