package match

import "github.com/samber/lo"

// Synonyms maps a normalized phrase to the other members of its
// interchangeability group. Groups are symmetric: if A lists B, looking up
// B yields A. The table is static configuration, built once and read-only
// afterwards.
type Synonyms struct {
	groups map[string][]string
}

// NewSynonyms builds a symmetric synonym table from phrase groups. Phrases
// are normalized on the way in; empty phrases and single-member groups are
// dropped. Overlapping groups are merged per phrase, not transitively.
func NewSynonyms(groups ...[]string) *Synonyms {
	table := make(map[string][]string)
	for _, group := range groups {
		normalized := lo.Uniq(lo.FilterMap(group, func(phrase string, _ int) (string, bool) {
			n := Normalize(phrase)
			return n, n != ""
		}))
		if len(normalized) < 2 {
			continue
		}
		for _, phrase := range normalized {
			for _, other := range normalized {
				if other == phrase {
					continue
				}
				if !lo.Contains(table[phrase], other) {
					table[phrase] = append(table[phrase], other)
				}
			}
		}
	}
	return &Synonyms{groups: table}
}

// SynonymsOf returns the members of phrase's group excluding the phrase
// itself, or nil when the phrase belongs to no group. The phrase is
// normalized before lookup.
func (s *Synonyms) SynonymsOf(phrase string) []string {
	if s == nil {
		return nil
	}
	return s.groups[Normalize(phrase)]
}

// DefaultSynonyms is the built-in ingredient table: spellings and word
// orders that name the same pantry item in supplier catalogs.
func DefaultSynonyms() *Synonyms {
	return NewSynonyms(
		[]string{"zucchini", "courgette", "baby marrow"},
		[]string{"soy sauce", "sauce soy"},
		[]string{"vegetable oil", "oil vegetable", "sunflower oil"},
		[]string{"shrimp", "shrimps", "tiger prawns"},
		[]string{"cheese", "hard cheese"},
		[]string{"tomato", "tomatoes"},
		[]string{"bell pepper", "pepper bell", "sweet pepper"},
	)
}
