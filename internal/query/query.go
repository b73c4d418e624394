// Package query builds the provider-specific search strings for a shoe.
package query

import "strings"

const (
	suffixReview      = "レビュー"
	suffixTriedOn     = "履いてみた"
	suffixReviewLatin = "review"
)

// Profile is a provider's fixed list of query variants. An empty suffix
// means the bare "brand model" string.
type Profile struct {
	Name     string
	Suffixes []string
	// SplitBudget halves the per-variant result budget, since the variants
	// overlap heavily for this provider.
	SplitBudget bool
}

var (
	Video = Profile{
		Name:        "video",
		Suffixes:    []string{suffixReview, suffixReviewLatin, suffixTriedOn},
		SplitBudget: true,
	}
	Social = Profile{
		Name:     "social",
		Suffixes: []string{suffixReview, suffixReviewLatin},
	}
	Microblog = Profile{
		Name:        "microblog",
		Suffixes:    []string{suffixReview, suffixTriedOn, suffixReviewLatin},
		SplitBudget: true,
	}
	Community = Profile{
		Name:     "community",
		Suffixes: []string{"", suffixReviewLatin},
	}
)

// Formulate returns the ordered query variants for brand and model.
func (p Profile) Formulate(brand, model string) []string {
	base := strings.TrimSpace(strings.Join(strings.Fields(brand+" "+model), " "))
	queries := make([]string, 0, len(p.Suffixes))
	for _, suffix := range p.Suffixes {
		if suffix == "" {
			queries = append(queries, base)
			continue
		}
		queries = append(queries, base+" "+suffix)
	}
	return queries
}

// PerQuery returns the result budget for a single variant.
func (p Profile) PerQuery(maxResults int) int {
	if !p.SplitBudget {
		return maxResults
	}
	n := maxResults / 2
	if n < 1 {
		n = 1
	}
	return n
}
