package catalog

import (
	"regexp"
	"strings"

	"review_collector/internal/domain"
)

const minModelLength = 3

type brandPatterns struct {
	brand    string
	latin    *regexp.Regexp
	japanese *regexp.Regexp
}

var patterns = compilePatterns()

func compilePatterns() []brandPatterns {
	out := make([]brandPatterns, 0, len(Brands))
	for _, b := range Brands {
		out = append(out, brandPatterns{
			brand: b.Name,
			// "Nike Pegasus 41", "New Balance FuelCell Rebel"
			latin: regexp.MustCompile(`\b` + regexp.QuoteMeta(b.Name) + `\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)\s*(\d+)?`),
			// "ナイキ ペガサス 41"
			japanese: regexp.MustCompile(regexp.QuoteMeta(b.Japanese) + `\s*([ァ-ヶー]+(?:\s*[ァ-ヶー]+)?)\s*(\d+)?`),
		})
	}
	return out
}

// ExtractShoes finds brand and model mentions in text. Known models are
// matched directly as well. Results are unique by case-insensitive brand
// and model, in discovery order.
func ExtractShoes(text, source, sourceURL string) []domain.ShoeRef {
	var (
		refs  []domain.ShoeRef
		seen  = make(map[string]bool)
		lower = strings.ToLower(text)
	)

	add := func(brand, model string) {
		key := strings.ToLower(brand) + "\x00" + strings.ToLower(model)
		if seen[key] {
			return
		}
		seen[key] = true
		refs = append(refs, domain.ShoeRef{
			Brand:     brand,
			ModelName: model,
			Category:  domain.DefaultCategory,
			Source:    source,
			SourceURL: sourceURL,
		})
	}

	for _, p := range patterns {
		if !strings.Contains(lower, strings.ToLower(p.brand)) && !strings.Contains(text, JapaneseBrand(p.brand)) {
			continue
		}
		for _, re := range []*regexp.Regexp{p.latin, p.japanese} {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				model := strings.TrimSpace(m[1])
				if len([]rune(model)) < minModelLength {
					continue
				}
				if m[2] != "" {
					model += " " + m[2]
				}
				add(p.brand, model)
			}
		}
	}

	for _, m := range PopularModels {
		if strings.Contains(lower, strings.ToLower(m.Brand)) && strings.Contains(lower, strings.ToLower(m.Name)) {
			add(m.Brand, m.Name)
		}
	}

	return refs
}
