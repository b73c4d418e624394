// Package catalog holds the predefined shoe list and discovers trending
// models from web search results.
package catalog

import "review_collector/internal/domain"

type Model struct {
	Brand string
	Name  string
}

// Brands are the brands recognized in free text, with their katakana names.
var Brands = []struct {
	Name     string
	Japanese string
}{
	{"Nike", "ナイキ"},
	{"Adidas", "アディダス"},
	{"ASICS", "アシックス"},
	{"New Balance", "ニューバランス"},
	{"Hoka", "ホカ"},
	{"On", "オン"},
	{"Saucony", "サッカニー"},
	{"Brooks", "ブルックス"},
	{"Mizuno", "ミズノ"},
	{"Puma", "プーマ"},
	{"Under Armour", "アンダーアーマー"},
	{"Reebok", "リーボック"},
}

var PopularModels = []Model{
	{"Nike", "Pegasus 41"},
	{"Nike", "Vaporfly 3"},
	{"Nike", "Alphafly 3"},
	{"Nike", "Vomero 18"},
	{"Nike", "Invincible 3"},
	{"Adidas", "Adizero Adios Pro 3"},
	{"Adidas", "Adizero Boston 12"},
	{"Adidas", "Ultraboost Light"},
	{"ASICS", "Gel-Kayano 30"},
	{"ASICS", "Gel-Nimbus 26"},
	{"ASICS", "Novablast 4"},
	{"ASICS", "Metaspeed Sky+"},
	{"ASICS", "Superblast"},
	{"New Balance", "FuelCell SC Elite v4"},
	{"New Balance", "Fresh Foam 1080v13"},
	{"New Balance", "FuelCell Rebel v4"},
	{"Hoka", "Clifton 9"},
	{"Hoka", "Bondi 8"},
	{"Hoka", "Mach 6"},
	{"Hoka", "Rocket X 2"},
	{"On", "Cloudmonster"},
	{"On", "Cloudsurfer"},
	{"On", "Cloudstratus"},
	{"Saucony", "Endorphin Pro 4"},
	{"Saucony", "Kinvara 14"},
	{"Brooks", "Ghost 16"},
	{"Brooks", "Glycerin 21"},
	{"Mizuno", "Wave Rebellion Pro 2"},
	{"Mizuno", "Wave Rider 27"},
}

// JapaneseBrand returns the katakana brand name, or brand itself when
// unknown.
func JapaneseBrand(brand string) string {
	for _, b := range Brands {
		if b.Name == brand {
			return b.Japanese
		}
	}
	return brand
}

// Predefined returns PopularModels as refs ready for EnsureShoe.
func Predefined() []domain.ShoeRef {
	refs := make([]domain.ShoeRef, 0, len(PopularModels))
	for _, m := range PopularModels {
		refs = append(refs, domain.ShoeRef{
			Brand:     m.Brand,
			ModelName: m.Name,
			Category:  domain.DefaultCategory,
			Source:    "predefined",
		})
	}
	return refs
}
