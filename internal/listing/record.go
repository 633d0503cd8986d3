// Package listing defines the canonical listing record produced by the
// extraction pipeline, together with the closed enumerations and the
// marketplace item-specifics rules that depend on item type.
package listing

import "strings"

// MaxTitleLen is the hard cap on listing titles, in runes.
const MaxTitleLen = 80

// Category is the closed set of top-level listing categories.
type Category string

const (
	CategoryTops         Category = "tops"
	CategoryBottoms      Category = "bottoms"
	CategoryDresses      Category = "dresses"
	CategoryOuterwear    Category = "outerwear"
	CategoryFootwear     Category = "footwear"
	CategoryAccessories  Category = "accessories"
	CategoryElectronics  Category = "electronics"
	CategoryCollectibles Category = "collectibles"
	CategoryHome         Category = "home"
	CategoryToys         Category = "toys"
	CategoryOther        Category = "other"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryTops, CategoryBottoms, CategoryDresses, CategoryOuterwear,
	CategoryFootwear, CategoryAccessories, CategoryElectronics,
	CategoryCollectibles, CategoryHome, CategoryToys, CategoryOther,
}

// ValidCategory reports whether s is a member of the category enumeration.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Condition is the closed set of item conditions.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// Conditions lists every valid condition value.
var Conditions = []Condition{
	ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor,
}

// ValidCondition reports whether s is a member of the condition enumeration.
func ValidCondition(s string) bool {
	for _, c := range Conditions {
		if string(c) == s {
			return true
		}
	}
	return false
}

// GarmentClass partitions item types for specifics and prompt-schema selection.
// Bottoms get waist/inseam/rise fields, tops get sleeve/neckline fields; the
// two sets are mutually exclusive.
type GarmentClass int

const (
	GarmentNone GarmentClass = iota
	GarmentTop
	GarmentBottom
	GarmentDress
	GarmentFootwear
)

var bottomTypeWords = []string{
	"pants", "jeans", "trousers", "shorts", "chinos", "leggings",
	"joggers", "sweatpants", "skirt", "slacks",
}

var topTypeWords = []string{
	"shirt", "t-shirt", "tee", "blouse", "top", "sweater", "hoodie",
	"sweatshirt", "cardigan", "polo", "tank", "jersey", "pullover",
}

var dressTypeWords = []string{"dress", "gown", "romper", "jumpsuit"}

var footwearTypeWords = []string{
	"shoe", "shoes", "sneaker", "sneakers", "boot", "boots", "sandal",
	"sandals", "heels", "loafers", "trainers",
}

// ClassifyItemType maps a free-form item type string to a garment class.
// Matching is case-insensitive on whole words and substrings, bottoms first
// so that "jean shorts" lands on the bottom cluster.
func ClassifyItemType(itemType string) GarmentClass {
	t := strings.ToLower(strings.TrimSpace(itemType))
	if t == "" {
		return GarmentNone
	}
	for _, w := range bottomTypeWords {
		if strings.Contains(t, w) {
			return GarmentBottom
		}
	}
	for _, w := range dressTypeWords {
		if strings.Contains(t, w) {
			return GarmentDress
		}
	}
	for _, w := range topTypeWords {
		if strings.Contains(t, w) {
			return GarmentTop
		}
	}
	for _, w := range footwearTypeWords {
		if strings.Contains(t, w) {
			return GarmentFootwear
		}
	}
	return GarmentNone
}

// Record is the canonical pipeline output. It is created fresh per request,
// enriched through the stages and not mutated after being returned.
type Record struct {
	Title          string            `json:"title"`
	ItemType       string            `json:"item_type"`
	Condition      string            `json:"condition"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand,omitempty"`
	Size           string            `json:"size,omitempty"`
	Color          string            `json:"color,omitempty"`
	Material       string            `json:"material,omitempty"`
	Pattern        string            `json:"pattern,omitempty"`
	Style          []string          `json:"style,omitempty"`
	Features       []string          `json:"features,omitempty"`
	ItemSpecifics  map[string]string `json:"item_specifics,omitempty"`
	SuggestedPrice float64           `json:"suggested_price,omitempty"`
	Confidence     float64           `json:"confidence"`
}

// TruncateTitle enforces the title length cap in runes.
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= MaxTitleLen {
		return title
	}
	return strings.TrimSpace(string(runes[:MaxTitleLen]))
}

// AccuracyMetrics is the per-field confidence breakdown returned alongside the
// enhanced record. Overall is the fixed-weight average of the four sub-scores.
type AccuracyMetrics struct {
	BrandConfidence float64 `json:"brand_confidence"`
	SizeConfidence  float64 `json:"size_confidence"`
	TitleQuality    float64 `json:"title_quality"`
	OCRConfidence   float64 `json:"ocr_confidence"`
	Overall         float64 `json:"overall"`
}

// sleeveKeys and waistKeys are the mutually exclusive specifics sets.
var sleeveKeys = []string{"Sleeve Length", "Neckline"}
var waistKeys = []string{"Rise", "Inseam", "Waist Size"}

// AllowedSpecificKey reports whether key may appear in the item-specifics map
// for the given garment class. Bottom garments never carry sleeve or neckline
// keys, tops never carry waist, inseam or rise keys.
func AllowedSpecificKey(class GarmentClass, key string) bool {
	switch class {
	case GarmentBottom:
		for _, k := range sleeveKeys {
			if strings.EqualFold(k, key) {
				return false
			}
		}
	case GarmentTop, GarmentDress:
		for _, k := range waistKeys {
			if strings.EqualFold(k, key) {
				return false
			}
		}
	}
	return true
}
