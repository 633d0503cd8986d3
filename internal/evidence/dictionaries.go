package evidence

// Static dictionary tables. All tables are package-level and immutable after
// init; concurrent read-only access is safe.

// categoryCluster groups keywords that vote for one category. Specificity
// ranks break ties toward the more specific cluster (bottoms over generic
// clothing), and the boost biases ambiguous matches toward that cluster.
type categoryCluster struct {
	category    string
	specificity int
	boost       float64
	keywords    []string
}

var categoryClusters = []categoryCluster{
	{
		category:    "bottoms",
		specificity: 3,
		// Bottom-garment words are often partial tag matches ("jean",
		// "denim"); the boost keeps them ahead of the generic clusters.
		boost: 1.0,
		keywords: []string{
			"jeans", "jean", "denim", "pants", "trousers", "chinos",
			"shorts", "leggings", "joggers", "sweatpants", "skirt",
			"slacks", "levi", "501", "511",
		},
	},
	{
		category:    "tops",
		specificity: 3,
		keywords: []string{
			"shirt", "t-shirt", "tee", "blouse", "sweater", "hoodie",
			"sweatshirt", "cardigan", "polo", "tank top", "jersey",
			"pullover", "flannel",
		},
	},
	{
		category:    "dresses",
		specificity: 3,
		keywords:    []string{"dress", "gown", "romper", "jumpsuit", "sundress"},
	},
	{
		category:    "outerwear",
		specificity: 3,
		keywords: []string{
			"jacket", "coat", "parka", "blazer", "windbreaker", "vest",
			"puffer", "raincoat", "anorak",
		},
	},
	{
		category:    "footwear",
		specificity: 3,
		keywords: []string{
			"shoe", "shoes", "sneaker", "sneakers", "boot", "boots",
			"sandal", "sandals", "heels", "loafers", "trainers", "cleats",
		},
	},
	{
		category:    "accessories",
		specificity: 2,
		keywords: []string{
			"bag", "handbag", "purse", "backpack", "wallet", "belt",
			"scarf", "hat", "cap", "beanie", "sunglasses", "watch",
			"necklace", "bracelet", "ring", "earrings",
		},
	},
	{
		category:    "electronics",
		specificity: 2,
		keywords: []string{
			"phone", "smartphone", "laptop", "tablet", "camera",
			"headphones", "earbuds", "console", "controller", "keyboard",
			"monitor", "speaker", "charger", "gadget",
		},
	},
	{
		category:    "collectibles",
		specificity: 2,
		keywords: []string{
			"vintage", "antique", "collectible", "trading card", "figurine",
			"memorabilia", "vinyl", "record", "stamp", "coin",
		},
	},
	{
		category:    "home",
		specificity: 2,
		keywords: []string{
			"mug", "vase", "lamp", "pillow", "blanket", "cookware",
			"dishes", "furniture", "decor", "candle", "frame",
		},
	},
	{
		category:    "toys",
		specificity: 2,
		keywords: []string{
			"toy", "lego", "doll", "puzzle", "board game", "plush",
			"action figure",
		},
	},
	{
		// Generic clothing words vote for tops-or-bottoms territory without
		// deciding it; lowest specificity so any concrete cluster wins ties.
		category:    "other",
		specificity: 1,
		keywords:    []string{"clothing", "apparel", "garment", "wear", "outfit"},
	},
}

// brandAliases maps canonical brand display names to their surface forms:
// misspellings, abbreviations and sub-brand names seen on tags.
var brandAliases = map[string][]string{
	"Nike":            {"nike", "nikee", "nike inc", "swoosh", "air jordan", "jordan"},
	"Adidas":          {"adidas", "addidas", "adiddas", "adidas originals", "trefoil"},
	"Levi's":          {"levis", "levi's", "levi", "levi strauss", "levi strauss & co"},
	"Gap":             {"gap", "gap inc", "babygap", "gapkids", "gap factory"},
	"Old Navy":        {"old navy", "oldnavy"},
	"H&M":             {"h&m", "h & m", "hm", "hennes"},
	"Zara":            {"zara", "zara basic", "zara man", "zara woman"},
	"Uniqlo":          {"uniqlo", "uni qlo"},
	"Ralph Lauren":    {"ralph lauren", "polo ralph lauren", "polo rl", "rl", "lauren ralph lauren"},
	"Tommy Hilfiger":  {"tommy hilfiger", "tommy", "hilfiger", "tommy jeans"},
	"Calvin Klein":    {"calvin klein", "ck", "calvin klein jeans", "ck jeans"},
	"The North Face":  {"north face", "the north face", "tnf", "northface"},
	"Patagonia":       {"patagonia", "patagonia inc"},
	"Columbia":        {"columbia", "columbia sportswear"},
	"Under Armour":    {"under armour", "under armor", "ua", "underarmour"},
	"Lululemon":       {"lululemon", "lulu lemon", "lululemon athletica"},
	"Carhartt":        {"carhartt", "carhart", "carhartt wip"},
	"Wrangler":        {"wrangler"},
	"Lee":             {"lee jeans"},
	"Dickies":         {"dickies", "dickies workwear"},
	"Champion":        {"champion", "champion reverse weave"},
	"Vans":            {"vans", "vans off the wall"},
	"Converse":        {"converse", "chuck taylor", "all star"},
	"New Balance":     {"new balance", "nb", "newbalance"},
	"Puma":            {"puma"},
	"Reebok":          {"reebok", "rbk"},
	"Dr. Martens":     {"dr. martens", "dr martens", "doc martens", "docs", "airwair"},
	"Timberland":      {"timberland", "timbs"},
	"Coach":           {"coach", "coach new york"},
	"Michael Kors":    {"michael kors", "mk", "mkors"},
	"Kate Spade":      {"kate spade", "kate spade new york"},
	"Banana Republic": {"banana republic", "br"},
	"J.Crew":          {"j.crew", "j crew", "jcrew"},
	"American Eagle":  {"american eagle", "ae", "aeo", "american eagle outfitters"},
	"Hollister":       {"hollister", "hco"},
	"Abercrombie & Fitch": {
		"abercrombie", "abercrombie & fitch", "abercrombie and fitch", "a&f",
	},
	"Forever 21":    {"forever 21", "forever21", "f21"},
	"Anthropologie": {"anthropologie", "anthro"},
	"Free People":   {"free people", "fp"},
	"Madewell":      {"madewell"},
	"Everlane":      {"everlane"},
	"Apple":         {"apple", "iphone", "ipad", "macbook", "airpods"},
	"Samsung":       {"samsung", "galaxy"},
	"Sony":          {"sony", "playstation"},
	"Nintendo":      {"nintendo", "nintendo switch"},
	"Lego":          {"lego", "legos"},
}

// colorPalette is the flat membership list for color detection.
var colorPalette = []string{
	"black", "white", "gray", "grey", "red", "blue", "navy", "green",
	"olive", "yellow", "orange", "purple", "pink", "brown", "tan",
	"beige", "cream", "ivory", "khaki", "maroon", "burgundy", "teal",
	"turquoise", "gold", "silver", "charcoal", "lavender", "mint",
	"coral", "rust", "mustard", "denim",
}

// conditionKeywords maps tag and description phrases to condition values.
var conditionKeywords = map[string][]string{
	"new":      {"new with tags", "nwt", "brand new", "bnib", "unopened", "sealed", "deadstock"},
	"like_new": {"like new", "nwot", "new without tags", "barely worn", "worn once", "mint condition"},
	"good":     {"good condition", "gently used", "lightly worn", "great condition", "excellent condition"},
	"fair":     {"fair condition", "some wear", "visible wear", "used condition", "worn"},
	"poor":     {"poor condition", "heavily worn", "damaged", "stained", "torn", "for parts", "distressed"},
}

// CanonicalBrand maps a surface form to its canonical display name.
// Returns "" when the form is unknown.
func CanonicalBrand(surface string) string {
	folded := foldValue(surface)
	for canonical, aliases := range brandAliases {
		if foldValue(canonical) == folded {
			return canonical
		}
		for _, a := range aliases {
			if a == folded {
				return canonical
			}
		}
	}
	return ""
}
