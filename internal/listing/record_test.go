package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyItemType(t *testing.T) {
	tests := map[string]struct {
		itemType string
		want     GarmentClass
	}{
		"jeans":             {itemType: "Jeans", want: GarmentBottom},
		"jean shorts":       {itemType: "Jean Shorts", want: GarmentBottom},
		"t-shirt":           {itemType: "Men's T-Shirt", want: GarmentTop},
		"hoodie":            {itemType: "Hoodie", want: GarmentTop},
		"dress":             {itemType: "Summer Dress", want: GarmentDress},
		"sneakers":          {itemType: "Sneakers", want: GarmentFootwear},
		"non-garment":       {itemType: "Game Console", want: GarmentNone},
		"empty":             {itemType: "", want: GarmentNone},
		"skirt over blouse": {itemType: "Skirt", want: GarmentBottom},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyItemType(tt.itemType))
		})
	}
}

func TestAllowedSpecificKey(t *testing.T) {
	// Bottoms must never carry sleeve/neckline keys, tops never waist keys.
	assert.False(t, AllowedSpecificKey(GarmentBottom, "Sleeve Length"))
	assert.False(t, AllowedSpecificKey(GarmentBottom, "Neckline"))
	assert.True(t, AllowedSpecificKey(GarmentBottom, "Rise"))
	assert.True(t, AllowedSpecificKey(GarmentBottom, "Inseam"))

	assert.False(t, AllowedSpecificKey(GarmentTop, "Rise"))
	assert.False(t, AllowedSpecificKey(GarmentTop, "Waist Size"))
	assert.True(t, AllowedSpecificKey(GarmentTop, "Sleeve Length"))

	// Non-garments carry whatever they like.
	assert.True(t, AllowedSpecificKey(GarmentNone, "Sleeve Length"))
	assert.True(t, AllowedSpecificKey(GarmentNone, "Rise"))
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", TruncateTitle("short"))

	long := strings.Repeat("ab ", 40)
	got := TruncateTitle(long)
	assert.LessOrEqual(t, len([]rune(got)), MaxTitleLen)
	assert.NotEqual(t, " ", got[len(got)-1:])
}

func TestEnums(t *testing.T) {
	assert.True(t, ValidCategory("bottoms"))
	assert.True(t, ValidCategory("other"))
	assert.False(t, ValidCategory("denim"))
	assert.False(t, ValidCategory(""))

	assert.True(t, ValidCondition("like_new"))
	assert.False(t, ValidCondition("excellent"))
	assert.False(t, ValidCondition(""))
}
