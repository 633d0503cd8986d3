package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidateValues(cands []Candidate, attr Attribute) []string {
	var out []string
	for _, c := range cands {
		if c.Attribute == attr {
			out = append(out, c.Value)
		}
	}
	return out
}

func TestExtractEmptyInput(t *testing.T) {
	cands := Extract(Input{})
	assert.Empty(t, cands)
}

func TestExtractLevisTag(t *testing.T) {
	cands := Extract(Input{OCRText: "LEVI'S 501 W32 L34"})

	assert.Contains(t, candidateValues(cands, AttrBrand), "Levi's")
	assert.Contains(t, candidateValues(cands, AttrCategory), "bottoms")
	assert.Contains(t, candidateValues(cands, AttrSize), "32x34")
}

func TestExtractExactMatchScoresHigherThanSubstring(t *testing.T) {
	maxScore := func(in Input) float64 {
		var max float64
		for _, c := range Extract(in) {
			if c.Attribute == AttrCategory && c.Value == "bottoms" && c.Score > max {
				max = c.Score
			}
		}
		return max
	}

	exact := maxScore(Input{Labels: []Label{{Description: "jeans", Score: 0.9}}})
	substring := maxScore(Input{Labels: []Label{{Description: "faded denim fabric", Score: 0.9}}})
	assert.Greater(t, exact, substring)
}

func TestExtractSources(t *testing.T) {
	tests := map[string]struct {
		input  Input
		attr   Attribute
		value  string
		source Source
	}{
		"color from ocr": {
			input:  Input{OCRText: "navy"},
			attr:   AttrColor,
			value:  "navy",
			source: SourceOCRText,
		},
		"category from label": {
			input:  Input{Labels: []Label{{Description: "Sneakers", Score: 0.8}}},
			attr:   AttrCategory,
			value:  "footwear",
			source: SourceVisionLabel,
		},
		"brand from web entity": {
			input:  Input{WebEntities: []string{"Nike Air Max"}},
			attr:   AttrBrand,
			value:  "Nike",
			source: SourceWebEntity,
		},
		"category from localized object": {
			input:  Input{Objects: []string{"Jacket"}},
			attr:   AttrCategory,
			value:  "outerwear",
			source: SourceLocalizedObject,
		},
		"condition from ocr phrase": {
			input:  Input{OCRText: "new with tags"},
			attr:   AttrCondition,
			value:  "new",
			source: SourceOCRText,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cands := Extract(tt.input)
			found := false
			for _, c := range cands {
				if c.Attribute == tt.attr && c.Value == tt.value && c.Source == tt.source {
					found = true
					break
				}
			}
			assert.True(t, found, "expected %s candidate %q from %s in %+v", tt.attr, tt.value, tt.source, cands)
		})
	}
}

func TestExtractSizePatterns(t *testing.T) {
	tests := map[string]struct {
		text string
		want string
	}{
		"waist length tag":   {text: "W32 L34", want: "32x34"},
		"waist x length":     {text: "30x32", want: "30x32"},
		"letter size":        {text: "Size: XL", want: "XL"},
		"one size":           {text: "ONE SIZE fits all", want: "One Size"},
		"bra size":           {text: "34B", want: "34B"},
		"shoe size":          {text: "US 10.5", want: "10.5"},
		"ring size":          {text: "ring size 7", want: "7"},
		"numeric dress size": {text: "size 12", want: "12"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cands := extractSizes(tt.text, SourceOCRText)
			assert.Contains(t, candidateValues(cands, AttrSize), tt.want)
		})
	}
}

func TestExtractKeepsDuplicates(t *testing.T) {
	// The same literal value matched twice stays twice; fusion merges.
	cands := Extract(Input{
		OCRText: "GAP",
		Labels:  []Label{{Description: "Gap", Score: 0.9}},
	})

	brands := candidateValues(cands, AttrBrand)
	count := 0
	for _, b := range brands {
		if b == "Gap" {
			count++
		}
	}
	assert.GreaterOrEqual(t, count, 2)
}
