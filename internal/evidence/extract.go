package evidence

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Match scoring: an exact whole-fragment match is worth three substring
// matches. Cluster boosts are added on top for the boosted clusters.
const (
	exactMatchScore     = 3.0
	substringMatchScore = 1.0
)

// fragment is one scannable unit of text with its originating source.
type fragment struct {
	text   string
	source Source
}

func foldValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// fragments splits the input into scannable units: OCR lines and tokens,
// then one fragment per label, web entity and localized object.
func fragments(in Input) []fragment {
	var out []fragment
	for _, line := range strings.Split(in.OCRText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, fragment{text: line, source: SourceOCRText})
		// Tokens let single tag words ("GAP", "XL") match exactly even when
		// the line carries other text.
		for _, tok := range strings.Fields(line) {
			if tok != line {
				out = append(out, fragment{text: tok, source: SourceOCRText})
			}
		}
	}
	for _, l := range in.Labels {
		if l.Description != "" {
			out = append(out, fragment{text: l.Description, source: SourceVisionLabel})
		}
	}
	for _, e := range in.WebEntities {
		if e != "" {
			out = append(out, fragment{text: e, source: SourceWebEntity})
		}
	}
	for _, o := range in.Objects {
		if o != "" {
			out = append(out, fragment{text: o, source: SourceLocalizedObject})
		}
	}
	return out
}

// matchScore scores keyword against a folded fragment: exact whole-fragment
// match, substring match, or no match (0).
func matchScore(fragFolded, keyword string) float64 {
	if fragFolded == keyword {
		return exactMatchScore
	}
	if strings.Contains(fragFolded, keyword) {
		return substringMatchScore
	}
	return 0
}

// Extract scans the input against every dictionary table and returns the raw
// candidate list. Empty inputs are valid and yield an empty list. Duplicate
// matches of the same value are kept; fusion merges them.
func Extract(in Input) []Candidate {
	frags := fragments(in)
	var out []Candidate

	for _, f := range frags {
		folded := foldValue(f.text)
		if folded == "" {
			continue
		}

		for _, cluster := range categoryClusters {
			for _, kw := range cluster.keywords {
				score := matchScore(folded, kw)
				if score == 0 {
					continue
				}
				out = append(out, Candidate{
					Attribute: AttrCategory,
					Value:     cluster.category,
					Score:     score + cluster.boost,
					Source:    f.source,
				})
			}
		}

		for canonical, aliases := range brandAliases {
			for _, alias := range aliases {
				score := matchScore(folded, alias)
				if score == 0 {
					continue
				}
				out = append(out, Candidate{
					Attribute: AttrBrand,
					Value:     canonical,
					Score:     score,
					Source:    f.source,
				})
			}
		}

		for _, color := range colorPalette {
			score := matchScore(folded, color)
			if score == 0 {
				continue
			}
			out = append(out, Candidate{
				Attribute: AttrColor,
				Value:     color,
				Score:     score,
				Source:    f.source,
			})
		}

		for condition, phrases := range conditionKeywords {
			for _, phrase := range phrases {
				score := matchScore(folded, phrase)
				if score == 0 {
					continue
				}
				out = append(out, Candidate{
					Attribute: AttrCondition,
					Value:     condition,
					Score:     score,
					Source:    f.source,
				})
			}
		}
	}

	// Size patterns run over the OCR blob so multi-token notations like
	// "W32 L34" survive, and over label text for printed-size labels.
	out = append(out, extractSizes(in.OCRText, SourceOCRText)...)
	for _, l := range in.Labels {
		out = append(out, extractSizes(l.Description, SourceVisionLabel)...)
	}

	log.Debug().
		Int("fragments", len(frags)).
		Int("candidates", len(out)).
		Msg("extracted candidates from evidence")

	return out
}
