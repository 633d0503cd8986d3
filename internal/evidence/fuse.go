package evidence

import (
	"sort"

	"github.com/rs/zerolog/log"
)

const (
	// brandScoreFloor is the minimum accumulated weighted score before a
	// brand is accepted. Below it the attribute stays null rather than
	// guessed.
	brandScoreFloor = 2.0

	// confidenceScale maps an accumulated weighted score to [0,1]; a score
	// of 6 (two exact OCR matches) saturates confidence.
	confidenceScale = 6.0
)

// valueTotal accumulates the weighted evidence for one distinct value.
type valueTotal struct {
	display string
	total   float64
	best    Source // highest-priority contributing source
	rank    int    // category specificity, 0 otherwise
}

// Fuse merges candidates across evidence sources into one Fused per
// attribute. Scores are weighted by source priority and summed per distinct
// value; the highest total wins, with deterministic tie-breaking. Absence of
// evidence yields no entry, never an error.
func Fuse(candidates []Candidate) Set {
	grouped := make(map[Attribute]map[string]*valueTotal)

	for _, c := range candidates {
		key := foldValue(c.Value)
		if key == "" {
			continue
		}
		byValue, ok := grouped[c.Attribute]
		if !ok {
			byValue = make(map[string]*valueTotal)
			grouped[c.Attribute] = byValue
		}
		vt, ok := byValue[key]
		if !ok {
			vt = &valueTotal{display: displayValue(c), rank: categoryRank(c.Value)}
			byValue[key] = vt
		}
		vt.total += c.Score * c.Source.Weight()
		if c.Source.Weight() > vt.best.Weight() || vt.best == "" {
			vt.best = c.Source
		}
	}

	out := make(Set, len(grouped))
	for attr, byValue := range grouped {
		winner := pickWinner(attr, byValue)
		if winner == nil {
			continue
		}
		confidence := winner.total / confidenceScale
		if confidence > 1 {
			confidence = 1
		}
		out[attr] = Fused{
			Attribute:  attr,
			Value:      winner.display,
			Confidence: confidence,
			Source:     winner.best,
		}
		log.Debug().
			Str("attribute", string(attr)).
			Str("value", winner.display).
			Float64("score", winner.total).
			Str("source", string(winner.best)).
			Msg("fused attribute")
	}
	return out
}

// pickWinner selects the best value for an attribute. Ordering is total score
// descending, then category specificity descending, then value ascending so
// re-running fusion on the same candidates is deterministic.
func pickWinner(attr Attribute, byValue map[string]*valueTotal) *valueTotal {
	keys := make([]string, 0, len(byValue))
	for k := range byValue {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := byValue[keys[i]], byValue[keys[j]]
		if a.total != b.total {
			return a.total > b.total
		}
		if attr == AttrCategory && a.rank != b.rank {
			return a.rank > b.rank
		}
		return keys[i] < keys[j]
	})

	winner := byValue[keys[0]]
	if attr == AttrBrand && winner.total < brandScoreFloor {
		return nil
	}
	return winner
}

// displayValue picks the rendered form for a candidate value. Brand values
// are already canonical display names from the alias table; everything else
// is folded to lowercase.
func displayValue(c Candidate) string {
	if c.Attribute == AttrBrand {
		return c.Value
	}
	return foldValue(c.Value)
}

// categoryRank returns the specificity rank for a category value, 0 for
// values outside the cluster table.
func categoryRank(value string) int {
	folded := foldValue(value)
	for _, cluster := range categoryClusters {
		if cluster.category == folded {
			return cluster.specificity
		}
	}
	return 0
}
