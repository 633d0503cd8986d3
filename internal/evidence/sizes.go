package evidence

import (
	"fmt"
	"regexp"
	"strings"
)

// Size detection runs a family of structural patterns independently per size
// domain and collects every match rather than stopping at the first one.
// Capture groups are normalized into a single tag-style value.

// sizePattern is one compiled pattern with a normalizer for its matches.
type sizePattern struct {
	domain    string
	re        *regexp.Regexp
	normalize func(m []string) string
}

var sizePatterns = []sizePattern{
	// Pants: waist x length pairs in tag notation (W32 L34, 32x34, 32/34).
	{
		domain: "pants",
		re:     regexp.MustCompile(`(?i)\bW\s?(\d{2})\s*[xX/ ]?\s*L\s?(\d{2})\b`),
		normalize: func(m []string) string {
			return fmt.Sprintf("%sx%s", m[1], m[2])
		},
	},
	{
		domain: "pants",
		re:     regexp.MustCompile(`\b(\d{2})\s*[xX/]\s*(\d{2})\b`),
		normalize: func(m []string) string {
			return fmt.Sprintf("%sx%s", m[1], m[2])
		},
	},
	// Apparel: letter sizes, optionally doubled or tripled.
	{
		domain: "apparel",
		re:     regexp.MustCompile(`(?i)\b(XXXL|XXL|XL|XS|S|M|L)\b`),
		normalize: func(m []string) string {
			return strings.ToUpper(m[1])
		},
	},
	// Apparel: tag codes after an explicit size marker, letter or numeric.
	{
		domain: "apparel",
		re:     regexp.MustCompile(`(?i)\bsize[:\s]+(XXXL|XXL|XL|XS|S|M|L|\d{1,2})\b`),
		normalize: func(m []string) string {
			return strings.ToUpper(m[1])
		},
	},
	// Footwear: US/EU shoe sizes with optional half steps.
	{
		domain: "shoes",
		re:     regexp.MustCompile(`(?i)\b(?:US|EU|UK)\s?(\d{1,2}(?:\.5)?)\b`),
		normalize: func(m []string) string {
			return m[1]
		},
	},
	// Bra: band + cup codes (34B, 36DD).
	{
		domain: "bra",
		re:     regexp.MustCompile(`(?i)\b(2[8-9]|3[0-9]|4[0-6])\s?(AA|A|B|C|D|DD|DDD|E|F|G)\b`),
		normalize: func(m []string) string {
			return m[1] + strings.ToUpper(m[2])
		},
	},
	// Ring: small numeric sizes with an explicit marker.
	{
		domain: "ring",
		re:     regexp.MustCompile(`(?i)\bring\s+size\s+(\d{1,2}(?:\.5)?)\b`),
		normalize: func(m []string) string {
			return m[1]
		},
	},
	// One-size markers.
	{
		domain: "apparel",
		re:     regexp.MustCompile(`(?i)\b(one\s?size|OSFA|OS|free\s?size)\b`),
		normalize: func(m []string) string {
			return "One Size"
		},
	},
}

// extractSizes collects every size match in text across all domains.
// The more structural patterns run first so a waist-by-length tag is not
// swallowed as a bare letter size.
func extractSizes(text string, source Source) []Candidate {
	var out []Candidate
	for _, p := range sizePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			value := p.normalize(m)
			score := 1.0
			if p.domain == "pants" || p.domain == "bra" {
				// Structured tag notations are near-certain size evidence.
				score = 3.0
			}
			out = append(out, Candidate{
				Attribute: AttrSize,
				Value:     value,
				Score:     score,
				Source:    source,
			})
		}
	}
	return out
}
