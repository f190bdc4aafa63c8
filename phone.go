package intake

import (
	"fmt"
	"regexp"
	"strings"
)

// phonePattern is one entry in the ordered shape-pattern table. Patterns are
// tried in table order: a more specific pattern that matches anywhere in the
// line beats a generic match that appears earlier in the text.
type phonePattern struct {
	name string
	re   *regexp.Regexp
}

// genericPhoneRE is the last-resort shape: a 9–17 character run of digits and
// common phone separators, starting and ending on a digit. Bounded on both
// sides, so it cannot backtrack pathologically.
var genericPhoneRE = regexp.MustCompile(`\+?\d[\d\s().-]{7,15}\d`)

// compilePhonePatterns builds the shape table for the configured region,
// most specific first.
func compilePhonePatterns(cfg Config) ([]phonePattern, error) {
	cc := regexp.QuoteMeta(strings.TrimPrefix(cfg.CountryCode, "+"))
	defs := []struct{ name, expr string }{
		{"international", fmt.Sprintf(`\+%s(?:[\s.-]?\d){%d}\b`, cc, cfg.NationalNumberLength)},
	}
	if cfg.TrunkPrefix != "" {
		defs = append(defs, struct{ name, expr string }{
			"national",
			fmt.Sprintf(`\b%s(?:[\s.-]?\d){%d}\b`, regexp.QuoteMeta(cfg.TrunkPrefix), cfg.NationalNumberLength),
		})
	}

	patterns := make([]phonePattern, 0, len(defs)+1)
	for _, def := range defs {
		re, err := regexp.Compile(def.expr)
		if err != nil {
			return nil, fmt.Errorf("compiling %s phone pattern: %w", def.name, err)
		}
		patterns = append(patterns, phonePattern{name: def.name, re: re})
	}
	patterns = append(patterns, phonePattern{name: "generic", re: genericPhoneRE})
	return patterns, nil
}

// findPhoneCandidates returns every shape-pattern match in the text, in
// pattern-table order. The first entry is the match the line parser consumes;
// the full list keeps phone fragments out of the room scan.
func (p *Parser) findPhoneCandidates(text string) []string {
	var out []string
	for _, pat := range p.phonePatterns {
		out = append(out, pat.re.FindAllString(text, -1)...)
	}
	return out
}

// normalizePhone reduces a raw shape match to a dialable form: leading '+'
// kept as-is, a trunk-prefixed national number rewritten with the country
// code, a bare national-length digit run prefixed with the country code.
// Matches fitting none of those shapes come back stripped but unprefixed.
func (p *Parser) normalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	trunk := p.cfg.TrunkPrefix
	switch {
	case strings.HasPrefix(cleaned, "+"):
		return cleaned
	case trunk != "" && strings.HasPrefix(cleaned, trunk) &&
		len(cleaned) == len(trunk)+p.cfg.NationalNumberLength:
		return p.cfg.CountryCode + cleaned[len(trunk):]
	case len(cleaned) == p.cfg.NationalNumberLength:
		return p.cfg.CountryCode + cleaned
	default:
		return cleaned
	}
}
