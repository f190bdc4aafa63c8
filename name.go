package intake

import (
	"regexp"
	"strings"
	"unicode"
)

// nameSegmentRE splits normalized text into separator-delimited segments.
var nameSegmentRE = regexp.MustCompile(`[|,;:-]`)

// labelWords are field labels that must never be mistaken for part of a
// name, regardless of capitalization.
var labelWords = map[string]struct{}{
	"room": {}, "rm": {}, "apt": {}, "apartment": {}, "flat": {},
	"unit": {}, "block": {}, "building": {}, "number": {}, "no": {},
	"phone": {}, "cell": {}, "tel": {}, "mobile": {}, "contact": {},
	"name": {}, "guest": {},
}

// extractName applies the capitalization heuristic to the text left after
// phone and room removal. The first separator-delimited segment is tried
// first, since most inputs lead with the name. When it yields nothing, the whole
// remaining text is rescanned for the first adjacent pair of qualifying
// tokens, which recovers names displaced behind a leading room or phone
// fragment without relaxing the heuristic itself.
func (p *Parser) extractName(text string) (string, bool) {
	primary := text
	for _, seg := range nameSegmentRE.Split(text, -1) {
		if s := strings.TrimSpace(seg); s != "" {
			primary = s
			break
		}
	}

	toks := p.nameTokens(primary)
	if len(toks) > 0 && p.isNameToken(toks[0]) {
		if len(toks) > 1 && p.isNameToken(toks[1]) {
			return toks[0] + " " + toks[1], true
		}
		return toks[0], true
	}

	all := p.nameTokens(text)
	for i := 0; i+1 < len(all); i++ {
		if p.isNameToken(all[i]) && p.isNameToken(all[i+1]) {
			return all[i] + " " + all[i+1], true
		}
	}
	return "", false
}

// nameTokens whitespace-tokenizes a region, trims stray edge punctuation,
// and drops label words and any token containing a digit.
func (p *Parser) nameTokens(region string) []string {
	var out []string
	for _, tok := range strings.Fields(region) {
		tok = strings.Trim(tok, ".-")
		if tok == "" {
			continue
		}
		if _, isLabel := labelWords[strings.ToLower(tok)]; isLabel {
			continue
		}
		if strings.ContainsAny(tok, "0123456789") {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// isNameToken reports whether a token looks like one word of a person's
// name: an uppercase Latin letter followed only by letters, apostrophes, or
// hyphens, at least MinNameTokenLength runes long.
func (p *Parser) isNameToken(tok string) bool {
	runes := []rune(tok)
	if len(runes) < p.cfg.MinNameTokenLength {
		return false
	}
	if runes[0] < 'A' || runes[0] > 'Z' {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}
