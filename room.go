package intake

import (
	"fmt"
	"regexp"
	"strings"
)

// roomKeywords are the label words that explicitly announce a room or unit
// identifier. The '#' sigil is handled as its own alternative in the keyword
// pattern because it carries no word boundary.
const roomKeywords = `room|rm|apt|apartment|flat|unit|block|building|number|no`

func compileRoomPatterns(cfg Config) (keyword, token *regexp.Regexp, err error) {
	keywordExpr := fmt.Sprintf(`(?i)(?:\b(?:%s)\b[\s.:#-]*|#\s*)([A-Za-z0-9]{1,%d})\b`,
		roomKeywords, cfg.RoomTokenMaxLength)
	keyword, err = regexp.Compile(keywordExpr)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling room keyword pattern: %w", err)
	}

	tokenExpr := fmt.Sprintf(`#?[A-Za-z]?\d{1,%d}[A-Za-z]?`, cfg.RoomTokenMaxLength)
	token, err = regexp.Compile(tokenExpr)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling room token pattern: %w", err)
	}
	return keyword, token, nil
}

// extractRoom recovers a room identifier from the text left after phone
// removal. An explicit label ("Room 814", "#22") wins outright; otherwise
// the remaining short alphanumeric tokens are scanned for something
// room-shaped that is not a stray phone fragment. matched is the full
// substring to remove from the working text.
func (p *Parser) extractRoom(text string, phoneMatches []string) (room, matched string, ok bool) {
	if m := p.roomKeywordRE.FindStringSubmatchIndex(text); m != nil {
		return text[m[2]:m[3]], text[m[0]:m[1]], true
	}
	return p.scanRoomToken(text, phoneMatches)
}

// scanRoomToken is the fallback path: tokens shaped like an optional '#',
// an optional letter, one to RoomTokenMaxLength digits, and an optional
// trailing letter. Candidates whose digit content reaches
// PhoneFragmentDigitThreshold, or whose text occurs inside a raw phone
// match, are rejected as phone debris.
func (p *Parser) scanRoomToken(text string, phoneMatches []string) (room, matched string, ok bool) {
	for _, loc := range p.roomTokenRE.FindAllStringIndex(text, -1) {
		tok := text[loc[0]:loc[1]]
		if !isolated(text, loc[0], loc[1]) {
			continue
		}
		candidate := strings.TrimPrefix(tok, "#")
		if digitCount(candidate) >= p.cfg.PhoneFragmentDigitThreshold {
			continue
		}
		if insideAny(candidate, phoneMatches) {
			continue
		}
		return candidate, tok, true
	}
	return "", "", false
}

// isolated reports whether text[start:end] sits on token boundaries, so a
// match inside a longer alphanumeric run is never promoted to a room
// candidate.
func isolated(text string, start, end int) bool {
	if start > 0 && isTokenByte(text[start-1]) {
		return false
	}
	if end < len(text) && isTokenByte(text[end]) {
		return false
	}
	return true
}

func isTokenByte(b byte) bool {
	return b == '#' || b == '+' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func insideAny(needle string, haystacks []string) bool {
	for _, h := range haystacks {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}
