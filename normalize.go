package intake

import (
	"regexp"
	"strings"
)

var (
	// listPrefixRE matches leading ordinal and bullet markers that paste in
	// from numbered lists: "3. ", "4) ", "- ", "* ", "(2) ", "[7] ".
	listPrefixRE = regexp.MustCompile(`^(?:\d{1,3}[.)]\s+|[-*•]\s+|\(\d{1,3}\)\s*|\[\d{1,3}\]\s*)`)

	// sepRunRE collapses comma/semicolon/colon runs into one canonical
	// hyphen separator.
	sepRunRE = regexp.MustCompile(`[,;:]+`)

	// spaceRunRE collapses any whitespace run to a single space.
	spaceRunRE = regexp.MustCompile(`\s+`)
)

// charCleaner maps dash variants and alternate separator characters to
// canonical forms, folds curly apostrophes (kept, they appear inside names),
// and strips quote and bullet glyphs outright.
var charCleaner = strings.NewReplacer(
	"—", "-", "–", "-",
	"’", "'", "‘", "'",
	"\"", "", "“", "", "”", "", "«", "", "»", "", "`", "",
	"•", "", "·", "", "▪", "", "‣", "", "◦", "",
	"|", " - ", "_", " - ", "~", " - ", "*", " - ",
)

// NormalizeLine canonicalizes one raw line for field extraction: list
// markers stripped, dash variants and alternate separators folded into
// " - ", quote glyphs removed, whitespace collapsed. It never fails and is
// idempotent: stripping one layer can expose another (a quote-wrapped list
// marker, a marker behind a separator run), so the pass repeats until the
// string stops changing.
func NormalizeLine(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(raw string) string {
	s := strings.TrimSpace(raw)

	// Leading list markers can stack ("1. - item"), so strip until stable.
	for {
		stripped := listPrefixRE.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = strings.TrimSpace(stripped)
	}

	s = charCleaner.Replace(s)
	s = sepRunRE.ReplaceAllString(s, " - ")
	s = strings.TrimSpace(spaceRunRE.ReplaceAllString(s, " "))

	// Drop bare separator residue at the edges so a second pass has nothing
	// left to strip.
	for strings.HasPrefix(s, "- ") {
		s = s[2:]
	}
	for strings.HasSuffix(s, " -") {
		s = strings.TrimSpace(s[:len(s)-2])
	}
	if s == "-" {
		s = ""
	}
	return s
}

// splitLines breaks a pasted blob into trimmed, non-blank candidate lines,
// preserving input order.
func splitLines(blob string) []string {
	blob = strings.ReplaceAll(blob, "\r\n", "\n")
	blob = strings.ReplaceAll(blob, "\r", "\n")

	var lines []string
	for _, l := range strings.Split(blob, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// removeOnce deletes the first occurrence of sub from s and re-collapses the
// surrounding whitespace, so a consumed field leaves no hole behind.
func removeOnce(s, sub string) string {
	if sub == "" {
		return s
	}
	replaced := strings.Replace(s, sub, " ", 1)
	return strings.TrimSpace(spaceRunRE.ReplaceAllString(replaced, " "))
}
