// Package intake parses free-form, human-pasted contact lists into structured
// candidate records.
//
// Each input line is expected to describe one prospective contact (a name, a
// phone number, and a room or unit identifier) in no particular order, with
// inconsistent separators, stray labels, and typo noise. The pipeline recovers
// whatever it can and reports a confidence score plus diagnostic issues per
// line:
// - Line normalization (list markers, dash variants, quotes, separator runs)
// - Phone extraction against an ordered table of shape patterns
// - Room extraction (explicit label first, plausible-token fallback)
// - Name extraction via a capitalization heuristic with a full-text fallback
//
// Parsing is pure, synchronous, and deterministic: no I/O, no shared mutable
// state. A batch never fails as a whole: per-line failures are isolated and
// reported alongside partial results.
package intake

import (
	"fmt"
	"regexp"
)

// Contact is one structured candidate recovered from a single input line.
type Contact struct {
	// Name is the extracted display name. Always non-empty on an emitted
	// record; lines with no recoverable name are dropped by the batch layer.
	Name string `json:"name"`

	// PhoneNumber is the normalized phone string, nil when no shape pattern
	// matched.
	PhoneNumber *string `json:"phone_number,omitempty"`

	// RoomIdentifier is a short alphanumeric token, nil when none was found.
	RoomIdentifier *string `json:"room_identifier,omitempty"`

	// RawText preserves the original line verbatim for audit and debugging.
	RawText string `json:"raw_text"`

	// Confidence is a completeness score in [0.0, 1.0], not a probability.
	Confidence float64 `json:"confidence"`

	// Issues lists human-readable soft misses, in detection order.
	Issues []string `json:"issues,omitempty"`
}

// LineError records an unexpected failure while parsing one input line.
type LineError struct {
	Line    int    `json:"line"` // 1-based, counting non-blank lines only
	Message string `json:"message"`
}

// BatchResult aggregates one parse of a pasted blob.
//
// Invariants: SuccessfullyParsed == len(Contacts) <= TotalLines, and Contacts
// preserves input line order. Lines dropped for a missing name appear in
// neither Contacts nor Errors; they are reflected only in the difference
// TotalLines - SuccessfullyParsed - len(Errors).
type BatchResult struct {
	Contacts           []Contact   `json:"contacts"`
	TotalLines         int         `json:"total_lines"`
	SuccessfullyParsed int         `json:"successfully_parsed"`
	Errors             []LineError `json:"errors,omitempty"`
}

// Parser is a compiled parsing pipeline. It is immutable after construction
// and safe for concurrent use: every invocation owns its input and output
// exclusively.
type Parser struct {
	cfg           Config
	phonePatterns []phonePattern
	roomKeywordRE *regexp.Regexp
	roomTokenRE   *regexp.Regexp

	// parseLineFn is the per-line entry point the batch layer calls; it
	// defaults to ParseLine and is only replaced via withLineParser.
	parseLineFn func(string) (Contact, bool)
}

// option adjusts a Parser after its pattern tables are compiled.
type option func(*Parser)

// withLineParser swaps the per-line parse function. Tests use it to push
// faults through the batch layer's isolation guarantees.
func withLineParser(fn func(string) (Contact, bool)) option {
	return func(p *Parser) {
		p.parseLineFn = fn
	}
}

// NewParser validates cfg and compiles the pattern tables once.
func NewParser(cfg Config, opts ...option) (*Parser, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid parser config: %w", err)
	}

	phones, err := compilePhonePatterns(cfg)
	if err != nil {
		return nil, err
	}
	keyword, token, err := compileRoomPatterns(cfg)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		cfg:           cfg,
		phonePatterns: phones,
		roomKeywordRE: keyword,
		roomTokenRE:   token,
	}
	p.parseLineFn = p.ParseLine
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}
