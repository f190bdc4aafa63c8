package intake

import (
	"math"
	"testing"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(DefaultConfig())
	if err != nil {
		t.Fatalf("NewParser(DefaultConfig()) failed: %v", err)
	}
	return p
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
