package reconcile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{
			name:     "plain number string",
			input:    "42",
			expected: 42,
		},
		{
			name:     "decimal string",
			input:    "3.5",
			expected: 3.5,
		},
		{
			name:     "currency with thousands separator",
			input:    "$1,234.50",
			expected: 1234.50,
		},
		{
			name:     "percent sign stripped not divided",
			input:    "12%",
			expected: 12,
		},
		{
			name:     "euro symbol",
			input:    "€99.99",
			expected: 99.99,
		},
		{
			name:     "surrounding whitespace",
			input:    "  250  ",
			expected: 250,
		},
		{
			name:     "embedded spaces",
			input:    "1 234",
			expected: 1234,
		},
		{
			name:     "negative value",
			input:    "-17.25",
			expected: -17.25,
		},
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
		{
			name:     "non-numeric string",
			input:    "n/a",
			expected: 0,
		},
		{
			name:     "nil input",
			input:    nil,
			expected: 0,
		},
		{
			name:     "float passes through",
			input:    7.75,
			expected: 7.75,
		},
		{
			name:     "int passes through",
			input:    12,
			expected: 12,
		},
		{
			name:     "NaN coerces to zero",
			input:    math.NaN(),
			expected: 0,
		},
		{
			name:     "positive infinity coerces to zero",
			input:    math.Inf(1),
			expected: 0,
		},
		{
			name:     "negative infinity coerces to zero",
			input:    math.Inf(-1),
			expected: 0,
		},
		{
			name:     "unsupported type coerces to zero",
			input:    struct{}{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Coerce(tt.input))
		})
	}
}

// Coerce must be idempotent on already-numeric input: feeding its own output
// back in changes nothing.
func TestCoerceIdempotent(t *testing.T) {
	inputs := []any{"$1,234.50", "12%", "abc", "", 3.75, math.NaN(), nil}
	for _, input := range inputs {
		once := Coerce(input)
		assert.Equal(t, once, Coerce(once), "Coerce(Coerce(%v))", input)
	}
}
