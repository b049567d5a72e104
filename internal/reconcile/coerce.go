package reconcile

import (
	"math"
	"strconv"
	"strings"
)

// currencyReplacer strips the decoration the historical exports wrap around
// numbers: currency symbols, percent signs, thousands separators, whitespace.
var currencyReplacer = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	"%", "",
	",", "",
	" ", "",
	"\t", "",
)

// Coerce converts a raw cell value into a finite float64. It never fails:
// non-parseable input, empty strings, nil, NaN and Inf all yield 0. The
// percent sign is stripped, not interpreted; Coerce("12%") is 12, and the
// divide-by-100 decision belongs to commission-rate resolution alone.
//
// Zero-on-failure is intentional permissiveness, not a defect: the exports
// this reconciles are inconsistent enough that rejecting a malformed cell
// would reject most real files.
func Coerce(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return coerceString(v)
	default:
		return 0
	}
}

func coerceString(s string) float64 {
	s = currencyReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
