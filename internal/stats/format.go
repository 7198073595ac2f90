package stats

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders v with thousands separators. Whole numbers print without
// decimals; fractional values keep their shortest decimal representation.
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1e18 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	plain := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intPart, fracPart, hasFrac := strings.Cut(plain, ".")
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	out := countPrinter.Sprintf("%d", whole)
	if hasFrac {
		out += "." + fracPart
	}
	if v < 0 {
		out = "-" + out
	}
	return out
}
