package valueobject

import (
	"math"
	"strconv"
	"strings"
)

// RoundHalfUp rounds v to precision fractional digits, with ties going away
// from zero. Rounding works on the shortest decimal representation of v, so
// 2.675 rounds to 2.68 even though its binary value is slightly below.
func RoundHalfUp(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || precision < 0 {
		return v
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) <= precision {
		return v
	}

	digits := []byte(intPart + frac[:precision])
	if frac[precision] >= '5' {
		digits = incrementDigits(digits)
	}

	out := string(digits)
	if precision > 0 {
		cut := len(out) - precision
		out = out[:cut] + "." + out[cut:]
	}

	r, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return v
	}
	if v < 0 && r != 0 {
		r = -r
	}
	return r
}

// incrementDigits adds one to an unsigned decimal digit string.
func incrementDigits(d []byte) []byte {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return d
		}
		d[i] = '0'
	}
	return append([]byte{'1'}, d...)
}
