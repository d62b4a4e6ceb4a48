// Package format renders money and percentages for the dashboard and CLI.
package format

import (
	"math"
	"strconv"
	"strings"

	"bagbuilder-go/internal/analytics"

	"github.com/shopspring/decimal"
)

// placeholder is shown for values that have nothing sensible to render.
const placeholder = "—"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// USD rounds to whole units and groups thousands: 1234.5 -> "$1,235".
func USD(v float64) string {
	if !finite(v) {
		return placeholder
	}
	d := decimal.NewFromFloat(v).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + group(d.String())
}

// Pct renders one decimal with an explicit sign for non-negative values.
func Pct(v float64) string {
	if !finite(v) {
		return placeholder
	}
	d := decimal.NewFromFloat(v).Round(1)
	s := d.StringFixed(1)
	if !d.IsNegative() {
		s = "+" + s
	}
	return s + "%"
}

// WholePct renders a rate such as a win rate without decimals: "67%".
func WholePct(v float64) string {
	if !finite(v) {
		return placeholder
	}
	return decimal.NewFromFloat(v).Round(0).String() + "%"
}

// Streak renders "3W", "2L", or the placeholder when there is no closed trade yet.
func Streak(s *analytics.Streak) string {
	if s == nil {
		return placeholder
	}
	suffix := "L"
	if s.IsWin {
		suffix = "W"
	}
	return strconv.Itoa(s.Count) + suffix
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
