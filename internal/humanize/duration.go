// Package humanize renders durations the way people read them: "1h 2m 3s".
package humanize

import (
	"strconv"
	"strings"
	"time"
)

const (
	secondsPerDay   = 86_400
	secondsPerMonth = 2_630_016  // 30.44 days
	secondsPerYear  = 31_557_600 // 365.25 days
)

// Duration formats d as space separated components, largest first, skipping zeros.
// Years, months and days are spelled out; smaller units use their symbols.
// Zero and negative durations render as "0s".
func Duration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	secs := uint64(d / time.Second)
	nanos := uint64(d % time.Second)

	years := secs / secondsPerYear
	rest := secs % secondsPerYear
	months := rest / secondsPerMonth
	rest %= secondsPerMonth
	days := rest / secondsPerDay
	rest %= secondsPerDay

	var b strings.Builder
	word(&b, years, "year")
	word(&b, months, "month")
	word(&b, days, "day")
	symbol(&b, rest/3600, "h")
	symbol(&b, rest%3600/60, "m")
	symbol(&b, rest%60, "s")
	symbol(&b, nanos/1_000_000, "ms")
	symbol(&b, nanos/1_000%1_000, "us")
	symbol(&b, nanos%1_000, "ns")
	return b.String()
}

func word(b *strings.Builder, n uint64, unit string) {
	if n == 0 {
		return
	}
	symbol(b, n, unit)
	if n > 1 {
		b.WriteByte('s')
	}
}

func symbol(b *strings.Builder, n uint64, unit string) {
	if n == 0 {
		return
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(strconv.FormatUint(n, 10))
	b.WriteString(unit)
}
