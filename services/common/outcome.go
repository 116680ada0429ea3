package common

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeOutcome coerces an outcome to its canonical string form so that
// settlement compares values, not representations: "7", 7 and " 7.0 " all
// normalize to "7"; option strings compare case-insensitively. The same rule
// is applied when storing a wager, when settling a bet and when resolving a
// parlay leg.
func NormalizeOutcome(v any) string {
	s := strings.TrimSpace(fmt.Sprint(v))
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strings.ToLower(s)
}

// IsIntegerOutcome reports whether the normalized outcome is a whole number,
// the only shape accepted for numeric bets.
func IsIntegerOutcome(normalized string) bool {
	_, err := strconv.ParseInt(normalized, 10, 64)
	return err == nil
}
