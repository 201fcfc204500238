package util

import (
    "math"
    "strconv"
    "strings"
)

// CleanNumber parses a provider numeric field that may carry thousands
// separators ("2,601.36"). Returns nil for empty, unparsable, or non-finite
// values; absence is represented by nil, never by a sentinel.
func CleanNumber(s string) *float64 {
    s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
    if s == "" || s == "-" {
        return nil
    }
    f, err := strconv.ParseFloat(s, 64)
    if err != nil {
        return nil
    }
    if math.IsNaN(f) || math.IsInf(f, 0) {
        return nil
    }
    return &f
}

// NormalizeLabel removes all whitespace for label comparison.
func NormalizeLabel(s string) string {
    return strings.Join(strings.Fields(s), "")
}
