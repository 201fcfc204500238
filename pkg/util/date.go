package util

import (
    "time"
)

// Seoul is the market-local timezone. Basis dates, session grids, and the
// countdown clock are all computed in this location regardless of server locale.
var Seoul = loadSeoul()

func loadSeoul() *time.Location {
    if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
        return loc
    }
    return time.FixedZone("KST", 9*60*60)
}

// CompactDate formats a time as the provider basis-date token YYYYMMDD.
func CompactDate(t time.Time) string {
    return t.In(Seoul).Format("20060102")
}

// ParseCompactStamp parses a provider timestamp of the form YYYYMMDDHHMMSS
// in market-local time. Returns (t, true) if it parsed.
func ParseCompactStamp(s string) (time.Time, bool) {
    if len(s) != 14 {
        return time.Time{}, false
    }
    t, err := time.ParseInLocation("20060102150405", s, Seoul)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}

// MinuteLabel returns the HH:MM grid label for a time in market-local time.
func MinuteLabel(t time.Time) string {
    return t.In(Seoul).Format("15:04")
}
