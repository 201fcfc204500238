package util

import (
    "testing"
    "time"
)

func TestParseCompactStamp(t *testing.T) {
    got, ok := ParseCompactStamp("20260105093000")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Hour() != 9 || got.Minute() != 30 {
        t.Fatalf("unexpected time %v", got)
    }
    if MinuteLabel(got) != "09:30" {
        t.Fatalf("unexpected label %s", MinuteLabel(got))
    }
}

func TestParseCompactStampBadInput(t *testing.T) {
    if _, ok := ParseCompactStamp("2026010509"); ok {
        t.Fatalf("expected not ok for short stamp")
    }
    if _, ok := ParseCompactStamp("20261305093000"); ok {
        t.Fatalf("expected not ok for bad month")
    }
}

func TestCompactDate(t *testing.T) {
    d := time.Date(2026, 1, 5, 0, 30, 0, 0, time.UTC) // 09:30 KST same day
    if CompactDate(d) != "20260105" {
        t.Fatalf("unexpected %s", CompactDate(d))
    }
}

func TestCleanNumber(t *testing.T) {
    v := CleanNumber("2,601.36")
    if v == nil || *v != 2601.36 {
        t.Fatalf("unexpected %v", v)
    }
    if CleanNumber("") != nil {
        t.Fatalf("expected nil for empty")
    }
    if CleanNumber("NaN") != nil {
        t.Fatalf("expected nil for NaN")
    }
    if CleanNumber("abc") != nil {
        t.Fatalf("expected nil for garbage")
    }
}
