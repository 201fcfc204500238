package market

import (
	"math"
	"testing"
	"time"

	"KIndex/internal/domain/models"
	"KIndex/pkg/util"
)

func fp(v float64) *float64 { return &v }

func sampleAt(hh, mm int, v *float64) models.Sample {
	return models.Sample{
		At:    time.Date(2026, 1, 5, hh, mm, 0, 0, util.Seoul),
		Value: v,
	}
}

func TestGridLength(t *testing.T) {
	grid := Grid("09:00", "15:30")
	if len(grid) != 391 {
		t.Fatalf("expected 391 labels, got %d", len(grid))
	}
	if grid[0] != "09:00" || grid[len(grid)-1] != "15:30" {
		t.Fatalf("unexpected endpoints %s..%s", grid[0], grid[len(grid)-1])
	}
}

func TestAlignLengthMatchesGrid(t *testing.T) {
	grid := Grid("09:00", "09:10")
	s := models.Series{Samples: []models.Sample{sampleAt(9, 5, fp(100))}}
	a := Align(s, grid)
	if len(a) != len(grid) {
		t.Fatalf("aligned length %d != grid length %d", len(a), len(grid))
	}
}

func TestAlignDuplicateMinuteLatestWins(t *testing.T) {
	grid := Grid("09:00", "09:10")
	s := models.Series{Samples: []models.Sample{
		sampleAt(9, 5, fp(100)),
		sampleAt(9, 5, fp(101)),
	}}
	a := Align(s, grid)
	if a[5] == nil || *a[5] != 101 {
		t.Fatalf("expected latest duplicate to win, got %v", a[5])
	}
}

func TestAlignLaterBadDuplicateBlanksSlot(t *testing.T) {
	grid := Grid("09:00", "09:10")
	s := models.Series{Samples: []models.Sample{
		sampleAt(9, 5, fp(100)),
		sampleAt(9, 5, nil),
		sampleAt(9, 6, fp(101)),
		sampleAt(9, 6, fp(math.NaN())),
	}}
	a := Align(s, grid)
	if a[5] != nil {
		t.Fatalf("later absent duplicate should blank the slot, got %v", *a[5])
	}
	if a[6] != nil {
		t.Fatalf("later non-finite duplicate should blank the slot, got %v", *a[6])
	}
}

func TestAlignNonFiniteTreatedAsAbsent(t *testing.T) {
	grid := Grid("09:00", "09:10")
	s := models.Series{Samples: []models.Sample{
		sampleAt(9, 1, fp(math.NaN())),
		sampleAt(9, 2, fp(math.Inf(1))),
		sampleAt(9, 3, nil),
	}}
	a := Align(s, grid)
	for i, v := range a {
		if v != nil {
			t.Fatalf("slot %d should be absent, got %v", i, *v)
		}
	}
}

func TestBoundsAnchoredAtReference(t *testing.T) {
	a := models.AlignedSeries{nil, fp(100), fp(103), fp(99)}
	b, ok := Bounds(a)
	if !ok {
		t.Fatalf("expected bounds")
	}
	// reference 100, diffUp 3, diffDown 1, margin 3*1.15
	want := 3 * 1.15
	if math.Abs(b.Low-(100-want)) > 1e-9 || math.Abs(b.High-(100+want)) > 1e-9 {
		t.Fatalf("unexpected bounds %+v", b)
	}
	if b.Low > 100 || b.High < 100 {
		t.Fatalf("reference outside bounds %+v", b)
	}
}

func TestBoundsFlatSeries(t *testing.T) {
	a := models.AlignedSeries{fp(200), fp(200), fp(200)}
	b, ok := Bounds(a)
	if !ok {
		t.Fatalf("expected bounds")
	}
	spread := 200 * 0.005
	if math.Abs(b.Low-(200-spread)) > 1e-9 || math.Abs(b.High-(200+spread)) > 1e-9 {
		t.Fatalf("unexpected flat bounds %+v", b)
	}
}

func TestBoundsAbsentSeries(t *testing.T) {
	if _, ok := Bounds(models.AlignedSeries{nil, nil}); ok {
		t.Fatalf("expected no bounds for empty series")
	}
}

func TestExtremaTieBreakEarlierLabel(t *testing.T) {
	grid := []string{"09:00", "09:01", "09:02"}
	a := models.AlignedSeries{fp(101.5), fp(100), fp(101.5)}
	e, ok := Extrema(grid, a)
	if !ok {
		t.Fatalf("expected extrema")
	}
	if e.Max.Label != "09:00" {
		t.Fatalf("expected earlier label to win tie, got %s", e.Max.Label)
	}
	if e.Min.Label != "09:01" || e.Min.Value != 100 {
		t.Fatalf("unexpected min %+v", e.Min)
	}
}

func TestEndToEndScenario(t *testing.T) {
	grid := Grid("09:00", "09:10")
	s := models.Series{Samples: []models.Sample{
		sampleAt(9, 5, fp(100.0)),
		sampleAt(9, 10, fp(101.5)),
	}}

	a := Align(s, grid)
	for i, v := range a {
		switch i {
		case 5:
			if v == nil || *v != 100.0 {
				t.Fatalf("slot 5: got %v", v)
			}
		case 10:
			if v == nil || *v != 101.5 {
				t.Fatalf("slot 10: got %v", v)
			}
		default:
			if v != nil {
				t.Fatalf("slot %d should be absent", i)
			}
		}
	}

	b, ok := Bounds(a)
	if !ok {
		t.Fatalf("expected bounds")
	}
	// margin = max(1.5, 0) * 1.15 = 1.725
	if math.Abs(b.Low-98.275) > 1e-9 || math.Abs(b.High-101.725) > 1e-9 {
		t.Fatalf("unexpected bounds %+v", b)
	}

	e, ok := Extrema(grid, a)
	if !ok {
		t.Fatalf("expected extrema")
	}
	if e.Max.Label != "09:10" || e.Max.Value != 101.5 {
		t.Fatalf("unexpected max %+v", e.Max)
	}
	if e.Min.Label != "09:05" || e.Min.Value != 100.0 {
		t.Fatalf("unexpected min %+v", e.Min)
	}
}
