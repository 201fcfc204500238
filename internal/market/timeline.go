// Package market maps sparse provider samples onto the canonical per-minute
// session grid and derives display-ready statistics from the result.
package market

import (
	"math"
	"time"

	"KIndex/internal/domain/models"
	"KIndex/pkg/util"
)

const (
	// headroom inflates the anchored margin so the extremes never sit on the
	// chart edge.
	headroom = 1.15
	// flatSpread is the minimum visible spread for a flat series, as a
	// fraction of the reference value.
	flatSpread = 0.005
)

// Grid builds the canonical minute-label sequence from session open to close
// inclusive, e.g. "09:00".."15:30". Length and labels are deterministic for a
// given session definition.
func Grid(open, close string) []string {
	start, err := time.Parse("15:04", open)
	if err != nil {
		return nil
	}
	end, err := time.Parse("15:04", close)
	if err != nil {
		return nil
	}

	var grid []string
	for cur := start; !cur.After(end); cur = cur.Add(time.Minute) {
		grid = append(grid, cur.Format("15:04"))
	}
	return grid
}

// Align re-expresses a series as one optional value per grid slot. Slots with
// no matching sample stay nil; when a minute has duplicate samples the latest
// one in source order wins, even when it is absent or non-finite — a later
// bad sample blanks the slot rather than leaving an earlier value behind.
func Align(s models.Series, grid []string) models.AlignedSeries {
	idx := make(map[string]int, len(grid))
	for i, label := range grid {
		idx[label] = i
	}

	out := make(models.AlignedSeries, len(grid))
	for _, sample := range s.Samples {
		i, ok := idx[util.MinuteLabel(sample.At)]
		if !ok {
			continue
		}
		if sample.Value == nil || math.IsNaN(*sample.Value) || math.IsInf(*sample.Value, 0) {
			out[i] = nil
			continue
		}
		v := *sample.Value
		out[i] = &v
	}
	return out
}

// Bounds computes the anchored Y-axis range for an aligned series. The
// reference is the first present value in grid order (the session's opening
// print), which deliberately centers the chart on the open rather than the
// statistical mean. Returns false when no value is present.
func Bounds(a models.AlignedSeries) (models.Bounds, bool) {
	var reference *float64
	for _, v := range a {
		if v != nil {
			reference = v
			break
		}
	}
	if reference == nil {
		return models.Bounds{}, false
	}

	max, min := *reference, *reference
	for _, v := range a {
		if v == nil {
			continue
		}
		if *v > max {
			max = *v
		}
		if *v < min {
			min = *v
		}
	}

	diffUp := max - *reference
	diffDown := *reference - min
	margin := diffUp
	if diffDown > margin {
		margin = diffDown
	}

	if margin == 0 {
		margin = *reference * flatSpread
	} else {
		margin *= headroom
	}

	return models.Bounds{Low: *reference - margin, High: *reference + margin}, true
}

// Extrema returns the max and min (label, value) pairs over all present
// slots. On ties the earlier grid-order label wins. Returns false when no
// value is present.
func Extrema(grid []string, a models.AlignedSeries) (models.Extrema, bool) {
	var ext models.Extrema
	found := false
	for i, v := range a {
		if v == nil || i >= len(grid) {
			continue
		}
		if !found {
			ext.Max = models.ExtremePoint{Label: grid[i], Value: *v}
			ext.Min = models.ExtremePoint{Label: grid[i], Value: *v}
			found = true
			continue
		}
		if *v > ext.Max.Value {
			ext.Max = models.ExtremePoint{Label: grid[i], Value: *v}
		}
		if *v < ext.Min.Value {
			ext.Min = models.ExtremePoint{Label: grid[i], Value: *v}
		}
	}
	return ext, found
}
