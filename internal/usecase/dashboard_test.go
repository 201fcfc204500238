package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"KIndex/internal/calendar"
	"KIndex/internal/domain/models"
	"KIndex/pkg/util"
)

type fakeIndexSource struct {
	// data maps "index:date" to a series; missing keys yield empty series.
	data map[string]models.Series
	errs map[string]error

	mu   sync.Mutex
	seen []string
}

func (f *fakeIndexSource) FetchSeries(_ context.Context, index, date string) (models.Series, *models.IndexQuote, error) {
	key := index + ":" + date
	f.mu.Lock()
	f.seen = append(f.seen, key)
	f.mu.Unlock()
	if err, ok := f.errs[key]; ok {
		return models.Series{}, nil, err
	}
	s, ok := f.data[key]
	if !ok {
		return models.Series{Index: index}, nil, nil
	}
	q := &models.IndexQuote{Index: index, Value: 1}
	return s, q, nil
}

func seriesWith(hh, mm int, v float64) models.Series {
	return models.Series{Samples: []models.Sample{{
		At:    time.Date(2026, 1, 5, hh, mm, 0, 0, util.Seoul),
		Value: &v,
	}}}
}

func newDashboardUC(t *testing.T, src *fakeIndexSource) *DashboardUseCase {
	t.Helper()
	cal, err := calendar.New("09:00", "15:30", nil)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	return NewDashboardUseCase(src, cal, []string{"KOSPI", "KOSDAQ"}, 10, nil)
}

func TestSnapshotUsesRequestedDateWhenDataExists(t *testing.T) {
	src := &fakeIndexSource{data: map[string]models.Series{
		"KOSPI:20260105": seriesWith(9, 5, 2600),
	}}
	uc := newDashboardUC(t, src)

	snap, err := uc.Snapshot(context.Background(), "20260105")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.BasisDate != "20260105" {
		t.Fatalf("unexpected basis date %s", snap.BasisDate)
	}
	if len(snap.Panels) != 2 || snap.Panels[0].Index != "KOSPI" || snap.Panels[1].Index != "KOSDAQ" {
		t.Fatalf("unexpected panels %+v", snap.Panels)
	}
	if len(snap.Panels[0].Values) != len(snap.Grid) {
		t.Fatalf("aligned length mismatch")
	}
	if snap.Panels[0].Bounds == nil || snap.Panels[0].Extrema == nil {
		t.Fatalf("expected bounds and extrema for populated panel")
	}
	if snap.Panels[1].Bounds != nil {
		t.Fatalf("empty panel should have no bounds")
	}
}

func TestSnapshotRollsBackOverWeekend(t *testing.T) {
	// Requested Sunday Jan 4 2026; Friday Jan 2 has data.
	src := &fakeIndexSource{data: map[string]models.Series{
		"KOSDAQ:20260102": seriesWith(10, 0, 870),
	}}
	uc := newDashboardUC(t, src)

	snap, err := uc.Snapshot(context.Background(), "20260104")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.BasisDate != "20260102" {
		t.Fatalf("expected Friday basis date, got %s", snap.BasisDate)
	}
	for _, seen := range src.seen {
		if seen == "KOSPI:20260104" || seen == "KOSPI:20260103" {
			t.Fatalf("weekend dates must not be fetched: %s", seen)
		}
	}
	if len(snap.TriedDates) != 1 || snap.TriedDates[0] != "20260102" {
		t.Fatalf("unexpected tried dates %v", snap.TriedDates)
	}
}

func TestSnapshotFetchErrorDoesNotAbortSearch(t *testing.T) {
	src := &fakeIndexSource{
		errs: map[string]error{
			"KOSPI:20260106":  errors.New("blocked"),
			"KOSDAQ:20260106": errors.New("blocked"),
		},
		data: map[string]models.Series{
			"KOSPI:20260105": seriesWith(9, 0, 2600),
		},
	}
	uc := newDashboardUC(t, src)

	snap, err := uc.Snapshot(context.Background(), "20260106")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.BasisDate != "20260105" {
		t.Fatalf("expected fallthrough to previous day, got %s", snap.BasisDate)
	}
}

func TestSnapshotExhaustionListsTriedDates(t *testing.T) {
	uc := newDashboardUC(t, &fakeIndexSource{})

	_, err := uc.Snapshot(context.Background(), "20260116")
	if err == nil {
		t.Fatalf("expected error")
	}
	var nde *NoDataError
	if !errors.As(err, &nde) {
		t.Fatalf("expected NoDataError, got %T", err)
	}
	// 10 calendar days back from Fri Jan 16 includes one weekend.
	if len(nde.Tried) != 8 {
		t.Fatalf("expected 8 weekday candidates, got %d: %v", len(nde.Tried), nde.Tried)
	}
}

func TestSnapshotRejectsMalformedDate(t *testing.T) {
	uc := newDashboardUC(t, &fakeIndexSource{})
	if _, err := uc.Snapshot(context.Background(), "2026-01-05"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}
