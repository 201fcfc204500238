package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"KIndex/internal/calendar"
	"KIndex/internal/domain/models"
	drepo "KIndex/internal/domain/repository"
	"KIndex/internal/market"
	applogger "KIndex/pkg/logger"
	"KIndex/pkg/util"
)

// DashboardUseCase builds the per-minute dashboard view: it walks basis-date
// candidates back from the requested date until a day with data is found,
// then aligns every index onto the canonical grid.
type DashboardUseCase struct {
	source   drepo.IndexSource
	cal      *calendar.Calendar
	indices  []string
	lookback int
	logger   *applogger.Logger
	now      func() time.Time
}

func NewDashboardUseCase(source drepo.IndexSource, cal *calendar.Calendar, indices []string, lookback int, l *applogger.Logger) *DashboardUseCase {
	if len(indices) == 0 {
		indices = []string{"KOSPI", "KOSDAQ"}
	}
	if lookback <= 0 {
		lookback = 10
	}
	return &DashboardUseCase{
		source:   source,
		cal:      cal,
		indices:  indices,
		lookback: lookback,
		logger:   l,
		now:      time.Now,
	}
}

type indexResult struct {
	index  string
	series models.Series
	quote  *models.IndexQuote
	err    error
}

// Snapshot resolves the most recent basis date with data at or before the
// requested date (empty means today) and returns the aligned dashboard.
// Fetch failures for one candidate are logged and the search moves on; only
// full exhaustion surfaces an error.
func (uc *DashboardUseCase) Snapshot(ctx context.Context, requested string) (*models.DashboardSnapshot, error) {
	if requested == "" {
		requested = util.CompactDate(uc.now())
	}
	cur, err := time.ParseInLocation("20060102", requested, util.Seoul)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", requested, err)
	}

	var tried []string
	for i := 0; i < uc.lookback; i++ {
		if wd := cur.Weekday(); wd == time.Saturday || wd == time.Sunday {
			cur = cur.AddDate(0, 0, -1)
			continue
		}
		date := cur.Format("20060102")
		tried = append(tried, date)

		results := uc.fetchAll(ctx, date)
		if anyData(results) {
			return uc.build(requested, date, tried, results), nil
		}
		cur = cur.AddDate(0, 0, -1)
	}

	return nil, &NoDataError{Op: "dashboard", Requested: requested, Tried: tried}
}

// fetchAll fetches every index for one basis date in parallel. The fetches
// share no mutable state, so no coordination beyond the wait group is
// needed.
func (uc *DashboardUseCase) fetchAll(ctx context.Context, date string) []indexResult {
	ch := make(chan indexResult, len(uc.indices))
	var wg sync.WaitGroup
	for _, index := range uc.indices {
		wg.Add(1)
		go func(index string) {
			defer wg.Done()
			series, quote, err := uc.source.FetchSeries(ctx, index, date)
			ch <- indexResult{index: index, series: series, quote: quote, err: err}
		}(index)
	}
	go func() { wg.Wait(); close(ch) }()

	byIndex := make(map[string]indexResult, len(uc.indices))
	for r := range ch {
		if r.err != nil && uc.logger != nil {
			uc.logger.Warn("index fetch failed",
				applogger.String("index", r.index),
				applogger.String("date", date),
				applogger.Error(r.err),
			)
		}
		byIndex[r.index] = r
	}

	// Stable panel order regardless of completion order.
	out := make([]indexResult, 0, len(uc.indices))
	for _, index := range uc.indices {
		out = append(out, byIndex[index])
	}
	return out
}

func anyData(results []indexResult) bool {
	for _, r := range results {
		if r.err == nil && !r.series.Empty() {
			return true
		}
	}
	return false
}

func (uc *DashboardUseCase) build(requested, date string, tried []string, results []indexResult) *models.DashboardSnapshot {
	open, close := uc.cal.SessionMinutes()
	grid := market.Grid(open, close)

	snap := &models.DashboardSnapshot{
		BasisDate:  date,
		Requested:  requested,
		Grid:       grid,
		TriedDates: tried,
	}
	for _, r := range results {
		panel := models.IndexPanel{Index: r.index, Quote: r.quote}
		aligned := market.Align(r.series, grid)
		panel.Values = aligned
		if b, ok := market.Bounds(aligned); ok {
			panel.Bounds = &b
		}
		if e, ok := market.Extrema(grid, aligned); ok {
			panel.Extrema = &e
		}
		snap.Panels = append(snap.Panels, panel)
	}
	return snap
}
