package usecase

import (
	"context"
	"fmt"
	"time"

	"KIndex/internal/domain/models"
	drepo "KIndex/internal/domain/repository"
	applogger "KIndex/pkg/logger"
	"KIndex/pkg/util"
)

// FuturesUseCase walks basis-date candidates until one resolves to a
// contract row. Per-candidate fetch failures and absent resolutions both
// just advance the search.
type FuturesUseCase struct {
	source   drepo.FuturesSource
	lookback int
	logger   *applogger.Logger
	now      func() time.Time
}

func NewFuturesUseCase(source drepo.FuturesSource, lookback int, l *applogger.Logger) *FuturesUseCase {
	if lookback <= 0 {
		lookback = 10
	}
	return &FuturesUseCase{source: source, lookback: lookback, logger: l, now: time.Now}
}

// Snapshot resolves the nearest contract for the most recent basis date with
// a matching row, at or before the requested date (empty means today).
func (uc *FuturesUseCase) Snapshot(ctx context.Context, requested string) (*models.FuturesSnapshot, error) {
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

		row, err := uc.source.ResolveContract(ctx, date)
		if err != nil {
			if uc.logger != nil {
				uc.logger.Warn("futures fetch failed",
					applogger.String("date", date),
					applogger.Error(err),
				)
			}
		} else if row != nil {
			return &models.FuturesSnapshot{BasisDate: date, Row: row, TriedDates: tried}, nil
		}
		cur = cur.AddDate(0, 0, -1)
	}

	return nil, &NoDataError{Op: "futures", Requested: requested, Tried: tried}
}
