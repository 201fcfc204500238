// Package naver fetches per-minute domestic index series (KOSPI, KOSDAQ)
// from the Naver finance time endpoint.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"KIndex/internal/domain/models"
	drepo "KIndex/internal/domain/repository"
	"KIndex/internal/service/cache"
	"KIndex/internal/service/fetch"
	applogger "KIndex/pkg/logger"
	"KIndex/pkg/util"
)

const seriesPath = "/api/domestic/indexSise/time"

// Client implements an IndexSource backed by the Naver time-series endpoint.
type Client struct {
	fetcher  *fetch.Fetcher
	cache    cache.BytesCache
	baseURL  string
	pageSize int
	ttl      time.Duration
	metrics  drepo.Metrics
	logger   *applogger.Logger
}

func New(fetcher *fetch.Fetcher, c cache.BytesCache, baseURL string, pageSize int, ttl time.Duration, m drepo.Metrics, l *applogger.Logger) drepo.IndexSource {
	return &Client{
		fetcher:  fetcher,
		cache:    c,
		baseURL:  baseURL,
		pageSize: pageSize,
		ttl:      ttl,
		metrics:  m,
		logger:   l,
	}
}

type indexRow struct {
	ThisTime   string     `json:"thistime"`
	NowVal     FlexNumber `json:"nowVal"`
	ChangeVal  FlexNumber `json:"changeVal"`
	ChangeRate FlexNumber `json:"changeRate"`
}

// FlexNumber decodes provider numerics that arrive as bare numbers or as
// strings with thousands separators. Non-finite or unparsable input decodes
// to absent, never to a sentinel.
type FlexNumber struct {
	Value *float64
}

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n.Value = util.CleanNumber(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.Value = util.CleanNumber(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	n.Value = nil
	return nil
}

// FetchSeries returns the minute series and latest quote for one index on a
// basis date. An empty payload yields an empty series with no error; absence
// of data is the caller's signal to try another date.
func (c *Client) FetchSeries(ctx context.Context, index, basisDate string) (models.Series, *models.IndexQuote, error) {
	key := "naver:" + index + ":" + basisDate

	body, hit, err := c.cache.GetBytes(key)
	if err != nil && c.logger != nil {
		c.logger.Warn("cache read failed", applogger.String("key", key), applogger.Error(err))
	}
	if c.metrics != nil {
		if hit {
			c.metrics.RecordCache("naver", "hit")
		} else {
			c.metrics.RecordCache("naver", "miss")
		}
	}
	if !hit {
		params := url.Values{
			"koreaIndexType": {index},
			"thistime":       {basisDate + "160000"},
			"startIdx":       {"0"},
			"pageSize":       {strconv.Itoa(c.pageSize)},
		}
		body, err = c.fetcher.Fetch(ctx, c.baseURL+seriesPath, params)
		if err != nil {
			return models.Series{}, nil, fmt.Errorf("index %s: %w", index, err)
		}
		if cerr := c.cache.SetBytes(key, body, c.ttl); cerr != nil && c.logger != nil {
			c.logger.Warn("cache write failed", applogger.String("key", key), applogger.Error(cerr))
		}
	}

	series, quote, err := parseSeries(index, body)
	if err != nil {
		return models.Series{}, nil, fmt.Errorf("index %s: %w", index, err)
	}
	if quote != nil && c.metrics != nil {
		c.metrics.RecordLastValue(index, quote.Value)
	}
	return series, quote, nil
}

func parseSeries(index string, body []byte) (models.Series, *models.IndexQuote, error) {
	if len(body) == 0 {
		return models.Series{Index: index}, nil, nil
	}

	var rows []indexRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return models.Series{}, nil, fmt.Errorf("decode series: %w", err)
	}
	if len(rows) == 0 {
		return models.Series{Index: index}, nil, nil
	}

	// Providers deliver samples out of order; the aligner expects source
	// order to mean time order, so sort by stamp, stable for duplicates.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ThisTime < rows[j].ThisTime })

	s := models.Series{Index: index, Samples: make([]models.Sample, 0, len(rows))}
	var quote *models.IndexQuote
	for _, r := range rows {
		at, ok := util.ParseCompactStamp(r.ThisTime)
		if !ok {
			continue
		}
		s.Samples = append(s.Samples, models.Sample{At: at, Value: r.NowVal.Value})
		if r.NowVal.Value != nil {
			quote = &models.IndexQuote{
				Index:      index,
				Value:      *r.NowVal.Value,
				Change:     r.ChangeVal.Value,
				ChangeRate: r.ChangeRate.Value,
				At:         r.ThisTime,
			}
		}
	}
	return s, quote, nil
}
