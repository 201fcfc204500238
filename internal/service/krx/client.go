// Package krx fetches futures rows filed under a basis date and resolves the
// single nearest-month contract out of them.
package krx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"KIndex/internal/domain/models"
	drepo "KIndex/internal/domain/repository"
	"KIndex/internal/service/cache"
	"KIndex/internal/service/fetch"
	applogger "KIndex/pkg/logger"
)

// Client implements a FuturesSource against the futures-by-date endpoint.
type Client struct {
	fetcher  *fetch.Fetcher
	cache    cache.BytesCache
	baseURL  string
	authKey  string
	resolver *Resolver
	ttl      time.Duration
	metrics  drepo.Metrics
	logger   *applogger.Logger
}

func NewClient(fetcher *fetch.Fetcher, c cache.BytesCache, baseURL, authKey string, resolver *Resolver, ttl time.Duration, m drepo.Metrics, l *applogger.Logger) drepo.FuturesSource {
	return &Client{
		fetcher:  fetcher,
		cache:    c,
		baseURL:  baseURL,
		authKey:  authKey,
		resolver: resolver,
		ttl:      ttl,
		metrics:  m,
		logger:   l,
	}
}

// ResolveContract fetches rows for one basis date and resolves the nearest
// contract. A nil row with nil error means no data or no match for this
// date; the caller moves on to the next candidate.
func (c *Client) ResolveContract(ctx context.Context, basisDate string) (*models.ContractRow, error) {
	key := "krx:" + basisDate

	body, hit, err := c.cache.GetBytes(key)
	if err != nil && c.logger != nil {
		c.logger.Warn("cache read failed", applogger.String("key", key), applogger.Error(err))
	}
	if c.metrics != nil {
		if hit {
			c.metrics.RecordCache("krx", "hit")
		} else {
			c.metrics.RecordCache("krx", "miss")
		}
	}
	if !hit {
		params := url.Values{
			"authKey": {c.authKey},
			"basDd":   {basisDate},
		}
		body, err = c.fetcher.Fetch(ctx, c.baseURL, params)
		if err != nil {
			return nil, fmt.Errorf("futures %s: %w", basisDate, err)
		}
		if cerr := c.cache.SetBytes(key, body, c.ttl); cerr != nil && c.logger != nil {
			c.logger.Warn("cache write failed", applogger.String("key", key), applogger.Error(cerr))
		}
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("futures %s: decode: %w", basisDate, err)
	}

	rows := ExtractRows(v)
	if len(rows) == 0 {
		return nil, nil
	}

	serial, err := basisSerial(basisDate)
	if err != nil {
		return nil, fmt.Errorf("futures %s: %w", basisDate, err)
	}
	return c.resolver.Resolve(rows, serial), nil
}

func basisSerial(basisDate string) (int, error) {
	if len(basisDate) != 8 {
		return 0, fmt.Errorf("bad basis date %q", basisDate)
	}
	year, err := strconv.Atoi(basisDate[:4])
	if err != nil {
		return 0, fmt.Errorf("bad basis date %q", basisDate)
	}
	month, err := strconv.Atoi(basisDate[4:6])
	if err != nil || month < 1 || month > 12 {
		return 0, fmt.Errorf("bad basis date %q", basisDate)
	}
	return SerialOf(year, month), nil
}
