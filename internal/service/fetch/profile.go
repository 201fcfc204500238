package fetch

// Profile is one named attempt strategy: a header set plus whether the
// provider root is warmed up first to acquire session cookies. Redirects are
// always handled manually by the fetcher.
type Profile struct {
	Name    string
	Headers map[string]string
	Warmup  bool
}

// DefaultProfiles is the ordered attempt ladder. The first profile mimics a
// desktop browser; the second warms up the provider root with a mobile
// signature to collect cookies; the last is a bare API client for providers
// that dislike browser headers.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name: "desktop",
			Headers: map[string]string{
				"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
				"Accept":          "application/json, text/plain, */*",
				"Accept-Language": "ko-KR,ko;q=0.9,en-US;q=0.8",
				"Referer":         "https://stock.naver.com/",
			},
		},
		{
			Name:   "mobile-warmup",
			Warmup: true,
			Headers: map[string]string{
				"User-Agent":      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1",
				"Accept":          "application/json, text/plain, */*",
				"Accept-Language": "ko-KR,ko;q=0.9",
				"Referer":         "https://m.stock.naver.com/",
			},
		},
		{
			Name: "plain",
			Headers: map[string]string{
				"User-Agent": "kindex/1.0",
				"Accept":     "application/json",
			},
		},
	}
}
