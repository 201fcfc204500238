package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Fallback runs one last attempt through an external HTTP client after the
// primary stack is exhausted.
type Fallback interface {
	Run(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// CurlFallback shells out to curl, which some provider stacks fingerprint
// differently than Go's client.
type CurlFallback struct {
	Path    string
	Timeout time.Duration
}

func NewCurlFallback(path string, timeout time.Duration) *CurlFallback {
	if path == "" {
		path = "curl"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &CurlFallback{Path: path, Timeout: timeout}
}

func (c *CurlFallback) Run(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	args := []string{"-sS", "-L", "--max-time", strconv.Itoa(int(c.Timeout / time.Second))}

	// Sorted so the invocation is deterministic for a given header set.
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-H", k+": "+headers[k])
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("curl: %w (%s)", err, msg)
		}
		return nil, fmt.Errorf("curl: %w", err)
	}

	body := stdout.Bytes()
	if !json.Valid(body) {
		return nil, fmt.Errorf("curl: non-JSON body %q", preview(body))
	}
	return body, nil
}
