package fetch

import (
	"fmt"
	"strings"

	"KIndex/internal/domain/models"
)

// bodyPreviewLen caps how much of a failing response body is kept for
// diagnostics.
const bodyPreviewLen = 300

// Failure is raised only after every profile/timeout combination and the
// subprocess fallback have been exhausted. It keeps enough detail for
// post-hoc debugging without re-running the request.
type Failure struct {
	URL         string
	LastStatus  int
	BodyPreview string
	LastErr     error
	FallbackErr error
	Attempts    []models.FetchAttempt
}

func (e *Failure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fetch %s failed after %d attempts", e.URL, len(e.Attempts))
	if e.LastStatus != 0 {
		fmt.Fprintf(&b, "; last status %d body %q", e.LastStatus, e.BodyPreview)
	}
	if e.LastErr != nil {
		fmt.Fprintf(&b, "; last error: %v", e.LastErr)
	}
	if e.FallbackErr != nil {
		fmt.Fprintf(&b, "; fallback: %v", e.FallbackErr)
	}
	return b.String()
}

func (e *Failure) Unwrap() error { return e.LastErr }

func preview(b []byte) string {
	if len(b) > bodyPreviewLen {
		b = b[:bodyPreviewLen]
	}
	return string(b)
}
