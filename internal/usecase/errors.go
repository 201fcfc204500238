package usecase

import (
	"fmt"
	"strings"
)

// NoDataError is surfaced only after every basis-date candidate has been
// tried. It keeps the candidate list so the failure can be debugged without
// re-running the search.
type NoDataError struct {
	Op        string
	Requested string
	Tried     []string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("%s: no data for %s (tried %s)", e.Op, e.Requested, strings.Join(e.Tried, ", "))
}
