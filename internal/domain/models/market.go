package models

import "time"

// Sample is one provider observation. Value is nil when the provider returned
// no observation or a non-finite number.
type Sample struct {
	At    time.Time
	Value *float64
}

// Series is an ordered-by-timestamp sequence of samples for one index,
// produced by one fetch. Immutable once returned.
type Series struct {
	Index   string
	Samples []Sample
}

func (s Series) Empty() bool { return len(s.Samples) == 0 }

// AlignedSeries holds one optional value per canonical grid slot.
type AlignedSeries []*float64

// Bounds is a synchronized Y-axis range anchored at the session's first
// observed print.
type Bounds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ExtremePoint is a (grid label, value) pair.
type ExtremePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Extrema carries the session high and low with their grid labels.
type Extrema struct {
	Max ExtremePoint `json:"max"`
	Min ExtremePoint `json:"min"`
}

// IndexQuote is the latest print of one index with its day change fields.
type IndexQuote struct {
	Index      string   `json:"index"`
	Value      float64  `json:"value"`
	Change     *float64 `json:"change,omitempty"`
	ChangeRate *float64 `json:"changeRate,omitempty"`
	At         string   `json:"at"` // compact stamp YYYYMMDDHHMMSS
}

// IndexPanel is one index's display-ready slice of the dashboard.
type IndexPanel struct {
	Index   string        `json:"index"`
	Quote   *IndexQuote   `json:"quote,omitempty"`
	Values  AlignedSeries `json:"values"`
	Bounds  *Bounds       `json:"bounds,omitempty"`
	Extrema *Extrema      `json:"extrema,omitempty"`
}

// DashboardSnapshot is the full per-minute view for one basis date.
type DashboardSnapshot struct {
	BasisDate  string       `json:"basisDate"` // YYYYMMDD actually used
	Requested  string       `json:"requested"` // YYYYMMDD originally asked for
	Grid       []string     `json:"grid"`
	Panels     []IndexPanel `json:"panels"`
	TriedDates []string     `json:"triedDates,omitempty"`
}
