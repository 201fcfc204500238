package models

// ContractRow is the single resolved futures record for one basis date.
// Produced per resolution call, never persisted beyond the cache TTL.
type ContractRow struct {
	ContractMonth   string   `json:"contractMonth"` // YYYYMM
	AsOfDate        string   `json:"asOfDate"`
	Name            string   `json:"name"`
	SettlementPrice *float64 `json:"settlementPrice,omitempty"`
	PriceDelta      *float64 `json:"priceDelta,omitempty"`
	ProductLabel    string   `json:"productLabel"`
	SessionLabel    string   `json:"sessionLabel"`
}

// FuturesSnapshot is the resolved nearest-month contract plus search
// diagnostics.
type FuturesSnapshot struct {
	BasisDate  string       `json:"basisDate"`
	Row        *ContractRow `json:"row,omitempty"`
	TriedDates []string     `json:"triedDates,omitempty"`
}

// FetchAttempt is a per-attempt diagnostic record. It never drives control
// flow beyond fallback ordering.
type FetchAttempt struct {
	Profile string `json:"profile"`
	Timeout string `json:"timeout"`
	Outcome string `json:"outcome"` // success, httpError, transportError
	Status  int    `json:"status,omitempty"`
}
