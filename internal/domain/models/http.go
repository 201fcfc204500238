package models

// DashboardRequest selects the basis date for the index dashboard.
// Date is optional; empty means "today" in market-local time.
type DashboardRequest struct {
	Date string `query:"date" json:"date" validate:"omitempty,len=8,numeric"`
}

// FuturesRequest selects the basis date for contract resolution.
type FuturesRequest struct {
	Date string `query:"date" json:"date" validate:"omitempty,len=8,numeric"`
}
