package model

import "github.com/shopspring/decimal"

// CategorySummary is one row of the assets-by-category report.
type CategorySummary struct {
	Category  string          `json:"category"`
	Total     int64           `json:"total"`
	Available int64           `json:"available"`
	Assigned  int64           `json:"assigned"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// MonthlyRequestStats aggregates request activity for one calendar month
// across all three request variants.
type MonthlyRequestStats struct {
	Month            string `json:"month"` // YYYY-MM
	VacationCreated  int64  `json:"vacation_created"`
	VacationApproved int64  `json:"vacation_approved"`
	VacationRejected int64  `json:"vacation_rejected"`
	AssetCreated     int64  `json:"asset_created"`
	AssetApproved    int64  `json:"asset_approved"`
	AssetRejected    int64  `json:"asset_rejected"`
	SupplyCreated    int64  `json:"supply_created"`
	SupplyApproved   int64  `json:"supply_approved"`
	SupplyRejected   int64  `json:"supply_rejected"`
}

// MonthlyStatsResponse is the payload of the monthly-stats report endpoint.
type MonthlyStatsResponse struct {
	From   string                `json:"from"`
	To     string                `json:"to"`
	Months []MonthlyRequestStats `json:"months"`
}
