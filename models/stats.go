package models

// RankEntry is one row of a frequency ranking.
type RankEntry struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Total float64 `json:"total,omitempty"`
}

// TravelStats summarises a filtered travel set. Truncated is set when the
// set exceeded the scan limit.
type TravelStats struct {
	Total              int                  `json:"total"`
	ByStatus           map[TravelStatus]int `json:"byStatus"`
	ByType             map[TravelType]int   `json:"byType"`
	TotalBudget        float64              `json:"totalBudget"`
	BudgetByCurrency   map[string]float64   `json:"budgetByCurrency"`
	TopCountries       []RankEntry          `json:"topCountries"`
	RatedCount         int                  `json:"ratedCount"`
	AverageRating      float64              `json:"averageRating"`
	TotalPlannedDays   int                  `json:"totalPlannedDays"`
	ItineraryCount     int                  `json:"itineraryCount"`
	BookingCount       int                  `json:"bookingCount"`
	DailyActivityCount int                  `json:"dailyActivityCount"`
	Truncated          bool                 `json:"truncated"`
}

// MonthBucket sums document totals of one calendar month (YYYY-MM) per currency.
type MonthBucket struct {
	Month      string             `json:"month"`
	Count      int                `json:"count"`
	ByCurrency map[string]float64 `json:"byCurrency"`
}

type DocumentStats struct {
	Total           int                `json:"total"`
	TotalByCurrency map[string]float64 `json:"totalByCurrency"`
	TopVendors      []RankEntry        `json:"topVendors"`
	Currencies      []RankEntry        `json:"currencies"`
	ByCategory      map[string]int     `json:"byCategory"`
	Monthly         []MonthBucket      `json:"monthly"`
	Undated         int                `json:"undated"`
}
