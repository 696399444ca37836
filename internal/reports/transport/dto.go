package transport

// StatusCount is the number of requests in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// RevenueByMethod is the completed revenue per payment method.
type RevenueByMethod struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

// CityCount is the number of requests per city.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// DailyVolume is the number of requests created per day.
type DailyVolume struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// SummaryResponse is the dashboard summary report.
type SummaryResponse struct {
	TotalRequests int               `json:"totalRequests"`
	TotalRevenue  float64           `json:"totalRevenue"`
	ByStatus      []StatusCount     `json:"byStatus"`
	Revenue       []RevenueByMethod `json:"revenue"`
	ByCity        []CityCount       `json:"byCity"`
	DailyVolume   []DailyVolume     `json:"dailyVolume"`
}
