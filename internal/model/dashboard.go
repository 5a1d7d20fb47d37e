package model

// Insight is a short ranked observation shown on the dashboard.
type Insight struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Period is the inclusive date range a dashboard covers.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// KPIs are the headline figures for the current custom month.
// All monetary values are rounded to two decimal places.
type KPIs struct {
	CurrentBalance float64 `json:"current_balance"`
	MonthIncome    float64 `json:"month_income"`
	MonthExpense   float64 `json:"month_expense"`
	SavingsRate    float64 `json:"savings_rate"`
	Currency       string  `json:"currency"`
}

// DashboardResponse is the payload of the dashboard data endpoint.
type DashboardResponse struct {
	Period       Period             `json:"period"`
	DailyData    map[string]float64 `json:"daily_data"`
	CategoryData map[string]float64 `json:"category_data"`
	KPIs         KPIs               `json:"kpis"`
}
