package model

import "time"

// DateLayout is the calendar date format used in storage and on the wire.
const DateLayout = "2006-01-02"

// User represents a registered account together with its finance preferences
// and carbon tracking state.
type User struct {
	ID                   string
	Username             string
	Email                string
	PasswordHash         string
	CreatedAt            time.Time
	TotalCarbonFootprint float64
	StreakDays           int
	LastActivityDate     *time.Time
	CurrencyCode         string
	MonthStartDay        int
}

// UserSettings is the profile view returned by the settings endpoint.
type UserSettings struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	CurrencyCode  string `json:"currency_code"`
	MonthStartDay int    `json:"month_start_day"`
}

// LeaderboardEntry is a single row in the carbon footprint leaderboard.
type LeaderboardEntry struct {
	Username       string  `json:"username"`
	TotalFootprint float64 `json:"total_footprint"`
	StreakDays     int     `json:"streak_days"`
}

// OffsetEstimate describes how much offsetting a footprint would need.
type OffsetEstimate struct {
	TreesNeeded    float64 `json:"trees_needed"`
	CarbonCredits  float64 `json:"carbon_credits"`
	TotalFootprint float64 `json:"total_footprint"`
}
