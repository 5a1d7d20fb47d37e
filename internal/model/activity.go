package model

import "time"

// Activity is a logged carbon-emitting action such as a car trip or a meal.
type Activity struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	ActivityType   string    `json:"activity_type"`
	Category       string    `json:"category"`
	Value          float64   `json:"value"`
	Unit           string    `json:"unit"`
	CarbonEmission float64   `json:"carbon_emission"`
	Date           time.Time `json:"-"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"-"`
}

// ActivityResponse is the API representation of an activity.
type ActivityResponse struct {
	ID             string  `json:"id"`
	ActivityType   string  `json:"activity_type"`
	Category       string  `json:"category"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	CarbonEmission float64 `json:"carbon_emission"`
	Date           string  `json:"date"`
	Description    string  `json:"description"`
}

// NewActivityResponse converts an Activity into its API shape.
func NewActivityResponse(a Activity) ActivityResponse {
	return ActivityResponse{
		ID:             a.ID,
		ActivityType:   a.ActivityType,
		Category:       a.Category,
		Value:          a.Value,
		Unit:           a.Unit,
		CarbonEmission: a.CarbonEmission,
		Date:           a.Date.Format(DateLayout),
		Description:    a.Description,
	}
}

// CarbonFactors maps activity category -> activity type -> kg CO2 per unit.
var CarbonFactors = map[string]map[string]float64{
	"transport": {
		"car":   0.2,
		"bus":   0.05,
		"train": 0.04,
		"plane": 0.25,
		"bike":  0.0,
		"walk":  0.0,
	},
	"electricity": {
		"kwh": 0.5,
	},
	"food": {
		"beef":       13.3,
		"chicken":    2.9,
		"fish":       3.0,
		"vegetables": 0.2,
		"fruits":     0.3,
		"dairy":      1.4,
	},
	"waste": {
		"kg": 0.5,
	},
}

// CarbonEmission returns the emission for value units of the given activity.
// Unknown category/type pairs emit nothing.
func CarbonEmission(category, activityType string, value float64) float64 {
	factors, ok := CarbonFactors[category]
	if !ok {
		return 0
	}
	factor, ok := factors[activityType]
	if !ok {
		return 0
	}
	return value * factor
}
