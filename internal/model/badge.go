package model

import "time"

// Badge requirement types.
const (
	RequirementStreakDays      = "streak_days"
	RequirementTotalActivities = "total_activities"
	RequirementLowFootprint    = "low_footprint"
)

// Badge is an achievement that users earn once.
type Badge struct {
	ID               string `json:"id" yaml:"-"`
	Name             string `json:"name" yaml:"name"`
	Description      string `json:"description" yaml:"description"`
	Icon             string `json:"icon" yaml:"icon"`
	RequirementType  string `json:"requirement_type" yaml:"requirement_type"`
	RequirementValue int    `json:"requirement_value" yaml:"requirement_value"`
}

// EarnedBadge is a badge together with the moment a user earned it.
type EarnedBadge struct {
	Badge
	EarnedAt time.Time
}

// EarnedBadgeResponse is the API representation of an earned badge.
type EarnedBadgeResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	EarnedAt    string `json:"earned_at"`
}

// BadgeProgress is the state a badge requirement is evaluated against.
type BadgeProgress struct {
	StreakDays      int
	TotalActivities int
	TotalFootprint  float64
}

// Satisfied reports whether the progress meets the badge requirement.
func (b Badge) Satisfied(p BadgeProgress) bool {
	switch b.RequirementType {
	case RequirementStreakDays:
		return p.StreakDays >= b.RequirementValue
	case RequirementTotalActivities:
		return p.TotalActivities >= b.RequirementValue
	case RequirementLowFootprint:
		return p.TotalFootprint <= float64(b.RequirementValue)
	default:
		return false
	}
}
