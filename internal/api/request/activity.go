package request

// CreateActivityRequest is the request body for logging a carbon activity.
type CreateActivityRequest struct {
	ActivityType string   `json:"activity_type"`
	Category     string   `json:"category"`
	Value        *float64 `json:"value"`
	Unit         string   `json:"unit"`
	Description  string   `json:"description"`
}
