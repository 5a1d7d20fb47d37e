package validation

import (
	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
)

// ValidateCreateActivity validates an activity log request. Unknown category and
// type pairs are accepted and simply emit nothing.
//
// Required fields:
//   - activity_type, category: non-blank
//   - value: a non-negative number
func ValidateCreateActivity(req request.CreateActivityRequest) error {
	return fromOzzo(ozzo.ValidateStruct(&req,
		ozzo.Field(&req.ActivityType, ozzo.Required, ozzo.Length(1, 50)),
		ozzo.Field(&req.Category, ozzo.Required, ozzo.Length(1, 50)),
		ozzo.Field(&req.Value, ozzo.NotNil, ozzo.Min(0.0)),
		ozzo.Field(&req.Unit, ozzo.Length(0, 20)),
		ozzo.Field(&req.Description, ozzo.Length(0, 500)),
	))
}
