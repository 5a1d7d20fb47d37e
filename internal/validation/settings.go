package validation

import (
	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
)

// ValidateUpdateSettings validates a settings update. Blank fields mean "keep"
// and are not checked. month_start_day is never rejected here: out of range or
// malformed values are dropped by the service.
func ValidateUpdateSettings(req request.UpdateSettingsRequest) error {
	return fromOzzo(ozzo.ValidateStruct(&req,
		ozzo.Field(&req.Username, ozzo.Length(3, 80)),
		ozzo.Field(&req.Email, ozzo.Length(0, 120), is.EmailFormat),
		ozzo.Field(&req.CurrencyCode, ozzo.Length(3, 3), is.Alpha),
		ozzo.Field(&req.NewPassword, ozzo.Length(MinPasswordLength, 0)),
	))
}
