package validation

import (
	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
)

// ValidateRegister validates an account registration request.
//
// Required fields:
//   - username: 3 to 80 characters
//   - email: a valid address
//   - password: at least MinPasswordLength characters
func ValidateRegister(req request.RegisterRequest) error {
	return fromOzzo(ozzo.ValidateStruct(&req,
		ozzo.Field(&req.Username, ozzo.Required, ozzo.Length(3, 80)),
		ozzo.Field(&req.Email, ozzo.Required, ozzo.Length(0, 120), is.EmailFormat),
		ozzo.Field(&req.Password, ozzo.Required, ozzo.Length(MinPasswordLength, 0)),
	))
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(req request.LoginRequest) error {
	return fromOzzo(ozzo.ValidateStruct(&req,
		ozzo.Field(&req.Username, ozzo.Required),
		ozzo.Field(&req.Password, ozzo.Required),
	))
}
