package validation

import (
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
)

// ValidateCreateCategory validates a new custom category.
//
// Required fields:
//   - name: 1 to 50 non-blank characters
//   - type: income or expense
func ValidateCreateCategory(req request.CreateCategoryRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	return fromOzzo(ozzo.ValidateStruct(&req,
		ozzo.Field(&req.Name, ozzo.Required, ozzo.Length(1, 50)),
		ozzo.Field(&req.Type, ozzo.Required, transactionType),
	))
}
