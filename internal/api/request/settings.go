package request

import (
	"encoding/json"
	"strconv"
	"strings"
)

// UpdateSettingsRequest is the request body for updating profile settings.
// Every field is optional; blank strings leave the stored value unchanged.
type UpdateSettingsRequest struct {
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	CurrencyCode    string   `json:"currency_code"`
	MonthStartDay   LooseInt `json:"month_start_day"`
	NewPassword     string   `json:"new_password"`
	ConfirmPassword string   `json:"confirm_password"`
}

// LooseInt accepts a JSON number or numeric string. Anything else, including
// null, decodes without error and leaves Valid false.
type LooseInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LooseInt) UnmarshalJSON(data []byte) error {
	*l = LooseInt{}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		if v == float64(int(v)) {
			l.Value, l.Valid = int(v), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			l.Value, l.Valid = n, true
		}
	}
	return nil
}
