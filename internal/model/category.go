package model

// Category groups transactions. Global defaults have an empty UserID.
type Category struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Icon      string          `json:"icon,omitempty"`
	Color     string          `json:"color,omitempty"`
	IsDefault bool            `json:"is_default"`
}

// IsGlobal reports whether the category is shared by every user.
func (c Category) IsGlobal() bool {
	return c.UserID == ""
}

// AccessibleBy reports whether userID may attach transactions to the category.
func (c Category) AccessibleBy(userID string) bool {
	return c.IsGlobal() || c.UserID == userID
}
