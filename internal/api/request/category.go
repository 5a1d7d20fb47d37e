package request

// CreateCategoryRequest is the request body for creating a custom category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
