package request

// RegisterRequest is the request body for creating an account. All fields are required.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for starting a session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
