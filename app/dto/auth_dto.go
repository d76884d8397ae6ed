// Package dto contains data transfer objects for API requests and responses with validation tags
package dto

// SignupRequest represents the account creation request payload
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// AccountDTO is the public view of a player account. The password hash
// never crosses this boundary.
type AccountDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	Balance   int64  `json:"money"`
	CreatedAt string `json:"created_at"`
}

// SignupResponse represents the account creation response payload.
// Signup implies login, so a fresh session token is included.
type SignupResponse struct {
	Account      AccountDTO `json:"account"`
	SessionToken string     `json:"session_token"`
}

// LoginResponse represents the login response payload. The session
// token also travels in a cookie; it is repeated here for non-browser
// clients.
type LoginResponse struct {
	Account      AccountDTO `json:"account"`
	SessionToken string     `json:"session_token"`
}

// LogoutResponse represents the logout response payload. Removed is
// false when the token was unknown or already dropped.
type LogoutResponse struct {
	Message string `json:"message"`
	Removed bool   `json:"removed"`
}
