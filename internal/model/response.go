package model

// DataResponse is the standard envelope for successful list and item
// endpoints.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Count   *int        `json:"count,omitempty"`
}

// ErrorResponse is the standard envelope for failures. Code carries an
// optional machine-readable reason (e.g. "token_expired") when the client
// needs to distinguish failures beyond the HTTP status.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// LoginResponse is the payload returned by a successful admin login.
// ExpiresIn echoes the token TTL in seconds so the client can pre-expire
// local state without decoding the token.
type LoginResponse struct {
	Success   bool        `json:"success"`
	Admin     PublicAdmin `json:"admin"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"`
}
