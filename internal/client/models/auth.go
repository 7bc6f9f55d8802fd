package models

// LoginRequest is the body of POST /api/auth/login/.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success payload of the login endpoint. Token is the
// opaque credential the client attaches to subsequent requests; its contents
// are never inspected client-side.
type LoginResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}
