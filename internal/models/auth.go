package models

// Credentials is the login/register request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token issued by the auth service.
// Additional fields in the response body are ignored.
type LoginResponse struct {
	Token string `json:"token"`
}
