package dtos

// Used by both /register and /login. On login Username may hold an email.
// Pointers make "required" mean present; an empty string is a value.
type CredentialsRequest struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
	Email    *string `json:"email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type ProfileResponse struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

type ChatRequest struct {
	UserInput *string `json:"user_input" binding:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ExtractResponse struct {
	Text    string `json:"text"`
	Warning string `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
