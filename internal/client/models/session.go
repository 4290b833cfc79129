package models

// Session is the credential snapshot held by the session store.
type Session struct {
	Token string
	Role  string
}

// Authenticated reports token presence. A token without a role still counts.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse covers both failure shapes the backend emits.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Text returns the human readable part, preferring error over message.
func (e ErrorResponse) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
