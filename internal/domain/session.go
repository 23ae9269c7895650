package domain

// User is the profile returned by the accounts API on sign-in.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// SessionState is the client-held authentication record.
// IsLoggedIn is true only when both User and Token are present.
type SessionState struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	User       *User  `json:"user"`
	Token      string `json:"token,omitempty"`
}
