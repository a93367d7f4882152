package models

// User is the minimal profile the client keeps alongside the token.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session pairs the opaque bearer token with the profile returned by
// the identity endpoint. Token presence implies "authenticated" for
// routing purposes; no local expiry check is performed.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
