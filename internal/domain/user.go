package domain

// User is a profile known to the client.
// Online is derived from presence events and may be stale.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
	Online bool   `json:"online"`
}
