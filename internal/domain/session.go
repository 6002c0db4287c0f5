package domain

import "time"

// Session is a logged-in identity, user or admin. Exactly one session is
// active per store; the persisted copy is the source of truth.
type Session struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName,omitempty"`
	Role        string    `json:"role,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
	// Offline marks a session synthesized locally because the backend
	// could not be reached during login.
	Offline   bool      `json:"offline,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Valid is the hydration check: a persisted session without an id and
// username is treated as corrupt and cleared.
func (s Session) Valid() bool {
	return s.ID != 0 && s.Username != ""
}

// User is a backend account record as returned by /users/.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
