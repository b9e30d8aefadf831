package session

import "errors"

var (
	ErrMissingSessionID = errors.New("session id required")
	ErrInvalidCookie    = errors.New("invalid session cookie")
)

// User is the admin identity reported by the backend.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Session is either Anonymous or Authenticated.
type Session interface {
	isSession()
}

type Anonymous struct{}

// Authenticated carries the verified user and the backend credential that
// admin calls forward.
type Authenticated struct {
	User  User
	Token string
}

func (Anonymous) isSession()     {}
func (Authenticated) isSession() {}

// Identity is the backend's authentication surface.
type Identity interface {
	Me(token string) (User, error)
	ExchangeSession(sessionID string) (User, string, error)
	Logout(token string) error
}
