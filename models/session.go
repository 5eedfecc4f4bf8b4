package models

// Session is the authenticated identity together with its bearer token.
// A session is active only while Token is non-empty.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	Token       string `json:"-"`
}

func (s Session) Active() bool {
	return s.Token != ""
}

func (s Session) Identity() Identity {
	return Identity{
		UserID: s.UserID,
		Email:  s.Email,
		Name:   s.DisplayName,
	}
}

func NewSession(identity Identity, token string) Session {
	return Session{
		UserID:      identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.Name,
		Token:       token,
	}
}
