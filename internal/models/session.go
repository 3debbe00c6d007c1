package models

// Session identifies the authenticated local user. Immutable for the
// lifetime of a connection; a new token means a new session and a new
// connection.
type Session struct {
	UserID ID
	Name   string
	Email  string
	Group  int
	Token  string
}

// AuthResponse is the login/register response body.
type AuthResponse struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Group int    `json:"group"`
	Token string `json:"token"`
}

// Session converts an auth response into a Session.
func (r AuthResponse) Session() Session {
	return Session{
		UserID: r.ID,
		Name:   r.Name,
		Email:  r.Email,
		Group:  r.Group,
		Token:  r.Token,
	}
}
