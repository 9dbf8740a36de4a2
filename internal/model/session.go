package model

// Credentials is a login submission.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the authentication response of the backend.
type LoginResult struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Token     string `json:"token"`
}

// Identity describes the authenticated user as shown in the UI.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Session is the authenticated state: either both fields are set or both are
// empty. Callers that set one must set the other.
type Session struct {
	User  *Identity `json:"user"`
	Token string    `json:"token"`
}

// LoggedIn reports whether the session holds an authenticated identity.
func (s Session) LoggedIn() bool {
	return s.User != nil && s.Token != ""
}
