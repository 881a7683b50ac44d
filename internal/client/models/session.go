package models

// SessionData is the persisted part of a vault session. The derived
// encryption key is never part of it.
type SessionData struct {
	Token    string
	Salt     []byte
	Verifier []byte
}

// LoggedIn reports whether the record carries an access token.
func (s SessionData) LoggedIn() bool { return s.Token != "" }
