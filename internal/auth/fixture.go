package auth

// Fixture holds the fixed credential and token material the mock
// serves. Values come from configuration at startup and never change
// during the process lifetime.
type Fixture struct {
	ClientID     string
	ClientSecret string
	AuthCode     string
	AccessToken  string
	RefreshToken string
	RedirectURI  string
}
