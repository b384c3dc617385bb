package domain

// TokenPair is the result of a successful sign-in or refresh. Both tokens
// are self-contained JWTs; nothing about them is persisted.
type TokenPair struct {
	Username     string
	AccessToken  string
	RefreshToken string
}
