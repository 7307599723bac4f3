package auth

type ClaimsData struct {
	Issuer    string
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Role      string
	ExpiresAt int64
	IssuedAt  int64
	TokenType string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
