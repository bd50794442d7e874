package domain

import "time"

// TokenTypeBearer is the only token type issued by the service.
const TokenTypeBearer = "bearer"

// Claims is the payload carried inside an access token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Token is returned by a successful login. It is never stored server-side.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
