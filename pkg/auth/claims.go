package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Usuario string
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to the operator client.
type AccessTokenClaims struct {
	Usuario string `json:"usuario"`
	jwt.RegisteredClaims
}
