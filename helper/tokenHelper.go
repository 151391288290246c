package helper

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SignedDetails struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

const tokenLifetime = 20 * time.Hour

func secretKey() []byte {
	return []byte(os.Getenv("SECRET_KEY"))
}

// GenerateToken creates a signed JWT carrying the user's email
func GenerateToken(email string) (string, error) {
	claims := &SignedDetails{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken checks if a JWT is valid and not expired
func ValidateToken(signedToken string) (*SignedDetails, string) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return secretKey(), nil
		},
	)

	if err != nil {
		return nil, fmt.Sprintf("token parsing error: %v", err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, "the token is invalid"
	}

	// jwt/v5 only checks exp when the claim is present; a signed token
	// without one must not pass
	if claims.ExpiresAt == nil {
		return nil, "the token is invalid"
	}

	if claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, "token is expired"
	}

	return claims, ""
}
