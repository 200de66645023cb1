package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/akosarev/taskvault/internal/common"
)

// Claims is the signed token payload: the user's ID plus the intent ("access")
// string describing what the token is for.
//
// Tokens deliberately carry no expiry claim: a token stays valid until it is
// removed from the user's session list, and revocation is the only way to
// invalidate one.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Access string `json:"access"`
}

// IssueToken signs a token binding userID and the access intent with the
// server-held secret (HS256). Each token carries a random jti, so two logins
// for the same user always produce distinct session entries.
func IssueToken(userID, access string, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID: uuid.NewString(),
		},
		UserID: userID,
		Access: access,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the token signature against secretKey and returns the
// embedded user ID and access intent. Any decode error, wrong algorithm, or
// signature mismatch yields common.ErrInvalidToken; there is no partial
// acceptance.
func ParseToken(tokenString string, secretKey []byte) (userID, access string, err error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", "", common.ErrInvalidToken
	}

	return claims.UserID, claims.Access, nil
}
