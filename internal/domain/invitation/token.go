package invitation

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the signed payload embedded in invitation links.
type TokenClaims struct {
	InvitationID string `json:"invitation_id"`
	NPOID        string `json:"npo_id"`
	Email        string `json:"email"`
	jwt.RegisteredClaims
}

// SignToken mints the invitation token delivered by email.
func SignToken(inv *Invitation, key string) (string, error) {
	claims := TokenClaims{
		InvitationID: inv.ID.String(),
		NPOID:        inv.NPOID.String(),
		Email:        inv.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(inv.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			Subject:   inv.Email,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

// ParseToken validates the signature and expiry and returns the invitation id.
func ParseToken(tokenString, key string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(key), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse invitation token: %w", err)
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid invitation token")
	}
	id, err := uuid.Parse(claims.InvitationID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid invitation id in token: %w", err)
	}
	return id, nil
}
