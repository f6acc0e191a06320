package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const principalKey = "principal"

// Principal is the authenticated caller, as carried by the session token.
type Principal struct {
	UserID   uuid.UUID
	Role     string
	ClientID *uuid.UUID
}

func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
	c.Set("user_id", p.UserID.String())
	c.Set("role", p.Role)
}

func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func PrincipalFromClaims(claims *Claims) (Principal, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Principal{}, err
	}
	p := Principal{UserID: userID, Role: claims.Role}
	if claims.ClientID != "" {
		clientID, err := uuid.Parse(claims.ClientID)
		if err != nil {
			return Principal{}, err
		}
		p.ClientID = &clientID
	}
	return p, nil
}
