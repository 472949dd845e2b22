package utils

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// Session is the authenticated caller, resolved by the auth middleware and
// stored in the request context. Handlers must go through GetSession rather
// than reading claims directly, so nothing acts on an undetermined auth
// state.
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// IsAdmin reports whether the session belongs to the admin account.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// GetSession returns the request session, failing closed when the auth
// middleware has not run.
func GetSession(c *gin.Context) (*Session, error) {
	value, exists := c.Get("session")
	if !exists {
		return nil, fmt.Errorf("no session in request context")
	}

	session, ok := value.(*Session)
	if !ok || session.ID == "" || session.Role == "" {
		return nil, fmt.Errorf("malformed session in request context")
	}

	return session, nil
}

// SessionFromClaims builds a Session out of verified JWT claims.
func SessionFromClaims(claims jwt.MapClaims) (*Session, error) {
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("token missing id claim")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("token missing role claim")
	}

	name, _ := claims["name"].(string)

	return &Session{ID: id, Name: name, Role: role}, nil
}
