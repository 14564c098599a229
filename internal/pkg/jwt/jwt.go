// Package jwt verifies bearer tokens issued by the HRIS identity service and
// exposes the claims payroll authorization depends on. It never issues tokens.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleOwner    Role = "owner"
)

// CanManagePayroll reports whether the role may run HR-only transitions.
func (r Role) CanManagePayroll() bool {
	return r == RoleHR || r == RoleOwner
}

var (
	ErrMissingClaims     = errors.New("missing authentication claims")
	ErrMissingEmployeeID = errors.New("employee_id claim is missing")
	ErrPayrollRole       = errors.New("payroll administration requires the hr or owner role")
	ErrInvalidTokenType  = errors.New("access token required")
)

type Claims struct {
	UserID     string
	EmployeeID string
	Role       Role
	TokenType  string
}

// NewAuth returns the HS256 verifier shared with the identity service.
func NewAuth(secretKey string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second))
}

// ClaimsFromContext reads the claims jwtauth.Verifier stored in ctx.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMissingClaims, err)
	}
	if token == nil || raw == nil {
		return Claims{}, ErrMissingClaims
	}

	c := Claims{}
	c.UserID, _ = raw["user_id"].(string)
	c.EmployeeID, _ = raw["employee_id"].(string)
	c.TokenType, _ = raw["type"].(string)
	if role, ok := raw["role"].(string); ok {
		c.Role = Role(role)
	}
	return c, nil
}

// Actor returns the identifier recorded on approvals: the user id, or the
// employee id for tokens that carry no user.
func (c Claims) Actor() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.EmployeeID
}
