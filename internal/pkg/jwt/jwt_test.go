package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimsFromContext(t *testing.T) {
	auth := NewAuth("test-secret")
	token, _, err := auth.Encode(map[string]interface{}{
		"user_id":     "u-1",
		"employee_id": "emp-1",
		"role":        "hr",
		"type":        "access",
	})
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)

	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, RoleHR, claims.Role)
	assert.True(t, claims.Role.CanManagePayroll())
	assert.Equal(t, "u-1", claims.Actor())
}

func TestClaimsFromContext_Missing(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.ErrorIs(t, err, ErrMissingClaims)
}

func TestRole_CanManagePayroll(t *testing.T) {
	assert.False(t, RoleEmployee.CanManagePayroll())
	assert.False(t, RoleManager.CanManagePayroll())
	assert.True(t, RoleOwner.CanManagePayroll())
}
