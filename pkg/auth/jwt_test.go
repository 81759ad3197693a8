package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "agendact")

	token, err := v.CreateAccessToken(Claims{Sub: "42", Role: "CT_ADMIN", CenterID: ptr.Ptr(int64(7))}, time.Minute)
	require.NoError(t, err)

	claims, err := v.ParseValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "CT_ADMIN", claims.Role)
	assert.Equal(t, int64(7), *claims.CenterID)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerifier_RejectsForeignSecret(t *testing.T) {
	token, err := NewVerifier("other", "").CreateAccessToken(Claims{Sub: "1", Role: "CLIENT"}, time.Minute)
	require.NoError(t, err)

	_, err = NewVerifier("secret", "").ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifier_RejectsExpired(t *testing.T) {
	v := NewVerifier("secret", "")
	token, err := v.CreateAccessToken(Claims{Sub: "1", Role: "CLIENT"}, -time.Minute)
	require.NoError(t, err)

	_, err = v.ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_UserID_Invalid(t *testing.T) {
	_, err := (&Claims{Sub: "abc"}).UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
