package bookingcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Format(t *testing.T) {
	code, err := New()
	require.NoError(t, err)
	assert.True(t, Valid(code), code)
	assert.Len(t, code, 12)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("RES-0A1B2C3D"))
	assert.False(t, Valid("RES-0a1b2c3d"))
	assert.False(t, Valid("RES-0A1B2C3"))
	assert.False(t, Valid("BKG-0A1B2C3D"))
}
