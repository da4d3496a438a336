package customers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	stored, err := HashPassword("brigadeiro123")
	require.NoError(t, err)

	salt64, hash64, ok := strings.Cut(stored, ":")
	require.True(t, ok, "stored form is salt:hash")
	assert.NotEmpty(t, salt64)
	assert.NotEmpty(t, hash64)

	assert.True(t, CheckPassword("brigadeiro123", stored))
	assert.False(t, CheckPassword("brigadeiro124", stored))
	assert.False(t, CheckPassword("", stored))
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	a, err := HashPassword("same secret")
	require.NoError(t, err)
	b, err := HashPassword("same secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, CheckPassword("same secret", a))
	assert.True(t, CheckPassword("same secret", b))
}

func TestCheckPasswordMalformedStored(t *testing.T) {
	for _, stored := range []string{
		"",
		"no-separator",
		"not base64!:QUJD",
		"QUJD:not base64!",
	} {
		assert.False(t, CheckPassword("anything", stored), "stored %q", stored)
	}
}

func TestWhitelist(t *testing.T) {
	w := NewWhitelist([]string{"Admin@Padoca.dev", "  boss@padoca.dev "})

	assert.True(t, w.Allowed("admin@padoca.dev"))
	assert.True(t, w.Allowed("ADMIN@PADOCA.DEV"))
	assert.True(t, w.Allowed("boss@padoca.dev"))
	assert.False(t, w.Allowed("customer@padoca.dev"))
	assert.False(t, w.Allowed(""))
}
