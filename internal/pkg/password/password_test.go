package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("supersecreta1")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecreta1", hash)

	assert.True(t, Verify("supersecreta1", hash))
	assert.False(t, Verify("otra-clave", hash))
	assert.False(t, Verify("supersecreta1", "no-es-un-hash"))
}

func TestValidateMinLength(t *testing.T) {
	assert.False(t, Validate(""))
	assert.False(t, Validate("corta12"))
	assert.True(t, Validate("justo123"))
	assert.True(t, Validate("una contraseña bastante larga"))
}

func TestHashTokenEsDeterminista(t *testing.T) {
	a := HashToken("refresh-token-abc")
	b := HashToken("refresh-token-abc")
	c := HashToken("refresh-token-xyz")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestGenerateTemporary(t *testing.T) {
	uno := GenerateTemporary()
	dos := GenerateTemporary()

	assert.Len(t, uno, 16)
	assert.NotEqual(t, uno, dos)
	assert.True(t, Validate(uno))
}
