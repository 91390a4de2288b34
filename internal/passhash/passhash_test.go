package passhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash("secret")
	require.NoError(t, err)
	h2, err := Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, strings.HasPrefix(h1, "$2"))
}

func TestVerify_Roundtrip(t *testing.T) {
	h, err := Hash("correct horse")
	require.NoError(t, err)

	assert.True(t, Verify("correct horse", h))
	assert.False(t, Verify("wrong horse", h))
}

func TestVerify_MalformedHashFailsClosed(t *testing.T) {
	for _, bad := range []string{"", "not-a-valid-hash", "$2a$zz$garbage"} {
		assert.False(t, Verify("anything", bad), "hash %q", bad)
	}
}
