package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasherDeterministic(t *testing.T) {
	h := NewHasher("secret")
	d1 := h.Hash("Secret1")
	d2 := h.Hash("Secret1")
	assert.Equal(t, d1, d2)
	assert.NotEmpty(t, d1)
}

func TestHasherNeverStoresPlaintext(t *testing.T) {
	h := NewHasher("secret")
	digest := h.Hash("Secret1")
	assert.NotEqual(t, "Secret1", digest)
	assert.NotContains(t, digest, "Secret1")
}

func TestHasherCompare(t *testing.T) {
	h := NewHasher("secret")
	digest := h.Hash("Secret1")
	assert.True(t, h.Compare(digest, "Secret1"))
	assert.False(t, h.Compare(digest, "Secret2"))
	assert.False(t, h.Compare(digest, ""))
}

func TestHasherSecretChangesDigest(t *testing.T) {
	a := NewHasher("secret-a")
	b := NewHasher("secret-b")
	require.NotEqual(t, a.Hash("Secret1"), b.Hash("Secret1"))
}
