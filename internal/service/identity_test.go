package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeIdentity(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		for _, token := range []*string{nil, strPtr("")} {
			id := NormalizeIdentity(token)
			assert.True(t, id.Guest())
			assert.False(t, id.Foreign())
			assert.Empty(t, id.Token)
		}
	})

	t.Run("internal id", func(t *testing.T) {
		token := "3F2504E0-4F89-11D3-9A0C-0305E82C3301"
		id := NormalizeIdentity(strPtr(token))
		require.NotNil(t, id.UserID)
		assert.Equal(t, token, *id.UserID)
		assert.Equal(t, token, id.Token)
		assert.False(t, id.Guest())
		assert.False(t, id.Foreign())
	})

	t.Run("foreign token", func(t *testing.T) {
		for _, token := range []string{
			"user_2xKjA9dLqP0sV7",
			"3f2504e0-4f89-11d3-9a0c-0305e82c330",
			"3f2504e04f8911d39a0c0305e82c3301",
			" 3f2504e0-4f89-11d3-9a0c-0305e82c3301",
			"zf2504e0-4f89-11d3-9a0c-0305e82c3301",
		} {
			id := NormalizeIdentity(strPtr(token))
			assert.Nil(t, id.UserID, token)
			assert.True(t, id.Foreign(), token)
			assert.Equal(t, token, id.Token)
		}
	})
}
