package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "normal_user", "store_owner"} {
		r, ok := ParseRole(s)
		assert.True(t, ok, s)
		assert.Equal(t, s, r.String())
	}
	for _, s := range []string{"", "Admin", "ADMIN", "owner", "root", "normal user"} {
		_, ok := ParseRole(s)
		assert.False(t, ok, s)
	}
}

func TestStoreOwnedBy(t *testing.T) {
	owner := uint64(5)
	s := &Store{ID: 1, Name: "Corner Shop", OwnerID: &owner}

	assert.True(t, s.OwnedBy(5))
	// A different store owner is still not this store's owner.
	assert.False(t, s.OwnedBy(6))

	ownerless := &Store{ID: 2, Name: "Unassigned"}
	assert.False(t, ownerless.OwnedBy(5))
	assert.False(t, ownerless.OwnedBy(0))
}
