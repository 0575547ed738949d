package model

import "time"

// Store represents a row of the `stores` table.  A store may exist without
// an assigned owner (admin-created), so OwnerID is a pointer.
type Store struct {
	ID        uint64    // stores.id
	Name      string    // stores.name
	Email     string    // stores.email
	Address   string    // stores.address
	OwnerID   *uint64   // stores.owner_id (nullable)
	CreatedAt time.Time // stores.created_at
	UpdatedAt time.Time // stores.updated_at
}

// OwnedBy reports whether the store belongs to the given user.  An
// ownerless store is owned by nobody, so this is always false for it.
func (s *Store) OwnedBy(userID uint64) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}
