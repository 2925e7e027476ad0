package clean

import "example.com/mod/store"

// Len reads the store of another package without locking.
func Len(s *store.Store) int {
	return s.Len()
}
