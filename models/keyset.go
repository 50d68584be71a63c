package models

// KeySet tracks the catalog identifiers selected by the product pass.
// It preserves first-insertion order so the emitted key list lines up with
// the product table. It is built once, then used read-only during pass 2;
// the pipeline is single-threaded so no locking is involved.
type KeySet struct {
	order []string
	seen  map[string]struct{}
}

// NewKeySet creates an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *KeySet) Add(key string) bool {
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, key)
	return true
}

// Contains returns true if the key is in the set.
func (s *KeySet) Contains(key string) bool {
	_, exists := s.seen[key]
	return exists
}

// Size returns the number of unique keys tracked.
func (s *KeySet) Size() int {
	return len(s.seen)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (s *KeySet) Keys() []string {
	return s.order
}
