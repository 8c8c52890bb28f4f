// File: editor/singleton.go
package editor

import (
	"sort"
	"sync"
)

// Singleton is the editing workspace for a resource that is a single
// object rather than a list (the contact page). Updates are copy-on-write:
// the mutate function receives and returns the value by copy.
type Singleton[T any] struct {
	mu        sync.Mutex
	value     T
	loaded    bool
	uploading map[int]bool
}

// NewSingleton creates an empty singleton workspace.
func NewSingleton[T any]() *Singleton[T] {
	return &Singleton[T]{uploading: make(map[int]bool)}
}

// Load replaces the value.
func (s *Singleton[T]) Load(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.loaded = true
	s.uploading = make(map[int]bool)
}

// Loaded reports whether Load has run.
func (s *Singleton[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Value returns a copy of the current value.
func (s *Singleton[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Update replaces the value with mutate(value).
func (s *Singleton[T]) Update(mutate func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = mutate(s.value)
}

// SetUploading marks an upload in flight for a sub-record index (a
// coordinator row on the contact page).
func (s *Singleton[T]) SetUploading(index int, inFlight bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inFlight {
		s.uploading[index] = true
		return
	}
	delete(s.uploading, index)
}

// Uploading reports whether an upload is in flight for index.
func (s *Singleton[T]) Uploading(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading[index]
}

// UploadingIndices returns the sub-record indices with uploads in flight,
// sorted so state responses are stable.
func (s *Singleton[T]) UploadingIndices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	indices := make([]int, 0, len(s.uploading))
	for i := range s.uploading {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}
