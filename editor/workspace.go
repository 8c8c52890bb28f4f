// Package editor holds the in-memory editing workspace for one resource
// collection. Nothing here touches the network: records are loaded once,
// mutated copy-on-write, and only replaced wholesale when a commit succeeds.
// File: editor/workspace.go
package editor

import (
	"errors"
	"sort"
	"sync"
)

// ErrIndexOutOfRange is returned for operations addressing a record that
// does not exist.
var ErrIndexOutOfRange = errors.New("record index out of range")

// Workspace is the editable state for one resource collection in one admin
// session. T is the record type; id extracts its client-generated id.
type Workspace[T any] struct {
	mu         sync.Mutex
	items      []T
	selectedID string
	visible    func(T) bool // nil means no filter
	uploading  map[string]bool
	id         func(T) string
}

// New creates an empty workspace for records identified by id.
func New[T any](id func(T) string) *Workspace[T] {
	return &Workspace[T]{
		uploading: make(map[string]bool),
		id:        id,
	}
}

// ---------------- loading and reading ----------------

// Load replaces the workspace contents and selects the first record.
// Callers normalize records (default backfill) before loading.
func (w *Workspace[T]) Load(items []T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append([]T(nil), items...)
	w.uploading = make(map[string]bool)
	w.selectedID = ""
	if len(w.items) > 0 {
		w.selectedID = w.id(w.items[0])
	}
}

// Items returns a copy of the collection. The copy is what gets serialized
// into a commit payload, so an in-flight request is never affected by later
// edits.
func (w *Workspace[T]) Items() []T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]T(nil), w.items...)
}

// Len returns the number of records.
func (w *Workspace[T]) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Get returns the record at index.
func (w *Workspace[T]) Get(index int) (T, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var zero T
	if index < 0 || index >= len(w.items) {
		return zero, ErrIndexOutOfRange
	}
	return w.items[index], nil
}

// IndexOf returns the index of the record with the given id, or -1.
func (w *Workspace[T]) IndexOf(id string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOfLocked(id)
}

func (w *Workspace[T]) indexOfLocked(id string) int {
	for i, item := range w.items {
		if w.id(item) == id {
			return i
		}
	}
	return -1
}

// Selected returns the currently selected record, if any.
func (w *Workspace[T]) Selected() (T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var zero T
	idx := w.indexOfLocked(w.selectedID)
	if idx < 0 {
		return zero, false
	}
	return w.items[idx], true
}

// SelectedID returns the id of the selected record, or "".
func (w *Workspace[T]) SelectedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedID
}

// ---------------- mutation ----------------

// Add prepends a record and makes it the selection.
func (w *Workspace[T]) Add(item T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append([]T{item}, w.items...)
	w.selectedID = w.id(item)
}

// First returns the first record, used by pages that seed new records from
// the most recent entry.
func (w *Workspace[T]) First() (T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var zero T
	if len(w.items) == 0 {
		return zero, false
	}
	return w.items[0], true
}

// Update replaces the record at index with mutate(record). The slice and
// the record are both copied, so references handed out earlier stay valid.
func (w *Workspace[T]) Update(index int, mutate func(T) T) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.items) {
		return ErrIndexOutOfRange
	}
	next := append([]T(nil), w.items...)
	next[index] = mutate(next[index])
	w.items = next
	return nil
}

// RemoveCandidate returns the collection as it would look with index
// excised. The live state is untouched: deletion only takes effect when the
// gated commit built from this candidate succeeds.
func (w *Workspace[T]) RemoveCandidate(index int) ([]T, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.items) {
		return nil, ErrIndexOutOfRange
	}
	candidate := make([]T, 0, len(w.items)-1)
	candidate = append(candidate, w.items[:index]...)
	candidate = append(candidate, w.items[index+1:]...)
	return candidate, nil
}

// Replace sets the collection to exactly the committed payload.
func (w *Workspace[T]) Replace(items []T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append([]T(nil), items...)
	w.pruneUploadingLocked()
	if w.indexOfLocked(w.selectedID) < 0 {
		w.selectedID = ""
		if len(w.items) > 0 {
			w.selectedID = w.id(w.items[0])
		}
	}
}

// ApplyRemoval installs the committed post-delete collection and moves the
// selection: prefer the record now at the deleted index, fall back to the
// previous index, and respect the active filter. When nothing in the
// filtered view remains, the selection becomes empty.
func (w *Workspace[T]) ApplyRemoval(items []T, removedIndex int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append([]T(nil), items...)
	w.pruneUploadingLocked()

	var next T
	found := false
	if removedIndex >= 0 && removedIndex < len(w.items) {
		next, found = w.items[removedIndex], true
	} else if removedIndex-1 >= 0 && removedIndex-1 < len(w.items) {
		next, found = w.items[removedIndex-1], true
	}

	if !found {
		w.selectedID = ""
		return
	}
	if w.visible == nil || w.visible(next) {
		w.selectedID = w.id(next)
		return
	}
	for _, item := range w.items {
		if w.visible(item) {
			w.selectedID = w.id(item)
			return
		}
	}
	w.selectedID = ""
}

// ---------------- selection and filtering ----------------

// Select makes the record with the given id current. Unknown ids clear the
// selection.
func (w *Workspace[T]) Select(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.indexOfLocked(id) < 0 {
		w.selectedID = ""
		return
	}
	w.selectedID = id
}

// SetFilter installs a visibility predicate (nil clears it) and moves the
// selection to the first visible record, or empties it.
func (w *Workspace[T]) SetFilter(visible func(T) bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = visible
	for _, item := range w.items {
		if visible == nil || visible(item) {
			w.selectedID = w.id(item)
			return
		}
	}
	w.selectedID = ""
}

// VisibleItems returns the records matching the active filter.
func (w *Workspace[T]) VisibleItems() []T {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.visible == nil {
		return append([]T(nil), w.items...)
	}
	out := make([]T, 0, len(w.items))
	for _, item := range w.items {
		if w.visible(item) {
			out = append(out, item)
		}
	}
	return out
}

// ---------------- upload flags ----------------

// SetUploading marks whether an upload is in flight for the record with the
// given id. Flags are keyed by id so they follow the record when the
// collection shifts, and concurrent uploads for different records never
// interfere.
func (w *Workspace[T]) SetUploading(id string, inFlight bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if inFlight {
		w.uploading[id] = true
		return
	}
	delete(w.uploading, id)
}

// Uploading reports whether an upload is in flight for the record with id.
func (w *Workspace[T]) Uploading(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.uploading[id]
}

// UploadingIDs returns the ids of records with uploads in flight, sorted so
// state responses are stable.
func (w *Workspace[T]) UploadingIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]string, 0, len(w.uploading))
	for id := range w.uploading {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// pruneUploadingLocked drops flags for records no longer in the collection.
func (w *Workspace[T]) pruneUploadingLocked() {
	if len(w.uploading) == 0 {
		return
	}
	present := make(map[string]bool, len(w.items))
	for _, item := range w.items {
		present[w.id(item)] = true
	}
	for id := range w.uploading {
		if !present[id] {
			delete(w.uploading, id)
		}
	}
}
