package loom

import "fmt"

// ChangeKind identifies the structural effect of a collection mutation.
type ChangeKind int

const (
	ChangeReset ChangeKind = iota
	ChangeAdd
	ChangeRemove
	ChangeReplace
	ChangeMove
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeReset:
		return "reset"
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	case ChangeReplace:
		return "replace"
	case ChangeMove:
		return "move"
	}
	return "unknown"
}

// Change describes one mutation of an item source. Index is the first
// affected index and Count the number of affected items. OldIndex is only
// meaningful for ChangeMove, where it carries the range's previous position.
type Change struct {
	Kind     ChangeKind
	Index    int
	Count    int
	OldIndex int
}

// ItemSource is the ordered, indexable sequence a presenter virtualizes over.
// The source is owned by the caller; presenters never mutate it. Mutations
// must be announced through the Subscribe callback, synchronously and in
// order, and a change callback must not fire while a previous one for the
// same source is still executing.
type ItemSource interface {
	Count() int
	Item(index int) any
	Text(index int) string

	// Subscribe registers a change listener and returns a cancel func that
	// must be called when the listener's owner is disposed.
	Subscribe(fn func(Change)) (cancel func())
}

// Items is a slice-backed ItemSource with change notification. It separates
// data management from presentation: controls subscribe, the caller mutates.
//
// usage:
//
//	rows := NewItems(func(r Row) string { return r.Name })
//	rows.Append(Row{Name: "a"}, Row{Name: "b"})
//	rows.RemoveRange(0, 1)
type Items[T any] struct {
	items     []T
	text      func(T) string
	listeners map[int]func(Change)
	nextID    int
}

// NewItems creates an empty observable item collection. text extracts the
// display text for a row; nil falls back to fmt.Sprint.
func NewItems[T any](text func(T) string) *Items[T] {
	if text == nil {
		text = func(v T) string { return fmt.Sprint(v) }
	}
	return &Items[T]{text: text}
}

// Count implements ItemSource.
func (s *Items[T]) Count() int { return len(s.items) }

// Item implements ItemSource.
func (s *Items[T]) Item(index int) any {
	if index < 0 || index >= len(s.items) {
		return nil
	}
	return s.items[index]
}

// Text implements ItemSource.
func (s *Items[T]) Text(index int) string {
	if index < 0 || index >= len(s.items) {
		return ""
	}
	return s.text(s.items[index])
}

// At returns the item at index, or the zero value if out of bounds.
func (s *Items[T]) At(index int) T {
	if index < 0 || index >= len(s.items) {
		var zero T
		return zero
	}
	return s.items[index]
}

// All returns the backing slice. Callers must not mutate it directly.
func (s *Items[T]) All() []T { return s.items }

// Subscribe implements ItemSource.
func (s *Items[T]) Subscribe(fn func(Change)) (cancel func()) {
	if s.listeners == nil {
		s.listeners = make(map[int]func(Change))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Items[T]) notify(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

// SetAll replaces the whole collection.
func (s *Items[T]) SetAll(items []T) {
	s.items = items
	s.notify(Change{Kind: ChangeReset})
}

// Clear removes every item.
func (s *Items[T]) Clear() {
	s.items = s.items[:0]
	s.notify(Change{Kind: ChangeReset})
}

// Append adds items at the end.
func (s *Items[T]) Append(items ...T) {
	if len(items) == 0 {
		return
	}
	idx := len(s.items)
	s.items = append(s.items, items...)
	s.notify(Change{Kind: ChangeAdd, Index: idx, Count: len(items)})
}

// Prepend adds items at the front.
func (s *Items[T]) Prepend(items ...T) {
	s.InsertAt(0, items...)
}

// InsertAt inserts items at index, clamped to [0, Count].
func (s *Items[T]) InsertAt(index int, items ...T) {
	if len(items) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items[:index], append(append([]T{}, items...), s.items[index:]...)...)
	s.notify(Change{Kind: ChangeAdd, Index: index, Count: len(items)})
}

// RemoveRange removes the half-open range [index, index+n). Out-of-range
// portions are clamped; a fully out-of-range request is a no-op.
func (s *Items[T]) RemoveRange(index, n int) {
	if index < 0 {
		n += index
		index = 0
	}
	if index >= len(s.items) || n <= 0 {
		return
	}
	if index+n > len(s.items) {
		n = len(s.items) - index
	}
	s.items = append(s.items[:index], s.items[index+n:]...)
	s.notify(Change{Kind: ChangeRemove, Index: index, Count: n})
}

// ReplaceAt overwrites items starting at index with the given values,
// clamped to the existing range.
func (s *Items[T]) ReplaceAt(index int, items ...T) {
	if index < 0 || index >= len(s.items) || len(items) == 0 {
		return
	}
	n := len(items)
	if index+n > len(s.items) {
		n = len(s.items) - index
	}
	copy(s.items[index:index+n], items[:n])
	s.notify(Change{Kind: ChangeReplace, Index: index, Count: n})
}

// Move relocates the item at from to to. Both indices refer to positions in
// the collection before the move.
func (s *Items[T]) Move(from, to int) {
	if from < 0 || from >= len(s.items) || to < 0 || to >= len(s.items) || from == to {
		return
	}
	item := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)
	s.items = append(s.items[:to], append([]T{item}, s.items[to:]...)...)
	s.notify(Change{Kind: ChangeMove, Index: to, Count: 1, OldIndex: from})
}

// MoveRange relocates the n items starting at from so they begin at to. to is
// the destination in the collection after the range has been lifted out.
func (s *Items[T]) MoveRange(from, n, to int) {
	if from < 0 || n <= 0 || from+n > len(s.items) {
		return
	}
	if to < 0 || to > len(s.items)-n || to == from {
		return
	}
	block := append([]T(nil), s.items[from:from+n]...)
	rest := append(s.items[:from], s.items[from+n:]...)
	s.items = append(rest[:to], append(block, rest[to:]...)...)
	s.notify(Change{Kind: ChangeMove, Index: to, Count: n, OldIndex: from})
}
