// Package stack provides an ordered container with a single focused position.
//
// A Stack keeps insertion (and shuffle) order and tracks which element is
// focused. The focus is always a valid index while the stack is non-empty and
// is unset while it is empty.
package stack

import (
	"fmt"
	"iter"
)

// Stack is an ordered sequence of items with one focused element.
// The zero value is an empty stack ready to use.
type Stack[T any] struct {
	items []T
	// focus is only meaningful while items is non-empty.
	focus int
}

// New returns a stack holding items in order, focused on the first one.
func New[T any](items ...T) *Stack[T] {
	return &Stack[T]{items: append([]T(nil), items...)}
}

// Len returns the number of items.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Push appends item at the end without moving an existing focus. Pushing
// onto an empty stack focuses the new item so the stack never holds
// elements without a focus.
func (s *Stack[T]) Push(item T) {
	if len(s.items) == 0 {
		s.focus = 0
	}
	s.items = append(s.items, item)
}

// Remove removes the first item matching pred and returns it.
// It panics when nothing matches; use TryRemove when absence is expected.
func (s *Stack[T]) Remove(pred func(T) bool) T {
	item, ok := s.TryRemove(pred)
	if !ok {
		panic(fmt.Sprintf("stack: no item matches predicate (len=%d)", len(s.items)))
	}
	return item
}

// TryRemove removes the first item matching pred. It reports false and
// leaves the stack untouched when nothing matches.
func (s *Stack[T]) TryRemove(pred func(T) bool) (T, bool) {
	for i, item := range s.items {
		if pred(item) {
			s.removeAt(i)
			return item, true
		}
	}
	var zero T
	return zero, false
}

// RemoveFocused removes and returns the focused item. Focus moves to the
// item that followed it, or to the previous one if it was last.
func (s *Stack[T]) RemoveFocused() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	item := s.items[s.focus]
	s.removeAt(s.focus)
	return item, true
}

func (s *Stack[T]) removeAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)

	switch {
	case len(s.items) == 0:
		s.focus = 0
	case i < s.focus:
		// Keep pointing at the same logical element.
		s.focus--
	case s.focus >= len(s.items):
		s.focus = len(s.items) - 1
	}
}

// Focus moves focus to the first item matching pred. It reports whether a
// match was found; focus is unchanged otherwise.
func (s *Stack[T]) Focus(pred func(T) bool) bool {
	for i, item := range s.items {
		if pred(item) {
			s.focus = i
			return true
		}
	}
	return false
}

// Focused returns the focused item.
func (s *Stack[T]) Focused() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[s.focus], true
}

// FocusedIndex returns the position of the focused item, or -1.
func (s *Stack[T]) FocusedIndex() int {
	if len(s.items) == 0 {
		return -1
	}
	return s.focus
}

// FocusNext moves focus to the following item, wrapping at the end.
func (s *Stack[T]) FocusNext() {
	if n := len(s.items); n > 1 {
		s.focus = (s.focus + 1) % n
	}
}

// FocusPrevious moves focus to the preceding item, wrapping at the start.
func (s *Stack[T]) FocusPrevious() {
	if n := len(s.items); n > 1 {
		s.focus = (s.focus + n - 1) % n
	}
}

// ShuffleNext swaps the focused item with its successor (cyclically).
// Focus follows the moved item.
func (s *Stack[T]) ShuffleNext() {
	if n := len(s.items); n > 1 {
		s.swapFocused((s.focus + 1) % n)
	}
}

// ShufflePrevious swaps the focused item with its predecessor (cyclically).
// Focus follows the moved item.
func (s *Stack[T]) ShufflePrevious() {
	if n := len(s.items); n > 1 {
		s.swapFocused((s.focus + n - 1) % n)
	}
}

func (s *Stack[T]) swapFocused(target int) {
	s.items[s.focus], s.items[target] = s.items[target], s.items[s.focus]
	s.focus = target
}

// Contains reports whether any item matches pred.
func (s *Stack[T]) Contains(pred func(T) bool) bool {
	for _, item := range s.items {
		if pred(item) {
			return true
		}
	}
	return false
}

// All iterates the items in their current order. The sequence may be ranged
// over any number of times; it must not be held across mutations.
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range s.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Items returns a copy of the items in order.
func (s *Stack[T]) Items() []T {
	return append([]T(nil), s.items...)
}
