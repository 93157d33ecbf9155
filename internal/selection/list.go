// Package selection provides ordered containers that carry a "current item"
// cursor. Cursor movement wraps around both ends.
package selection

import (
	"encoding/json"
	"errors"
	"iter"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNoCurrent is returned when an operation needs a current item but the
// container is empty.
var ErrNoCurrent = errors.New("no current item")

// List is an ordered list with a cursor.
type List[T any] struct {
	items  []T
	cursor int
}

// NewList returns a list holding a copy of items with the cursor on the first.
func NewList[T any](items ...T) List[T] {
	l := List[T]{}
	if len(items) > 0 {
		l.items = make([]T, len(items))
		copy(l.items, items)
	}
	return l
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// CurrentIndex returns the cursor position.
func (l *List[T]) CurrentIndex() int {
	return l.cursor
}

// Current returns the item under the cursor.
func (l *List[T]) Current() (T, bool) {
	if len(l.items) == 0 {
		var zero T
		return zero, false
	}
	return l.items[l.cursor], true
}

// CurrentRef returns a pointer to the item under the cursor, or nil when the
// list is empty. The pointer is invalidated by Insert and removals.
func (l *List[T]) CurrentRef() *T {
	if len(l.items) == 0 {
		return nil
	}
	return &l.items[l.cursor]
}

// Ref returns a pointer to the item at index i without moving the cursor, or
// nil when i is out of range.
func (l *List[T]) Ref(i int) *T {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return &l.items[i]
}

// Next advances the cursor, wrapping to the first item after the last.
func (l *List[T]) Next() (T, bool) {
	if l.cursor+1 < len(l.items) {
		l.cursor++
	} else {
		l.cursor = 0
	}
	return l.Current()
}

// Prev moves the cursor back, wrapping to the last item before the first.
func (l *List[T]) Prev() (T, bool) {
	if l.cursor > 0 {
		l.cursor--
	} else if len(l.items) > 0 {
		l.cursor = len(l.items) - 1
	}
	return l.Current()
}

// Last moves the cursor to the last item.
func (l *List[T]) Last() (T, bool) {
	if len(l.items) == 0 {
		var zero T
		return zero, false
	}
	l.cursor = len(l.items) - 1
	return l.items[l.cursor], true
}

// At moves the cursor to index i. An out of range index leaves the cursor
// where it was and reports false.
func (l *List[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	l.cursor = i
	return l.items[i], true
}

// Insert appends item to the end of the list.
func (l *List[T]) Insert(item T) {
	l.items = append(l.items, item)
}

// ExtractCurrent removes and returns the item under the cursor.
func (l *List[T]) ExtractCurrent() (T, error) {
	if len(l.items) == 0 {
		var zero T
		return zero, ErrNoCurrent
	}
	item := l.items[l.cursor]
	l.removeAt(l.cursor)
	return item, nil
}

// IndexFunc returns the index of the first item matching fn, or -1.
func (l *List[T]) IndexFunc(fn func(T) bool) int {
	for i, item := range l.items {
		if fn(item) {
			return i
		}
	}
	return -1
}

// RemoveFunc removes the first item matching fn. The cursor keeps pointing at
// the same item when possible.
func (l *List[T]) RemoveFunc(fn func(T) bool) (T, bool) {
	i := l.IndexFunc(fn)
	if i < 0 {
		var zero T
		return zero, false
	}
	item := l.items[i]
	l.removeAt(i)
	return item, true
}

func (l *List[T]) removeAt(i int) {
	l.items = append(l.items[:i], l.items[i+1:]...)

	if i < l.cursor {
		l.cursor--
	}
	if l.cursor >= len(l.items) && l.cursor > 0 {
		l.cursor--
	}
}

// Clear removes every item and resets the cursor.
func (l *List[T]) Clear() {
	l.items = nil
	l.cursor = 0
}

// Items returns a copy of the stored items.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// All iterates over the items in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Clone returns a list with its own backing array and the same cursor.
func (l List[T]) Clone() List[T] {
	c := NewList(l.items...)
	c.cursor = l.cursor
	return c
}

type listWire[T any] struct {
	Items  []T `msgpack:"items" json:"items"`
	Cursor int `msgpack:"cursor" json:"cursor"`
}

func (l *List[T]) wire() listWire[T] {
	return listWire[T]{Items: l.items, Cursor: l.cursor}
}

func (l *List[T]) fromWire(w listWire[T]) {
	l.items = w.Items
	l.cursor = 0
	if w.Cursor >= 0 && w.Cursor < len(w.Items) {
		l.cursor = w.Cursor
	}
}

func (l List[T]) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(l.wire())
}

func (l *List[T]) UnmarshalMsgpack(b []byte) error {
	var w listWire[T]
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return err
	}
	l.fromWire(w)
	return nil
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.wire())
}

func (l *List[T]) UnmarshalJSON(b []byte) error {
	var w listWire[T]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	l.fromWire(w)
	return nil
}
