package selection

import (
	"cmp"
	"encoding/json"
	"iter"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// Map is an id keyed container with a cursor. The cursor addresses entries in
// ascending key order.
type Map[K cmp.Ordered, V any] struct {
	values map[K]V
	keys   []K
	cursor int
}

// NewMap returns an empty map.
func NewMap[K cmp.Ordered, V any]() Map[K, V] {
	return Map[K, V]{values: map[K]V{}}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// CurrentIndex returns the cursor position in key order.
func (m *Map[K, V]) CurrentIndex() int {
	return m.cursor
}

// Get returns the value stored under k without moving the cursor.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.values[k]
	return ok
}

// Insert stores v under k, replacing any existing value.
func (m *Map[K, V]) Insert(k K, v V) {
	if m.values == nil {
		m.values = map[K]V{}
	}
	if _, ok := m.values[k]; !ok {
		i, _ := slices.BinarySearch(m.keys, k)
		if len(m.keys) > 0 && i <= m.cursor {
			m.cursor++
		}
		m.keys = slices.Insert(m.keys, i, k)
	}
	m.values[k] = v
}

// Update applies fn to the value under k in place. It reports false when k is
// absent.
func (m *Map[K, V]) Update(k K, fn func(*V)) bool {
	v, ok := m.values[k]
	if !ok {
		return false
	}
	fn(&v)
	m.values[k] = v
	return true
}

// Current returns the entry under the cursor.
func (m *Map[K, V]) Current() (K, V, bool) {
	if len(m.keys) == 0 {
		var zk K
		var zv V
		return zk, zv, false
	}
	k := m.keys[m.cursor]
	return k, m.values[k], true
}

// Next advances the cursor, wrapping to the first key after the last.
func (m *Map[K, V]) Next() (K, V, bool) {
	if m.cursor+1 < len(m.keys) {
		m.cursor++
	} else {
		m.cursor = 0
	}
	return m.Current()
}

// Prev moves the cursor back, wrapping to the last key before the first.
func (m *Map[K, V]) Prev() (K, V, bool) {
	if m.cursor > 0 {
		m.cursor--
	} else if len(m.keys) > 0 {
		m.cursor = len(m.keys) - 1
	}
	return m.Current()
}

// Last moves the cursor to the highest key.
func (m *Map[K, V]) Last() (K, V, bool) {
	if len(m.keys) == 0 {
		return m.Current()
	}
	m.cursor = len(m.keys) - 1
	return m.Current()
}

// At moves the cursor to key k. A missing key leaves the cursor where it was
// and reports false.
func (m *Map[K, V]) At(k K) (V, bool) {
	i, found := slices.BinarySearch(m.keys, k)
	if !found {
		var zero V
		return zero, false
	}
	m.cursor = i
	return m.values[k], true
}

// ExtractCurrent removes and returns the entry under the cursor.
func (m *Map[K, V]) ExtractCurrent() (K, V, error) {
	k, v, ok := m.Current()
	if !ok {
		return k, v, ErrNoCurrent
	}
	m.Delete(k)
	return k, v, nil
}

// Delete removes k if present.
func (m *Map[K, V]) Delete(k K) {
	i, found := slices.BinarySearch(m.keys, k)
	if !found {
		return
	}
	delete(m.values, k)
	m.keys = slices.Delete(m.keys, i, i+1)

	if i < m.cursor {
		m.cursor--
	}
	if m.cursor >= len(m.keys) && m.cursor > 0 {
		m.cursor--
	}
}

// Keys returns the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// All iterates over the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

type mapEntry[K cmp.Ordered, V any] struct {
	Key   K `msgpack:"key" json:"key"`
	Value V `msgpack:"value" json:"value"`
}

type mapWire[K cmp.Ordered, V any] struct {
	Entries []mapEntry[K, V] `msgpack:"entries" json:"entries"`
	Cursor  int              `msgpack:"cursor" json:"cursor"`
}

func (m *Map[K, V]) wire() mapWire[K, V] {
	w := mapWire[K, V]{Cursor: m.cursor}
	for k, v := range m.All() {
		w.Entries = append(w.Entries, mapEntry[K, V]{Key: k, Value: v})
	}
	return w
}

func (m *Map[K, V]) fromWire(w mapWire[K, V]) {
	*m = NewMap[K, V]()
	for _, e := range w.Entries {
		m.Insert(e.Key, e.Value)
	}
	if w.Cursor >= 0 && w.Cursor < len(m.keys) {
		m.cursor = w.Cursor
	}
}

func (m Map[K, V]) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(m.wire())
}

func (m *Map[K, V]) UnmarshalMsgpack(b []byte) error {
	var w mapWire[K, V]
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return err
	}
	m.fromWire(w)
	return nil
}

func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

func (m *Map[K, V]) UnmarshalJSON(b []byte) error {
	var w mapWire[K, V]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	m.fromWire(w)
	return nil
}

// Clone returns a map with its own index and the same cursor. Values are
// copied with assignment.
func (m Map[K, V]) Clone() Map[K, V] {
	c := Map[K, V]{
		values: make(map[K]V, len(m.values)),
		keys:   slices.Clone(m.keys),
		cursor: m.cursor,
	}
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}
