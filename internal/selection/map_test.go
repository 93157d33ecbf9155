package selection

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestMap() Map[int, string] {
	m := NewMap[int, string]()
	m.Insert(30, "thirty")
	m.Insert(10, "ten")
	m.Insert(20, "twenty")
	return m
}

func TestMap_KeyOrder(t *testing.T) {
	m := newTestMap()

	testutil.AssertEqual(t, "keys", m.Keys(), []int{10, 20, 30})

	var vals []string
	for _, v := range m.All() {
		vals = append(vals, v)
	}
	testutil.AssertEqual(t, "values", vals, []string{"ten", "twenty", "thirty"})
}

func TestMap_NextPrevWrap(t *testing.T) {
	tests := map[string]struct {
		start  int
		move   func(m *Map[int, string]) (int, string, bool)
		expKey int
	}{
		"next from last wraps": {
			start:  30,
			move:   (*Map[int, string]).Next,
			expKey: 10,
		},
		"prev from first wraps": {
			start:  10,
			move:   (*Map[int, string]).Prev,
			expKey: 30,
		},
		"next in order": {
			start:  10,
			move:   (*Map[int, string]).Next,
			expKey: 20,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := newTestMap()
			m.At(tt.start)

			k, _, ok := tt.move(&m)

			testutil.AssertEqual(t, "ok", ok, true)
			testutil.AssertEqual(t, "key", k, tt.expKey)
		})
	}
}

func TestMap_AtSearchesByKey(t *testing.T) {
	m := newTestMap()

	v, ok := m.At(20)
	testutil.AssertEqual(t, "ok", ok, true)
	testutil.AssertEqual(t, "value", v, "twenty")
	testutil.AssertEqual(t, "index", m.CurrentIndex(), 1)

	_, ok = m.At(2)
	testutil.AssertEqual(t, "missing ok", ok, false)
	testutil.AssertEqual(t, "cursor unchanged", m.CurrentIndex(), 1)
}

func TestMap_InsertKeepsCurrent(t *testing.T) {
	m := newTestMap()
	m.At(20)

	m.Insert(5, "five")

	k, _, _ := m.Current()
	testutil.AssertEqual(t, "current key", k, 20)
}

func TestMap_ExtractCurrent(t *testing.T) {
	m := newTestMap()
	m.Last()

	k, v, err := m.ExtractCurrent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "key", k, 30)
	testutil.AssertEqual(t, "value", v, "thirty")
	testutil.AssertEqual(t, "cursor", m.CurrentIndex(), 1)
	testutil.AssertEqual(t, "has", m.Has(30), false)

	empty := NewMap[int, string]()
	_, _, err = empty.ExtractCurrent()
	if !errors.Is(err, ErrNoCurrent) {
		t.Errorf("expected ErrNoCurrent, got %v", err)
	}
	_, _, ok := empty.Current()
	testutil.AssertEqual(t, "empty current", ok, false)
}

func TestMap_Update(t *testing.T) {
	m := newTestMap()

	ok := m.Update(10, func(v *string) { *v = "TEN" })
	testutil.AssertEqual(t, "ok", ok, true)
	v, _ := m.Get(10)
	testutil.AssertEqual(t, "value", v, "TEN")

	ok = m.Update(99, func(v *string) { *v = "nope" })
	testutil.AssertEqual(t, "missing ok", ok, false)
}

func TestMap_CloneIsIndependent(t *testing.T) {
	m := newTestMap()
	c := m.Clone()
	c.Insert(40, "forty")
	c.Delete(10)

	testutil.AssertEqual(t, "original keys", m.Keys(), []int{10, 20, 30})
	testutil.AssertEqual(t, "clone keys", c.Keys(), []int{20, 30, 40})
}

func TestMap_Encoding(t *testing.T) {
	m := newTestMap()
	m.At(20)

	b, err := msgpack.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Map[int, string]
	if err := msgpack.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	testutil.AssertEqual(t, "keys", got.Keys(), []int{10, 20, 30})
	testutil.AssertEqual(t, "cursor", got.CurrentIndex(), 1)
}
