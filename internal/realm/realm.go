package realm

import "slices"

const (
	tutorialTitle  = "tutorial"
	tutorialStory  = "embark all explorers."
	completedStory = "all explorers have embarked. you can keep playing around."
)

// Template is the authoritative world of a realm. Clients never see it
// directly.
type Template struct {
	Regions    Island
	Expedition *Expedition
}

// Realm is the client visible view of a realm.
type Realm struct {
	Id         RealmId     `msgpack:"id" json:"id"`
	Variant    Variant     `msgpack:"variant" json:"variant"`
	Island     Island      `msgpack:"island" json:"island"`
	Expedition *Expedition `msgpack:"expedition" json:"expedition"`
	Age        int         `msgpack:"age" json:"age"`
	Title      string      `msgpack:"title" json:"title"`
	Story      string      `msgpack:"story" json:"story"`
	Objectives []Objective `msgpack:"objectives" json:"objectives"`
	Completed  []Objective `msgpack:"completed" json:"completed"`
	Done       bool        `msgpack:"done" json:"done"`
}

// Clone returns a deep copy of the view, including its own expedition.
func (r Realm) Clone() Realm {
	c := r
	c.Island = cloneIsland(r.Island)
	c.Expedition = r.Expedition.Clone()
	c.Objectives = slices.Clone(r.Objectives)
	c.Completed = slices.Clone(r.Completed)
	return c
}

// Region returns the view copy of region id.
func (r Realm) Region(id RegionId) (Region, bool) {
	return r.Island.Get(id)
}
