package realm

import "github.com/pixil98/go-realms/internal/selection"

// Explorer is a movable member of the expedition. A nil Region means the
// explorer has not embarked yet.
type Explorer struct {
	Id        ExplorerId            `msgpack:"id" json:"id"`
	Traits    selection.List[Trait] `msgpack:"traits" json:"traits"`
	Region    *RegionId             `msgpack:"region" json:"region"`
	Inventory selection.List[Item]  `msgpack:"inventory" json:"inventory"`
}

func NewExplorer(id ExplorerId, traits []Trait, inventory ...Item) Explorer {
	return Explorer{
		Id:        id,
		Traits:    selection.NewList(traits...),
		Inventory: selection.NewList(inventory...),
	}
}

// Embarked reports whether the explorer stands in a region.
func (e Explorer) Embarked() bool {
	return e.Region != nil
}

// In reports whether the explorer stands in region id.
func (e Explorer) In(id RegionId) bool {
	return e.Region != nil && *e.Region == id
}

// TraitActions lists the actions granted by the explorer's traits. An
// explorer without traits can only wait.
func (e Explorer) TraitActions() []Action {
	if e.Traits.Len() == 0 {
		return []Action{ActionWait}
	}
	actions := make([]Action, 0, e.Traits.Len())
	for _, t := range e.Traits.All() {
		actions = append(actions, t.Action())
	}
	return actions
}

func (e Explorer) Clone() Explorer {
	c := e
	c.Traits = e.Traits.Clone()
	c.Inventory = e.Inventory.Clone()
	if e.Region != nil {
		r := *e.Region
		c.Region = &r
	}
	return c
}

// Expedition is the ordered roster of explorers. A template and its view
// hold the same *Expedition.
type Expedition struct {
	Explorers selection.List[Explorer] `msgpack:"explorers" json:"explorers"`
}

func NewExpedition(explorers ...Explorer) *Expedition {
	return &Expedition{Explorers: selection.NewList(explorers...)}
}

// Explorer returns the explorer with the given id, or nil.
func (x *Expedition) Explorer(id ExplorerId) *Explorer {
	i := x.Explorers.IndexFunc(func(e Explorer) bool { return e.Id == id })
	return x.Explorers.Ref(i)
}

// Embarked counts explorers standing in a region.
func (x *Expedition) Embarked() int {
	n := 0
	for _, e := range x.Explorers.All() {
		if e.Embarked() {
			n++
		}
	}
	return n
}

func (x *Expedition) Clone() *Expedition {
	if x == nil {
		return nil
	}
	explorers := x.Explorers.Items()
	for i := range explorers {
		explorers[i] = explorers[i].Clone()
	}
	c := NewExpedition(explorers...)
	c.Explorers.At(x.Explorers.CurrentIndex())
	return c
}
