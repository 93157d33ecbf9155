package realm

import (
	"slices"

	"github.com/pixil98/go-realms/internal/hex"
	"github.com/pixil98/go-realms/internal/selection"
)

// Region is one cell of a realm. Templates and views share this shape; a
// view copy carries the same Id as its template region.
type Region struct {
	Id              RegionId                      `msgpack:"id" json:"id"`
	Terrain         Terrain                       `msgpack:"terrain" json:"terrain"`
	Particularities selection.List[Particularity] `msgpack:"particularities" json:"particularities"`
	Buildings       selection.List[Building]      `msgpack:"buildings" json:"buildings"`
	Mapped          bool                          `msgpack:"mapped" json:"mapped"`
	Resources       int                           `msgpack:"resources" json:"resources"`
	Visibility      Visibility                    `msgpack:"visibility" json:"visibility"`
	Neighbors       []RegionId                    `msgpack:"neighbors" json:"neighbors"`
	Offset          hex.Offset                    `msgpack:"offset" json:"offset"`
}

// Clone returns a deep copy of r.
func (r Region) Clone() Region {
	c := r
	c.Particularities = r.Particularities.Clone()
	c.Buildings = r.Buildings.Clone()
	c.Neighbors = slices.Clone(r.Neighbors)
	return c
}

// Project returns a copy of r holding only what the given visibility level
// exposes. Terrain and geometry are always visible. Partial adds buildings
// and landmarks; complete and live expose everything.
func (r Region) Project(level Visibility) Region {
	c := r.Clone()
	c.Visibility = level

	switch level {
	case VisibilityNone:
		c.Resources = 0
		c.Mapped = false
		c.Buildings = selection.NewList[Building]()
		c.Particularities = selection.NewList[Particularity]()
	case VisibilityPartial:
		c.Resources = 0
		var landmarks []Particularity
		for _, p := range r.Particularities.All() {
			if !p.IsItem() {
				landmarks = append(landmarks, p)
			}
		}
		c.Particularities = selection.NewList(landmarks...)
	}

	return c
}

// IsNeighbor reports whether id is adjacent to r.
func (r Region) IsNeighbor(id RegionId) bool {
	return slices.Contains(r.Neighbors, id)
}

// Island is the id keyed region map of a realm.
type Island = selection.Map[RegionId, Region]

func cloneIsland(src Island) Island {
	dst := src.Clone()
	for _, id := range dst.Keys() {
		dst.Update(id, func(r *Region) { *r = r.Clone() })
	}
	return dst
}
