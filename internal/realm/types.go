package realm

import "fmt"

type RealmId int

type RegionId int

type ExplorerId int

// Variant selects the rule set and generator of a realm.
type Variant uint8

const (
	VariantTutorial Variant = iota
)

var variantNames = map[Variant]string{
	VariantTutorial: "Tutorial",
}

func (v Variant) String() string {
	if n, ok := variantNames[v]; ok {
		return n
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// Terrain is fixed at generation.
type Terrain uint8

const (
	TerrainCoast Terrain = iota
	TerrainPlains
	TerrainForest
	TerrainMountain
)

var terrainNames = map[Terrain]string{
	TerrainCoast:    "coast",
	TerrainPlains:   "plains",
	TerrainForest:   "forest",
	TerrainMountain: "mountain",
}

func (t Terrain) String() string {
	if n, ok := terrainNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Terrain(%d)", t)
}

// Visibility is how much of a region the view exposes. Levels are ordered.
type Visibility uint8

const (
	VisibilityNone Visibility = iota
	VisibilityPartial
	VisibilityComplete
	VisibilityLive
)

var visibilityNames = map[Visibility]string{
	VisibilityNone:     "none",
	VisibilityPartial:  "partial",
	VisibilityComplete: "complete",
	VisibilityLive:     "live",
}

func (v Visibility) String() string {
	if n, ok := visibilityNames[v]; ok {
		return n
	}
	return fmt.Sprintf("Visibility(%d)", v)
}

// Building is a marker placed on a region by the Build action.
type Building uint8

const (
	BuildingHut Building = iota
)

func (b Building) String() string {
	if b == BuildingHut {
		return "hut"
	}
	return fmt.Sprintf("Building(%d)", b)
}

type Objective uint8

const (
	ObjectiveEmbarkExplorers Objective = iota
)

func (o Objective) String() string {
	if o == ObjectiveEmbarkExplorers {
		return "embark all explorers"
	}
	return fmt.Sprintf("Objective(%d)", o)
}

type Trait uint8

const (
	TraitRanger Trait = iota
	TraitBuilder
	TraitCartographer
	TraitSailor
)

var traitNames = map[Trait]string{
	TraitRanger:       "ranger",
	TraitBuilder:      "builder",
	TraitCartographer: "cartographer",
	TraitSailor:       "sailor",
}

func (t Trait) String() string {
	if n, ok := traitNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Trait(%d)", t)
}

// Action returns the single action a trait grants.
func (t Trait) Action() Action {
	switch t {
	case TraitRanger:
		return ActionHunt
	case TraitBuilder:
		return ActionBuild
	case TraitCartographer:
		return ActionMap
	case TraitSailor:
		return ActionSail
	default:
		return ActionWait
	}
}

type Action uint8

const (
	ActionBuild Action = iota
	ActionMap
	ActionHunt
	ActionSail
	ActionWait
)

var actionNames = map[Action]string{
	ActionBuild: "build",
	ActionMap:   "map",
	ActionHunt:  "hunt",
	ActionSail:  "sail",
	ActionWait:  "wait",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Action(%d)", a)
}
