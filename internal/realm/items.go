package realm

import "fmt"

type EquipmentKind uint8

const (
	EquipmentPots EquipmentKind = iota
	EquipmentTinder
	EquipmentFirewood
	EquipmentCoal
	EquipmentGold
	EquipmentCoins
	EquipmentTools
	EquipmentFlint
	EquipmentWax
	EquipmentSealStamp
	EquipmentBlankets
	EquipmentHerbs
	EquipmentFood
	EquipmentPipe
	EquipmentTelescope
	EquipmentCompass
	EquipmentParchment
	EquipmentMap
	EquipmentKnife
	EquipmentSpear
	EquipmentBow
	EquipmentArrows
	EquipmentCanoe
	EquipmentRaft
	EquipmentRope
)

var equipmentNames = map[EquipmentKind]string{
	EquipmentPots:      "pots",
	EquipmentTinder:    "tinder",
	EquipmentFirewood:  "firewood",
	EquipmentCoal:      "coal",
	EquipmentGold:      "gold",
	EquipmentCoins:     "coins",
	EquipmentTools:     "tools",
	EquipmentFlint:     "flint",
	EquipmentWax:       "wax",
	EquipmentSealStamp: "seal stamp",
	EquipmentBlankets:  "blankets",
	EquipmentHerbs:     "herbs",
	EquipmentFood:      "food",
	EquipmentPipe:      "pipe",
	EquipmentTelescope: "telescope",
	EquipmentCompass:   "compass",
	EquipmentParchment: "parchment",
	EquipmentMap:       "map",
	EquipmentKnife:     "knife",
	EquipmentSpear:     "spear",
	EquipmentBow:       "bow",
	EquipmentArrows:    "arrows",
	EquipmentCanoe:     "canoe",
	EquipmentRaft:      "raft",
	EquipmentRope:      "rope",
}

func (k EquipmentKind) String() string {
	if n, ok := equipmentNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Equipment(%d)", k)
}

// Equipment is a piece of gear. Amount is only meaningful for countable
// kinds such as arrows or coins and is zero otherwise.
type Equipment struct {
	Kind   EquipmentKind `msgpack:"kind" json:"kind"`
	Amount int           `msgpack:"amount" json:"amount"`
}

// Gear returns a non-countable piece of equipment.
func Gear(k EquipmentKind) Equipment {
	return Equipment{Kind: k}
}

// Supply returns a countable piece of equipment.
func Supply(k EquipmentKind, amount int) Equipment {
	return Equipment{Kind: k, Amount: amount}
}

func (e Equipment) String() string {
	if e.Amount > 0 {
		return fmt.Sprintf("%s(%d)", e.Kind, e.Amount)
	}
	return e.Kind.String()
}

type ParticularityKind uint8

const (
	ParticularityTown ParticularityKind = iota
	ParticularityRiver
	ParticularityCaravan
	ParticularityMerchant
	ParticularityCamp
	ParticularityCanyon
	ParticularityBoulders
	ParticularityGrassland
	ParticularityCreek
	ParticularityGrove
	ParticularityCliffs
	ParticularityIsland
	ParticularityLake
	ParticularityPond
	ParticularityClearing
	ParticularityShip
	// ParticularityItem is equipment lying in a region. It can be picked up.
	ParticularityItem
)

var particularityNames = map[ParticularityKind]string{
	ParticularityTown:      "town",
	ParticularityRiver:     "river",
	ParticularityCaravan:   "caravan",
	ParticularityMerchant:  "merchant",
	ParticularityCamp:      "camp",
	ParticularityCanyon:    "canyon",
	ParticularityBoulders:  "boulders",
	ParticularityGrassland: "grassland",
	ParticularityCreek:     "creek",
	ParticularityGrove:     "grove",
	ParticularityCliffs:    "cliffs",
	ParticularityIsland:    "island",
	ParticularityLake:      "lake",
	ParticularityPond:      "pond",
	ParticularityClearing:  "clearing",
	ParticularityShip:      "ship",
	ParticularityItem:      "item",
}

func (k ParticularityKind) String() string {
	if n, ok := particularityNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Particularity(%d)", k)
}

// Particularity is a point of interest in a region. Item is set only when
// Kind is ParticularityItem.
type Particularity struct {
	Kind ParticularityKind `msgpack:"kind" json:"kind"`
	Item Equipment         `msgpack:"item" json:"item"`
}

// Landmark returns a plain particularity.
func Landmark(k ParticularityKind) Particularity {
	return Particularity{Kind: k}
}

// DroppedItem returns the particularity left behind by dropped equipment.
func DroppedItem(e Equipment) Particularity {
	return Particularity{Kind: ParticularityItem, Item: e}
}

// IsItem reports whether the particularity can be picked up.
func (p Particularity) IsItem() bool {
	return p.Kind == ParticularityItem
}

func (p Particularity) String() string {
	if p.IsItem() {
		return fmt.Sprintf("item %s", p.Item)
	}
	return p.Kind.String()
}

type ItemKind uint8

const (
	ItemEquipment ItemKind = iota
	ItemParticularity
)

// Item is an entry in an explorer's inventory: either carried equipment or a
// remembered particularity together with the region it was found in.
type Item struct {
	Kind          ItemKind      `msgpack:"kind" json:"kind"`
	Equipment     Equipment     `msgpack:"equipment" json:"equipment"`
	Region        RegionId      `msgpack:"region" json:"region"`
	Particularity Particularity `msgpack:"particularity" json:"particularity"`
}

func EquipmentItem(e Equipment) Item {
	return Item{Kind: ItemEquipment, Equipment: e}
}

// RememberedItem records an investigated particularity and where it was found.
func RememberedItem(region RegionId, p Particularity) Item {
	return Item{Kind: ItemParticularity, Region: region, Particularity: p}
}

func (i Item) String() string {
	switch i.Kind {
	case ItemEquipment:
		return i.Equipment.String()
	case ItemParticularity:
		return fmt.Sprintf("%s (region %d)", i.Particularity, i.Region)
	default:
		return fmt.Sprintf("Item(%d)", i.Kind)
	}
}
