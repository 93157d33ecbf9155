package realm

import (
	"fmt"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"

	"github.com/pixil98/go-realms/internal/hex"
	"github.com/pixil98/go-realms/internal/selection"
)

const (
	DefaultRows = 5
	DefaultCols = 5
)

// weighted maps consecutive roll ranges onto particularities. A roll r in
// [1, total] picks the first entry whose cumulative weight reaches r.
type weighted []struct {
	weight int
	kind   ParticularityKind
}

func (w weighted) pick(rng *rand.Rand) ParticularityKind {
	total := 0
	for _, e := range w {
		total += e.weight
	}
	roll := rng.IntN(total) + 1
	for _, e := range w {
		roll -= e.weight
		if roll <= 0 {
			return e.kind
		}
	}
	return w[len(w)-1].kind
}

type terrainTable struct {
	minCount, maxCount int
	resources          int
	features           weighted
}

var tutorialTables = map[Terrain]terrainTable{
	TerrainCoast: {
		minCount: 1, maxCount: 2, resources: 3,
		features: weighted{
			{1, ParticularityTown},
			{1, ParticularityRiver},
			{3, ParticularityCliffs},
			{2, ParticularityIsland},
			{1, ParticularityShip},
			{1, ParticularityCaravan},
		},
	},
	TerrainPlains: {
		minCount: 1, maxCount: 3, resources: 6,
		features: weighted{
			{1, ParticularityTown},
			{1, ParticularityMerchant},
			{2, ParticularityGrove},
			{1, ParticularityCreek},
			{3, ParticularityGrassland},
			{1, ParticularityRiver},
			{1, ParticularityCaravan},
		},
	},
	TerrainForest: {
		minCount: 0, maxCount: 2, resources: 5,
		features: weighted{
			{1, ParticularityTown},
			{1, ParticularityRiver},
			{2, ParticularityCreek},
			{3, ParticularityClearing},
			{1, ParticularityPond},
			{1, ParticularityCaravan},
		},
	},
	TerrainMountain: {
		minCount: 0, maxCount: 1, resources: 2,
		features: weighted{
			{1, ParticularityTown},
			{1, ParticularityRiver},
			{1, ParticularityCanyon},
			{3, ParticularityBoulders},
			{1, ParticularityLake},
			{1, ParticularityCaravan},
		},
	},
}

var terrains = []Terrain{TerrainCoast, TerrainPlains, TerrainForest, TerrainMountain}

// generateTutorial rolls the template of a tutorial realm and the island of
// its initial view.
func generateTutorial(rng *rand.Rand, rows, cols int) (Template, Island, error) {
	cells, err := hex.Grid(rows, cols)
	if err != nil {
		return Template{}, Island{}, fmt.Errorf("generating grid: %w", err)
	}

	regions := selection.NewMap[RegionId, Region]()
	for _, cell := range cells {
		regions.Insert(RegionId(cell.Id), tutorialRegion(rng, cell))
	}

	view := selection.NewMap[RegionId, Region]()
	for id := range RegionId(min(2, len(cells))) {
		r, _ := regions.Get(id)
		view.Insert(id, r.Project(VisibilityComplete))
	}

	return Template{
		Regions:    regions,
		Expedition: tutorialExpedition(rng),
	}, view, nil
}

func tutorialRegion(rng *rand.Rand, cell hex.Cell) Region {
	terrain := terrains[rng.IntN(len(terrains))]
	table := tutorialTables[terrain]

	seen := mapset.New[ParticularityKind]()
	var features []Particularity
	count := table.minCount + rng.IntN(table.maxCount-table.minCount+1)
	for range count {
		k := table.features.pick(rng)
		if seen.Has(k) {
			continue
		}
		seen.Put(k)
		features = append(features, Landmark(k))
	}

	neighbors := make([]RegionId, 0, len(cell.Neighbors))
	for _, n := range cell.Neighbors {
		neighbors = append(neighbors, RegionId(n))
	}

	return Region{
		Id:              RegionId(cell.Id),
		Terrain:         terrain,
		Particularities: selection.NewList(features...),
		Buildings:       selection.NewList[Building](),
		Resources:       table.resources,
		Neighbors:       neighbors,
		Offset:          cell.Offset,
	}
}

func tutorialExpedition(rng *rand.Rand) *Expedition {
	explorers := []Explorer{
		NewExplorer(0, []Trait{TraitRanger},
			EquipmentItem(Gear(EquipmentBow)),
			EquipmentItem(Supply(EquipmentArrows, 75)),
			EquipmentItem(Gear(EquipmentKnife)),
			EquipmentItem(Supply(EquipmentCoins, 110)),
			EquipmentItem(Gear(EquipmentTelescope)),
			EquipmentItem(Supply(EquipmentHerbs, 20)),
		),
		NewExplorer(1, []Trait{TraitBuilder},
			EquipmentItem(Gear(EquipmentTools)),
			EquipmentItem(Supply(EquipmentFood, 10)),
			EquipmentItem(Gear(EquipmentPipe)),
			EquipmentItem(Gear(EquipmentBlankets)),
			EquipmentItem(Gear(EquipmentKnife)),
		),
		NewExplorer(2, nil,
			EquipmentItem(Gear(EquipmentPots)),
			EquipmentItem(Gear(EquipmentTinder)),
			EquipmentItem(Supply(EquipmentFirewood, 4)),
			EquipmentItem(Gear(EquipmentFlint)),
			EquipmentItem(Gear(EquipmentRope)),
		),
	}

	extra := rng.IntN(3)
	if extra >= 1 {
		explorers = append(explorers, NewExplorer(3, []Trait{TraitCartographer},
			EquipmentItem(Supply(EquipmentParchment, 10)),
			EquipmentItem(Gear(EquipmentMap)),
			EquipmentItem(Gear(EquipmentRope)),
			EquipmentItem(Gear(EquipmentWax)),
			EquipmentItem(Gear(EquipmentSealStamp)),
		))
	}
	if extra == 2 {
		sailor := NewExplorer(4, []Trait{TraitSailor},
			EquipmentItem(Supply(EquipmentCoins, 32)),
			EquipmentItem(Supply(EquipmentGold, 4)),
			EquipmentItem(Gear(EquipmentRope)),
			EquipmentItem(Gear(EquipmentKnife)),
			EquipmentItem(Gear(EquipmentCompass)),
			EquipmentItem(Gear(EquipmentTelescope)),
		)
		if rng.IntN(2) == 0 {
			sailor.Inventory.Insert(EquipmentItem(Gear(EquipmentCanoe)))
		}
		explorers = append(explorers, sailor)
	}

	return NewExpedition(explorers...)
}
