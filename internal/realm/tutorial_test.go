package realm

import (
	"math/rand/v2"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestGenerateTutorial(t *testing.T) {
	for seed := range uint64(20) {
		rng := rand.New(rand.NewPCG(seed, seed))
		tmpl, view, err := generateTutorial(rng, DefaultRows, DefaultCols)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}

		testutil.AssertEqual(t, "regions", tmpl.Regions.Len(), DefaultRows*DefaultCols)
		testutil.AssertEqual(t, "view keys", view.Keys(), []RegionId{0, 1})

		for id, r := range tmpl.Regions.All() {
			table := tutorialTables[r.Terrain]
			testutil.AssertEqual(t, "resources", r.Resources, table.resources)

			n := r.Particularities.Len()
			if n > table.maxCount {
				t.Errorf("seed %d region %d: %d particularities, max %d", seed, id, n, table.maxCount)
			}
			seen := map[ParticularityKind]bool{}
			for _, p := range r.Particularities.All() {
				if seen[p.Kind] {
					t.Errorf("seed %d region %d: duplicate %s", seed, id, p)
				}
				seen[p.Kind] = true
			}

			for _, n := range r.Neighbors {
				other, _ := tmpl.Regions.Get(n)
				testutil.AssertEqual(t, "symmetric", other.IsNeighbor(id), true)
			}
		}

		count := tmpl.Expedition.Explorers.Len()
		if count < 3 || count > 5 {
			t.Errorf("seed %d: %d explorers", seed, count)
		}
		for i, e := range tmpl.Expedition.Explorers.All() {
			testutil.AssertEqual(t, "id", e.Id, ExplorerId(i))
			testutil.AssertEqual(t, "embarked", e.Embarked(), false)
		}
	}
}

func TestTutorialExpedition_Archetypes(t *testing.T) {
	x := tutorialExpedition(rand.New(rand.NewPCG(1, 2)))

	tests := map[string]struct {
		id         ExplorerId
		expActions []Action
		expFirst   Item
	}{
		"ranger": {
			id:         0,
			expActions: []Action{ActionHunt},
			expFirst:   EquipmentItem(Gear(EquipmentBow)),
		},
		"builder": {
			id:         1,
			expActions: []Action{ActionBuild},
			expFirst:   EquipmentItem(Gear(EquipmentTools)),
		},
		"no trait": {
			id:         2,
			expActions: []Action{ActionWait},
			expFirst:   EquipmentItem(Gear(EquipmentPots)),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := x.Explorer(tt.id)
			testutil.AssertEqual(t, "actions", e.TraitActions(), tt.expActions)
			first, _ := e.Inventory.Current()
			testutil.AssertEqual(t, "first item", first, tt.expFirst)
		})
	}
}

func TestWeightedPick(t *testing.T) {
	w := weighted{
		{0, ParticularityTown},
		{1, ParticularityLake},
	}
	rng := rand.New(rand.NewPCG(3, 4))
	for range 50 {
		testutil.AssertEqual(t, "kind", w.pick(rng), ParticularityLake)
	}
}
