package realm

import (
	"errors"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func newTestStrategy(t *testing.T, opts ...StrategyOpt) *Strategy {
	t.Helper()
	opts = append([]StrategyOpt{WithSeed(42)}, opts...)
	s, err := New(7, VariantTutorial, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

// setRegion overwrites a template region for a test.
func setRegion(s *Strategy, id RegionId, fn func(r *Region)) {
	s.template.Regions.Update(id, fn)
}

type refuseRules struct{}

func (refuseRules) ValidMove(*Template, *Explorer, RegionId) bool           { return false }
func (refuseRules) ValidAction(*Template, *Explorer, RegionId, Action) bool { return false }

func assertViewWithinTemplate(t *testing.T, s *Strategy) {
	t.Helper()
	for id, v := range s.view.Island.All() {
		tr, ok := s.template.Regions.Get(id)
		if !ok {
			t.Fatalf("view region %d missing from template", id)
		}
		testutil.AssertEqual(t, "terrain", v.Terrain, tr.Terrain)
		switch v.Visibility {
		case VisibilityNone:
			testutil.AssertEqual(t, "none resources", v.Resources, 0)
			testutil.AssertEqual(t, "none particularities", v.Particularities.Len(), 0)
			testutil.AssertEqual(t, "none buildings", v.Buildings.Len(), 0)
		case VisibilityPartial:
			testutil.AssertEqual(t, "partial resources", v.Resources, 0)
			for _, p := range v.Particularities.All() {
				if p.IsItem() {
					t.Errorf("region %d: partial view shows item %s", id, p)
				}
			}
		}
		if v.Particularities.Len() > tr.Particularities.Len() {
			t.Errorf("region %d: view shows more particularities than the template", id)
		}
	}
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		variant Variant
		opts    []StrategyOpt
		expErr  string
	}{
		"tutorial": {
			variant: VariantTutorial,
		},
		"unknown variant": {
			variant: Variant(9),
			expErr:  "unknown realm variant",
		},
		"bad grid": {
			variant: VariantTutorial,
			opts:    []StrategyOpt{WithGridSize(0, 3)},
			expErr:  "grid dimensions must be positive",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(1, tt.variant, tt.opts...)
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestNew_InitialView(t *testing.T) {
	s := newTestStrategy(t)
	v := s.View()

	testutil.AssertEqual(t, "id", v.Id, RealmId(7))
	testutil.AssertEqual(t, "title", v.Title, "tutorial")
	testutil.AssertEqual(t, "story", v.Story, "embark all explorers.")
	testutil.AssertEqual(t, "keys", v.Island.Keys(), []RegionId{0, 1})
	testutil.AssertEqual(t, "done", v.Done, false)
	testutil.AssertEqual(t, "objectives", v.Objectives, []Objective{ObjectiveEmbarkExplorers})
	for _, r := range v.Island.All() {
		testutil.AssertEqual(t, "visibility", r.Visibility, VisibilityComplete)
	}
	for _, e := range v.Expedition.Explorers.All() {
		testutil.AssertEqual(t, "embarked", e.Embarked(), false)
	}
}

func TestNew_SeedIsReproducible(t *testing.T) {
	a := newTestStrategy(t)
	b := newTestStrategy(t)

	for id, ra := range a.template.Regions.All() {
		rb, _ := b.template.Regions.Get(id)
		testutil.AssertEqual(t, "terrain", ra.Terrain, rb.Terrain)
		testutil.AssertEqual(t, "particularities", ra.Particularities.Items(), rb.Particularities.Items())
	}
	testutil.AssertEqual(t, "explorers", a.template.Expedition.Explorers.Len(), b.template.Expedition.Explorers.Len())
}

func TestMove_EmbarkThenMove(t *testing.T) {
	s := newTestStrategy(t)

	if err := s.Move(0, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := s.View()
	e := v.Expedition.Explorer(0)
	testutil.AssertEqual(t, "embarked", e.Embarked(), true)
	testutil.AssertEqual(t, "region", *e.Region, RegionId(3))

	three, _ := s.template.Regions.Get(3)
	for id, r := range v.Island.All() {
		exp := VisibilityNone
		switch {
		case id == 3:
			exp = VisibilityLive
		case three.IsNeighbor(id):
			exp = VisibilityPartial
		}
		testutil.AssertEqual(t, "visibility", r.Visibility, exp)
	}
	for _, n := range three.Neighbors {
		testutil.AssertEqual(t, "neighbor in view", v.Island.Has(n), true)
	}
	testutil.AssertEqual(t, "age", v.Age, 1)
	assertViewWithinTemplate(t, s)
}

func TestMove_Errors(t *testing.T) {
	tests := map[string]struct {
		explorer ExplorerId
		region   RegionId
		opts     []StrategyOpt
		expErr   error
	}{
		"unknown region": {
			explorer: 0,
			region:   99,
			expErr:   ErrUnknownRegion,
		},
		"unknown explorer": {
			explorer: 12,
			region:   3,
			expErr:   ErrUnknownExplorer,
		},
		"rules refuse": {
			explorer: 0,
			region:   3,
			opts:     []StrategyOpt{WithRules(refuseRules{})},
			expErr:   ErrNotPermitted,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStrategy(t, tt.opts...)
			err := s.Move(tt.explorer, tt.region)
			if !errors.Is(err, tt.expErr) {
				t.Fatalf("expected %v, got %v", tt.expErr, err)
			}
			testutil.AssertEqual(t, "age", s.view.Age, 0)
			testutil.AssertEqual(t, "embarked", s.template.Expedition.Embarked(), 0)
		})
	}
}

func TestState_DoneOnce(t *testing.T) {
	s := newTestStrategy(t)
	n := s.template.Expedition.Explorers.Len()

	for i := range n {
		testutil.AssertEqual(t, "done before all embark", s.Done(), false)
		if err := s.Move(ExplorerId(i), RegionId(i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	testutil.AssertEqual(t, "done", s.Done(), true)
	testutil.AssertEqual(t, "story", s.view.Story, "all explorers have embarked. you can keep playing around.")

	testutil.AssertEqual(t, "second state", s.State(), false)
	if err := s.Move(0, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "still done", s.Done(), true)
	testutil.AssertEqual(t, "completed", s.view.Completed, []Objective{ObjectiveEmbarkExplorers})
}

func TestState_LiveNotDowngraded(t *testing.T) {
	s := newTestStrategy(t)

	// Explorer 0 stands in 6; explorer 1 stands next to it in 7 and its
	// neighbor pass would only grant partial on 6.
	if err := s.Move(0, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Move(1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	six, _ := s.view.Region(6)
	seven, _ := s.view.Region(7)
	testutil.AssertEqual(t, "region 6", six.Visibility, VisibilityLive)
	testutil.AssertEqual(t, "region 7", seven.Visibility, VisibilityLive)
}

func TestState_MappedRegionsPartial(t *testing.T) {
	s := newTestStrategy(t)
	setRegion(s, 20, func(r *Region) {
		r.Mapped = true
		r.Particularities.Insert(DroppedItem(Gear(EquipmentRope)))
	})

	s.State()

	r, ok := s.view.Region(20)
	testutil.AssertEqual(t, "in view", ok, true)
	testutil.AssertEqual(t, "visibility", r.Visibility, VisibilityPartial)
	assertViewWithinTemplate(t, s)
}

func TestAction(t *testing.T) {
	tests := map[string]struct {
		action    Action
		resources int
		check     func(t *testing.T, r Region)
		expErr    error
	}{
		"build adds a hut": {
			action:    ActionBuild,
			resources: 2,
			check: func(t *testing.T, r Region) {
				testutil.AssertEqual(t, "buildings", r.Buildings.Items(), []Building{BuildingHut})
			},
		},
		"map marks region": {
			action:    ActionMap,
			resources: 2,
			check: func(t *testing.T, r Region) {
				testutil.AssertEqual(t, "mapped", r.Mapped, true)
			},
		},
		"hunt consumes a resource": {
			action:    ActionHunt,
			resources: 2,
			check: func(t *testing.T, r Region) {
				testutil.AssertEqual(t, "resources", r.Resources, 1)
			},
		},
		"hunt with nothing left": {
			action:    ActionHunt,
			resources: 0,
			expErr:    ErrNoResources,
			check: func(t *testing.T, r Region) {
				testutil.AssertEqual(t, "resources", r.Resources, 0)
			},
		},
		"wait changes nothing": {
			action:    ActionWait,
			resources: 2,
			check: func(t *testing.T, r Region) {
				testutil.AssertEqual(t, "resources", r.Resources, 2)
				testutil.AssertEqual(t, "buildings", r.Buildings.Len(), 0)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStrategy(t)
			setRegion(s, 4, func(r *Region) {
				r.Resources = tt.resources
				r.Buildings.Clear()
				r.Mapped = false
			})
			if err := s.Move(0, 4); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			age := s.view.Age

			err := s.Action(0, 4, tt.action)
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				testutil.AssertEqual(t, "age", s.view.Age, age)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			r, _ := s.template.Regions.Get(4)
			tt.check(t, r)
		})
	}
}

func TestAction_Refusals(t *testing.T) {
	tests := map[string]struct {
		explorer ExplorerId
		region   RegionId
		opts     []StrategyOpt
		expErr   error
	}{
		"not present": {
			explorer: 1,
			region:   4,
			expErr:   ErrNotPresent,
		},
		"unknown region": {
			explorer: 0,
			region:   -1,
			expErr:   ErrUnknownRegion,
		},
		"rules refuse": {
			explorer: 0,
			region:   4,
			opts:     []StrategyOpt{WithRules(refuseRules{})},
			expErr:   ErrNotPermitted,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStrategy(t)
			if err := s.Move(0, 4); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, opt := range tt.opts {
				opt(s)
			}
			before, _ := s.template.Regions.Get(4)

			err := s.Action(tt.explorer, tt.region, ActionBuild)
			if !errors.Is(err, tt.expErr) {
				t.Fatalf("expected %v, got %v", tt.expErr, err)
			}
			after, _ := s.template.Regions.Get(4)
			testutil.AssertEqual(t, "buildings", after.Buildings.Len(), before.Buildings.Len())
		})
	}
}

// itemNames lists items by name in sorted order. Picking equipment back up
// appends it to the inventory, so a round trip keeps the items but not
// their order.
func itemNames(items []Item) []string {
	names := make([]string, 0, len(items))
	for _, i := range items {
		names = append(names, i.String())
	}
	slices.Sort(names)
	return names
}

func TestDropPickRoundTrip(t *testing.T) {
	tests := map[string]struct {
		item Equipment
	}{
		"first item":  {item: Gear(EquipmentBow)},
		"middle item": {item: Gear(EquipmentKnife)},
		"last item":   {item: Supply(EquipmentHerbs, 20)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStrategy(t)
			for _, id := range []ExplorerId{0, 1} {
				if err := s.Move(id, 8); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			before, _ := s.template.Regions.Get(8)
			beforeInv := s.template.Expedition.Explorer(0).Inventory.Items()
			if slices.Index(beforeInv, EquipmentItem(tt.item)) < 0 {
				t.Fatalf("explorer 0 does not carry %s: %v", tt.item, beforeInv)
			}

			if err := s.DropEquipment(0, 8, tt.item); err != nil {
				t.Fatalf("drop: %v", err)
			}
			r, _ := s.template.Regions.Get(8)
			testutil.AssertEqual(t, "dropped on region", r.Particularities.IndexFunc(func(p Particularity) bool { return p == DroppedItem(tt.item) }) >= 0, true)
			testutil.AssertEqual(t, "inventory", len(s.template.Expedition.Explorer(0).Inventory.Items()), len(beforeInv)-1)

			live, _ := s.view.Region(8)
			testutil.AssertEqual(t, "visible while live", live.Particularities.Len(), r.Particularities.Len())

			err := s.DropEquipment(0, 8, tt.item)
			if !errors.Is(err, ErrItemAbsent) {
				t.Fatalf("expected ErrItemAbsent, got %v", err)
			}

			if err := s.PickEquipment(0, 8, tt.item); err != nil {
				t.Fatalf("pick: %v", err)
			}
			after, _ := s.template.Regions.Get(8)
			testutil.AssertEqual(t, "particularities", after.Particularities.Items(), before.Particularities.Items())
			testutil.AssertEqual(t, "inventory", itemNames(s.template.Expedition.Explorer(0).Inventory.Items()), itemNames(beforeInv))

			err = s.PickEquipment(1, 8, tt.item)
			if !errors.Is(err, ErrItemAbsent) {
				t.Fatalf("expected ErrItemAbsent, got %v", err)
			}
		})
	}
}

func TestPickByAnotherExplorer(t *testing.T) {
	s := newTestStrategy(t)
	for _, id := range []ExplorerId{0, 1} {
		if err := s.Move(id, 8); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	bow := Gear(EquipmentBow)

	if err := s.DropEquipment(0, 8, bow); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := s.PickEquipment(1, 8, bow); err != nil {
		t.Fatalf("pick: %v", err)
	}

	inv := s.template.Expedition.Explorer(1).Inventory.Items()
	testutil.AssertEqual(t, "last item", inv[len(inv)-1], EquipmentItem(bow))
}

func TestInvestigateForget(t *testing.T) {
	s := newTestStrategy(t)
	camp := Landmark(ParticularityCamp)
	setRegion(s, 12, func(r *Region) { r.Particularities.Insert(camp) })
	if err := s.Move(2, 12); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.InvestigateParticularity(2, 12, camp); err != nil {
		t.Fatalf("investigate: %v", err)
	}
	r, _ := s.template.Regions.Get(12)
	testutil.AssertEqual(t, "removed from region", r.Particularities.IndexFunc(func(p Particularity) bool { return p == camp }), -1)
	inv := s.template.Expedition.Explorer(2).Inventory.Items()
	testutil.AssertEqual(t, "remembered", inv[len(inv)-1], RememberedItem(12, camp))

	if err := s.Move(2, 13); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := s.ForgetParticularity(2, 12, camp)
	if !errors.Is(err, ErrNotPresent) {
		t.Fatalf("expected ErrNotPresent, got %v", err)
	}

	if err := s.Move(2, 12); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ForgetParticularity(2, 12, camp); err != nil {
		t.Fatalf("forget: %v", err)
	}
	r, _ = s.template.Regions.Get(12)
	testutil.AssertEqual(t, "back in region", r.Particularities.IndexFunc(func(p Particularity) bool { return p == camp }) >= 0, true)

	err = s.InvestigateParticularity(2, 12, DroppedItem(Gear(EquipmentRope)))
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
}

func TestView_IsIndependent(t *testing.T) {
	s := newTestStrategy(t)
	v := s.View()

	v.Expedition.Explorer(0).Inventory.Clear()
	v.Island.Update(0, func(r *Region) { r.Particularities.Insert(Landmark(ParticularityTown)) })

	testutil.AssertEqual(t, "template inventory", s.template.Expedition.Explorer(0).Inventory.Len() > 0, true)
	orig, _ := s.view.Region(0)
	fresh, _ := v.Region(0)
	testutil.AssertEqual(t, "view particularities", orig.Particularities.Len(), fresh.Particularities.Len()-1)
}
