package realm

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Rules are the per-variant authority hooks consulted before a move or an
// action touches the template.
type Rules interface {
	ValidMove(t *Template, e *Explorer, region RegionId) bool
	ValidAction(t *Template, e *Explorer, region RegionId, action Action) bool
}

// TutorialRules permit everything.
type TutorialRules struct{}

func (TutorialRules) ValidMove(*Template, *Explorer, RegionId) bool {
	return true
}

func (TutorialRules) ValidAction(*Template, *Explorer, RegionId, Action) bool {
	return true
}

// Strategy owns the template and view of a single realm. It is not safe for
// concurrent use; callers serialize access.
type Strategy struct {
	id       RealmId
	variant  Variant
	rules    Rules
	rows     int
	cols     int
	seed     uint64
	template Template
	view     Realm
}

type StrategyOpt func(*Strategy)

// WithRules replaces the variant's default rules.
func WithRules(r Rules) StrategyOpt {
	return func(s *Strategy) {
		s.rules = r
	}
}

// WithSeed makes generation reproducible. A zero seed picks a random one.
func WithSeed(seed uint64) StrategyOpt {
	return func(s *Strategy) {
		s.seed = seed
	}
}

func WithGridSize(rows, cols int) StrategyOpt {
	return func(s *Strategy) {
		s.rows = rows
		s.cols = cols
	}
}

// New generates a realm of the given variant.
func New(id RealmId, variant Variant, opts ...StrategyOpt) (*Strategy, error) {
	s := &Strategy{
		id:      id,
		variant: variant,
		rows:    DefaultRows,
		cols:    DefaultCols,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == 0 {
		s.seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(s.seed, uint64(id)))

	switch variant {
	case VariantTutorial:
		t, island, err := generateTutorial(rng, s.rows, s.cols)
		if err != nil {
			return nil, err
		}
		s.template = t
		s.view = Realm{
			Id:         id,
			Variant:    variant,
			Island:     island,
			Expedition: t.Expedition,
			Title:      tutorialTitle,
			Story:      tutorialStory,
			Objectives: []Objective{ObjectiveEmbarkExplorers},
		}
		if s.rules == nil {
			s.rules = TutorialRules{}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}

	return s, nil
}

func (s *Strategy) Id() RealmId {
	return s.id
}

func (s *Strategy) Variant() Variant {
	return s.variant
}

func (s *Strategy) Seed() uint64 {
	return s.seed
}

// Done reports whether every explorer has embarked at some point.
func (s *Strategy) Done() bool {
	return s.view.Done
}

// View returns a deep copy of the current view.
func (s *Strategy) View() Realm {
	return s.view.Clone()
}

// State recomputes the view from the template and the explorer positions.
// It reports true when this call completed the realm.
func (s *Strategy) State() bool {
	for _, id := range s.view.Island.Keys() {
		s.view.Island.Update(id, func(r *Region) { *r = r.Project(VisibilityNone) })
	}

	for id, r := range s.template.Regions.All() {
		if r.Mapped {
			s.reveal(id, VisibilityPartial)
		}
	}

	for _, e := range s.template.Expedition.Explorers.All() {
		if !e.Embarked() {
			continue
		}
		r, ok := s.template.Regions.Get(*e.Region)
		if !ok {
			continue
		}
		for _, n := range r.Neighbors {
			s.reveal(n, VisibilityPartial)
		}
		s.reveal(r.Id, VisibilityLive)
	}

	justDone := false
	x := s.template.Expedition
	if x.Embarked() == x.Explorers.Len() {
		if !slices.Contains(s.view.Completed, ObjectiveEmbarkExplorers) {
			s.view.Completed = append(s.view.Completed, ObjectiveEmbarkExplorers)
		}
		s.view.Story = completedStory
		justDone = !s.view.Done
		s.view.Done = true
	}

	s.view.Age++
	return justDone
}

// reveal copies template region id into the view at the given level unless
// the view already shows it at that level or better.
func (s *Strategy) reveal(id RegionId, level Visibility) {
	r, ok := s.template.Regions.Get(id)
	if !ok {
		return
	}
	if cur, ok := s.view.Island.Get(id); ok && cur.Visibility >= level {
		return
	}
	s.view.Island.Insert(id, r.Project(level))
}

// locate resolves a region and an explorer, in that order.
func (s *Strategy) locate(region RegionId, explorer ExplorerId) (*Explorer, error) {
	if !s.template.Regions.Has(region) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRegion, region)
	}
	e := s.template.Expedition.Explorer(explorer)
	if e == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownExplorer, explorer)
	}
	return e, nil
}

// present is locate plus the requirement that the explorer stands in region.
func (s *Strategy) present(region RegionId, explorer ExplorerId) (*Explorer, error) {
	e, err := s.locate(region, explorer)
	if err != nil {
		return nil, err
	}
	if !e.In(region) {
		return nil, fmt.Errorf("%w: explorer %d, region %d", ErrNotPresent, explorer, region)
	}
	return e, nil
}

// Move places an explorer in a region. Unembarked explorers embark this way.
func (s *Strategy) Move(explorer ExplorerId, region RegionId) error {
	e, err := s.locate(region, explorer)
	if err != nil {
		return err
	}
	if !s.rules.ValidMove(&s.template, e, region) {
		return fmt.Errorf("%w: move explorer %d to region %d", ErrNotPermitted, explorer, region)
	}

	e.Region = &region
	s.State()
	return nil
}

// Action performs action on the region the explorer stands in.
func (s *Strategy) Action(explorer ExplorerId, region RegionId, action Action) error {
	e, err := s.present(region, explorer)
	if err != nil {
		return err
	}
	if !s.rules.ValidAction(&s.template, e, region, action) {
		return fmt.Errorf("%w: %s by explorer %d", ErrNotPermitted, action, explorer)
	}

	switch action {
	case ActionBuild:
		s.template.Regions.Update(region, func(r *Region) { r.Buildings.Insert(BuildingHut) })
	case ActionMap:
		s.template.Regions.Update(region, func(r *Region) { r.Mapped = true })
	case ActionHunt:
		r, _ := s.template.Regions.Get(region)
		if r.Resources <= 0 {
			return fmt.Errorf("%w: region %d", ErrNoResources, region)
		}
		s.template.Regions.Update(region, func(r *Region) { r.Resources-- })
	case ActionSail, ActionWait:
	default:
		return fmt.Errorf("%w: unknown action %s", ErrNotPermitted, action)
	}

	s.State()
	return nil
}

// DropEquipment moves equipment from the explorer's inventory onto the
// region it stands in.
func (s *Strategy) DropEquipment(explorer ExplorerId, region RegionId, eq Equipment) error {
	e, err := s.present(region, explorer)
	if err != nil {
		return err
	}
	if _, ok := e.Inventory.RemoveFunc(func(i Item) bool { return i == EquipmentItem(eq) }); !ok {
		return fmt.Errorf("%w: %s", ErrItemAbsent, eq)
	}

	s.template.Regions.Update(region, func(r *Region) { r.Particularities.Insert(DroppedItem(eq)) })
	s.State()
	return nil
}

// PickEquipment moves equipment lying in the region into the explorer's
// inventory.
func (s *Strategy) PickEquipment(explorer ExplorerId, region RegionId, eq Equipment) error {
	e, err := s.present(region, explorer)
	if err != nil {
		return err
	}

	found := false
	s.template.Regions.Update(region, func(r *Region) {
		_, found = r.Particularities.RemoveFunc(func(p Particularity) bool { return p == DroppedItem(eq) })
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrItemAbsent, eq)
	}

	e.Inventory.Insert(EquipmentItem(eq))
	s.State()
	return nil
}

// InvestigateParticularity takes a landmark out of the region and records it
// in the explorer's inventory together with the region it came from. Dropped
// equipment is picked, not investigated.
func (s *Strategy) InvestigateParticularity(explorer ExplorerId, region RegionId, p Particularity) error {
	e, err := s.present(region, explorer)
	if err != nil {
		return err
	}
	if p.IsItem() {
		return fmt.Errorf("%w: investigate %s", ErrNotPermitted, p)
	}

	found := false
	s.template.Regions.Update(region, func(r *Region) {
		_, found = r.Particularities.RemoveFunc(func(q Particularity) bool { return q == p })
	})
	if !found {
		return fmt.Errorf("%w: %s", ErrItemAbsent, p)
	}

	e.Inventory.Insert(RememberedItem(region, p))
	s.State()
	return nil
}

// ForgetParticularity returns an investigated landmark to the region it was
// found in. The explorer has to stand there.
func (s *Strategy) ForgetParticularity(explorer ExplorerId, region RegionId, p Particularity) error {
	e, err := s.present(region, explorer)
	if err != nil {
		return err
	}
	if _, ok := e.Inventory.RemoveFunc(func(i Item) bool { return i == RememberedItem(region, p) }); !ok {
		return fmt.Errorf("%w: %s", ErrItemAbsent, p)
	}

	s.template.Regions.Update(region, func(r *Region) { r.Particularities.Insert(p) })
	s.State()
	return nil
}
