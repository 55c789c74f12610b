package skill

// Active tracks one activated skill during an encounter.
type Active struct {
	Def *Def
	// Remaining is the number of applications left; -1 = unlimited.
	Remaining int
}

// ActiveSet is a combatant's transient per-encounter skill state: the set
// of activated skills plus the stat-modifier map their effects feed.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: outside an encounter the set is empty and the modifier map
// holds no entries.
type ActiveSet struct {
	skills map[string]*Active
	order  []string // activation order, for stable reporting
	mods   map[StatName]int
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{
		skills: make(map[string]*Active),
		mods:   make(map[StatName]int),
	}
}

// Activate marks def active with its full duration and reports whether it
// was newly activated. Re-activating an already-active skill is a no-op
// returning false, so a conditional skill re-evaluated each strike applies
// its effect once.
//
// Precondition: def must not be nil.
func (s *ActiveSet) Activate(def *Def) bool {
	if _, ok := s.skills[def.ID]; ok {
		return false
	}
	remaining := def.Duration
	if remaining <= 0 {
		remaining = -1
	}
	s.skills[def.ID] = &Active{Def: def, Remaining: remaining}
	s.order = append(s.order, def.ID)
	return true
}

// Spend decrements the remaining applications of the skill with id.
// At zero the skill deactivates and is removed from the set. Unlimited
// skills are unaffected.
//
// Postcondition: Has(id) is false once a finite duration is exhausted.
func (s *ActiveSet) Spend(id string) {
	a, ok := s.skills[id]
	if !ok || a.Remaining < 0 {
		return
	}
	a.Remaining--
	if a.Remaining <= 0 {
		s.remove(id)
	}
}

// Has reports whether the skill with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.skills[id]
	return ok
}

// All returns the active skills in activation order.
// The slice is a new allocation; the pointed-to Active values are shared.
func (s *ActiveSet) All() []*Active {
	out := make([]*Active, 0, len(s.skills))
	for _, id := range s.order {
		if a, ok := s.skills[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Names returns the display names of the active skills in activation order.
func (s *ActiveSet) Names() []string {
	out := make([]string, 0, len(s.skills))
	for _, id := range s.order {
		if a, ok := s.skills[id]; ok {
			out = append(out, a.Def.Name)
		}
	}
	return out
}

// AnyEffect reports whether any active skill's effect has the given kind.
func (s *ActiveSet) AnyEffect(kind EffectKind) bool {
	for _, a := range s.skills {
		if a.Def.Effect.Kind == kind {
			return true
		}
	}
	return false
}

// AddMod adds delta to the transient modifier for stat.
func (s *ActiveSet) AddMod(stat StatName, delta int) {
	s.mods[stat] += delta
}

// Mod returns the transient modifier for stat, or 0 if none.
func (s *ActiveSet) Mod(stat StatName) int {
	return s.mods[stat]
}

// ModCount returns the number of stats carrying a transient modifier.
func (s *ActiveSet) ModCount() int { return len(s.mods) }

// Len returns the number of active skills.
func (s *ActiveSet) Len() int { return len(s.skills) }

// Clear deactivates every skill and drops every transient modifier.
// Clear is idempotent; calling it on an empty set is a no-op.
//
// Postcondition: Len() == 0 and ModCount() == 0.
func (s *ActiveSet) Clear() {
	if len(s.skills) > 0 {
		s.skills = make(map[string]*Active)
		s.order = s.order[:0]
	}
	if len(s.mods) > 0 {
		s.mods = make(map[StatName]int)
	}
}

func (s *ActiveSet) remove(id string) {
	delete(s.skills, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
