// Package support tracks ally bonds: pairs of combatants accumulate
// points through shared battles and adjacency, rank up through fixed
// thresholds, and grant positional combat bonuses scaled by rank.
package support

import (
	"fmt"
	"sort"
	"strings"
)

// Level is a bond rank. Higher ranks grant larger bonuses.
type Level int

const (
	LevelNone Level = iota
	LevelC
	LevelB
	LevelA
	LevelS
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelC:
		return "C"
	case LevelB:
		return "B"
	case LevelA:
		return "A"
	case LevelS:
		return "S"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// pointsNeeded is the cumulative point total required to reach a rank.
func pointsNeeded(l Level) int {
	switch l {
	case LevelC:
		return 20
	case LevelB:
		return 60
	case LevelA:
		return 120
	case LevelS:
		return 200
	}
	return 0
}

// Pair is one bond between two combatants, identified by their sorted IDs.
//
// Invariant: First < Second; Level never exceeds Cap.
type Pair struct {
	First  string
	Second string
	Points int
	Level  Level
	// Cap is the highest rank this bond can reach.
	Cap Level
}

// AddPoints accumulates bond points and reports whether the pair ranked
// up, with the new rank. A pair at its cap gains nothing. A single call
// raises at most one rank.
func (p *Pair) AddPoints(n int) (bool, Level) {
	if p.Level >= p.Cap || n <= 0 {
		return false, p.Level
	}
	p.Points += n
	next := p.Level + 1
	if p.Points >= pointsNeeded(next) {
		p.Level = next
		return true, next
	}
	return false, p.Level
}

// System is the ledger of all registered bonds plus the shared-battle
// counters that feed them. It is not safe for concurrent use.
type System struct {
	pairs   map[string]*Pair
	battles map[string]int
}

// NewSystem creates an empty ledger.
func NewSystem() *System {
	return &System{
		pairs:   make(map[string]*Pair),
		battles: make(map[string]int),
	}
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// Register creates a bond between two combatant IDs with the given rank
// cap. LevelNone as cap defaults to LevelA.
func (s *System) Register(a, b string, maxLevel Level) (*Pair, error) {
	if a == "" || b == "" {
		return nil, fmt.Errorf("support: both combatant ids are required")
	}
	if a == b {
		return nil, fmt.Errorf("support: combatant %q cannot bond with itself", a)
	}
	key := pairKey(a, b)
	if _, ok := s.pairs[key]; ok {
		return nil, fmt.Errorf("support: pair %q/%q already registered", a, b)
	}
	if maxLevel == LevelNone {
		maxLevel = LevelA
	}
	first, second := a, b
	if first > second {
		first, second = second, first
	}
	p := &Pair{First: first, Second: second, Cap: maxLevel}
	s.pairs[key] = p
	return p, nil
}

// Pair looks up the bond between two combatant IDs, in either order.
func (s *System) Pair(a, b string) (*Pair, bool) {
	p, ok := s.pairs[pairKey(a, b)]
	return p, ok
}

// AddPoints adds bond points to a registered pair. Unregistered pairs
// are ignored.
func (s *System) AddPoints(a, b string, n int) (bool, Level) {
	p, ok := s.Pair(a, b)
	if !ok {
		return false, LevelNone
	}
	return p.AddPoints(n)
}

// RecordBattleTogether notes that two bonded combatants fought in the
// same encounter. Every fifth shared battle grants 5 bond points.
func (s *System) RecordBattleTogether(a, b string) {
	key := pairKey(a, b)
	if _, ok := s.pairs[key]; !ok {
		return
	}
	s.battles[key]++
	if s.battles[key]%5 == 0 {
		s.AddPoints(a, b, 5)
	}
}

// RecordAdjacentTurn notes that two bonded combatants ended a turn
// adjacent, worth 1 bond point.
func (s *System) RecordAdjacentTurn(a, b string) {
	s.AddPoints(a, b, 1)
}

// Pairs returns all registered bonds ordered by their member IDs.
func (s *System) Pairs() []*Pair {
	out := make([]*Pair, 0, len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].First != out[j].First {
			return out[i].First < out[j].First
		}
		return out[i].Second < out[j].Second
	})
	return out
}

// Describe renders the ledger for logs and debugging.
func (s *System) Describe() string {
	var b strings.Builder
	for _, p := range s.Pairs() {
		fmt.Fprintf(&b, "%s/%s rank %s (%d pts)\n", p.First, p.Second, p.Level, p.Points)
	}
	return b.String()
}
