package support

import (
	"github.com/cory-johannsen/emblem/internal/game/combat"
)

// DefaultRange is the Manhattan distance within which a bonded ally
// contributes a bonus.
const DefaultRange = 3

// BonusFor derives the combat bonus one bond of the given rank grants:
// flat damage and defense equal to the rank, hit and avoid at five times
// the rank.
func BonusFor(l Level) combat.SupportBonus {
	v := int(l)
	return combat.SupportBonus{
		Damage:  v,
		Defense: v,
		Hit:     v * 5,
		Avoid:   v * 5,
	}
}

// Provider folds a bond ledger and a battlefield roster into the combat
// engine's proximity interface: each living bonded ally within range
// adds its rank bonus.
type Provider struct {
	sys      *System
	roster   []*combat.Combatant
	maxRange int
}

// NewProvider creates a provider over the ledger and roster. A
// non-positive maxRange falls back to DefaultRange.
//
// Precondition: sys must not be nil.
func NewProvider(sys *System, roster []*combat.Combatant, maxRange int) *Provider {
	if maxRange <= 0 {
		maxRange = DefaultRange
	}
	return &Provider{sys: sys, roster: roster, maxRange: maxRange}
}

// Bonus sums the rank bonuses of every living bonded ally within range
// of c.
func (p *Provider) Bonus(c *combat.Combatant) combat.SupportBonus {
	var total combat.SupportBonus
	for _, ally := range p.roster {
		if ally == c || ally.ID == c.ID || ally.IsDead() {
			continue
		}
		pair, ok := p.sys.Pair(c.ID, ally.ID)
		if !ok || pair.Level == LevelNone {
			continue
		}
		if combat.Distance(c, ally) > p.maxRange {
			continue
		}
		total = total.Add(BonusFor(pair.Level))
	}
	return total
}
