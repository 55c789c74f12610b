package combat

import (
	"github.com/cory-johannsen/emblem/internal/game/item"
	"github.com/cory-johannsen/emblem/internal/game/skill"
)

// effects yields every applicable effect of the given kind for c: the
// effects of its activated skills plus its relic's passive effects.
func effects(c *Combatant, kind skill.EffectKind) []skill.Effect {
	var out []skill.Effect
	for _, a := range c.ActiveSkills().All() {
		if a.Def.Effect.Kind == kind {
			out = append(out, a.Def.Effect)
		}
	}
	if c.Relic != nil {
		out = append(out, c.Relic.Def.EffectsOfKind(kind)...)
	}
	return out
}

// triangleAdvantage is the weapon-triangle sign between two combatants:
// +1 when the attacker's category beats the defender's, -1 when beaten,
// 0 otherwise or when either side is unarmed.
func triangleAdvantage(attacker, defender *Combatant) int {
	ac, aok := attacker.WeaponCategory()
	dc, dok := defender.WeaponCategory()
	if !aok || !dok {
		return 0
	}
	return item.Advantage(ac, dc)
}

// clampPercent bounds a chance to [0, 100].
func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// HitChance folds every accuracy modifier into a single percentage:
// base hit rate, triangle bonus, attacker hit-boost and category-counter
// effects, proximity hit, minus defender avoid, terrain dodge, defender
// avoid-boost and category-counter effects, and proximity avoid.
//
// Precondition: attacker and defender must not be nil.
// Postcondition: the result is in [0, 100]. With no activated skills,
// relics, or proximity the computation is pure.
func HitChance(attacker, defender *Combatant, bf Battlefield, prox ProximityProvider) int {
	if bf == nil {
		bf = flatField{}
	}

	chance := attacker.HitRate()
	chance += triangleAdvantage(attacker, defender) * item.TriangleHitBonus

	for _, e := range effects(attacker, skill.EffectHitBoost) {
		chance += e.Amount
	}
	if dc, ok := defender.WeaponCategory(); ok {
		for _, e := range effects(attacker, skill.EffectSpecial) {
			if e.VsCategory == dc {
				chance += e.VsHitBonus
			}
		}
	}

	chance -= defender.Avoid()
	chance -= bf.DodgeAt(defender.X, defender.Y)

	for _, e := range effects(defender, skill.EffectAvoidBoost) {
		chance -= e.Amount
	}
	if ac, ok := attacker.WeaponCategory(); ok {
		for _, e := range effects(defender, skill.EffectSpecial) {
			if e.VsCategory == ac {
				chance -= e.VsAvoidBonus
			}
		}
	}

	if prox != nil {
		chance += prox.Bonus(attacker).Hit
		chance -= prox.Bonus(defender).Avoid
	}

	return clampPercent(chance)
}

// Damage folds every damage modifier into the hp a landed, non-critical
// strike removes: attack power, triangle might, attacker damage-boost and
// pierce effects, proximity damage, minus the defender's governing defense
// stat (resistance against arcane weapons), terrain defense, defender
// damage-reduction effects, and proximity defense.
//
// Precondition: attacker and defender must not be nil.
// Postcondition: the result is never negative.
func Damage(attacker, defender *Combatant, bf Battlefield, prox ProximityProvider) int {
	if bf == nil {
		bf = flatField{}
	}

	power := attacker.AttackPower()

	defStat := defender.StatValue(skill.StatDefense)
	if ac, ok := attacker.WeaponCategory(); ok && ac.IsMagical() {
		defStat = defender.StatValue(skill.StatResistance)
	}

	dmg := power
	dmg += triangleAdvantage(attacker, defender) * item.TriangleMightBonus

	for _, e := range effects(attacker, skill.EffectDamageBoost) {
		dmg += e.Amount
	}
	// A piercing special converts a fraction of the defender's defense
	// back into damage.
	for _, e := range effects(attacker, skill.EffectSpecial) {
		if e.Pierce > 0 {
			dmg += int(float64(defStat) * e.Pierce)
		}
	}

	dmg -= defStat
	dmg -= bf.DefenseAt(defender.X, defender.Y)

	for _, e := range effects(defender, skill.EffectDamageReduce) {
		if e.Amount > 0 {
			dmg -= e.Amount
		} else if e.Ratio > 0 {
			dmg -= int(float64(power-defStat) * e.Ratio)
		}
	}

	if prox != nil {
		dmg += prox.Bonus(attacker).Damage
		dmg -= prox.Bonus(defender).Defense
	}

	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// CritChance folds every critical modifier into a single percentage:
// base crit rate plus attacker crit-boost effects, minus the defender's
// effective luck.
//
// Precondition: attacker and defender must not be nil.
// Postcondition: the result is in [0, 100].
func CritChance(attacker, defender *Combatant) int {
	chance := attacker.CritRate()
	for _, e := range effects(attacker, skill.EffectCritBoost) {
		chance += e.Amount
	}
	chance -= defender.StatValue(skill.StatLuck)
	return clampPercent(chance)
}
