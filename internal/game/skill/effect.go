package skill

import (
	"fmt"

	"github.com/cory-johannsen/emblem/internal/game/item"
)

// EffectKind identifies what an activated skill does. Each kind reads a
// fixed subset of Effect's fields; Validate enforces the pairing so
// malformed payloads are caught at load time.
type EffectKind string

const (
	// EffectStatBoost adds Amount to the transient modifier of Stat.
	EffectStatBoost EffectKind = "stat_boost"
	// EffectDamageBoost adds Amount to damage dealt.
	EffectDamageBoost EffectKind = "damage_boost"
	// EffectDamageReduce subtracts Amount flat, or Ratio of the raw
	// attack−defense delta, from damage taken.
	EffectDamageReduce EffectKind = "damage_reduce"
	// EffectHitBoost adds Amount to hit chance.
	EffectHitBoost EffectKind = "hit_boost"
	// EffectAvoidBoost adds Amount to avoid.
	EffectAvoidBoost EffectKind = "avoid_boost"
	// EffectCritBoost adds Amount to crit chance.
	EffectCritBoost EffectKind = "crit_boost"
	// EffectHeal restores Amount hp flat, Ratio of max hp at activation,
	// or DamageRatio of damage dealt after a landed strike.
	EffectHeal EffectKind = "heal"
	// EffectGuaranteedCounter lets the holder counter regardless of range.
	EffectGuaranteedCounter EffectKind = "guaranteed_counter"
	// EffectGuaranteedFollowUp lets the holder follow up regardless of
	// the attack-speed margin.
	EffectGuaranteedFollowUp EffectKind = "guaranteed_follow_up"
	// EffectSpecial is the flexible attack variant: multi-hit strikes,
	// defense pierce, an initiative swap, or a vs-category bonus.
	EffectSpecial EffectKind = "special"
)

// Valid reports whether k is a known effect kind.
func (k EffectKind) Valid() bool {
	switch k {
	case EffectStatBoost, EffectDamageBoost, EffectDamageReduce, EffectHitBoost,
		EffectAvoidBoost, EffectCritBoost, EffectHeal, EffectGuaranteedCounter,
		EffectGuaranteedFollowUp, EffectSpecial:
		return true
	}
	return false
}

// Effect is a closed tagged variant: Kind selects which payload fields are
// meaningful, and Validate rejects definitions whose fields do not match
// their kind. The source system carried these as open dictionaries; the
// closed shape moves most malformed-payload handling to load time.
type Effect struct {
	Kind EffectKind `yaml:"kind"`

	// Stat is the boosted stat for stat_boost.
	Stat StatName `yaml:"stat,omitempty"`
	// Amount is the flat value for stat/damage/hit/avoid/crit boosts,
	// flat damage_reduce, and flat heal.
	Amount int `yaml:"amount,omitempty"`
	// Ratio is the proportional value for damage_reduce (of the raw
	// attack−defense delta) and heal (of max hp).
	Ratio float64 `yaml:"ratio,omitempty"`
	// DamageRatio is the heal fraction of damage dealt by a landed strike.
	DamageRatio float64 `yaml:"damage_ratio,omitempty"`

	// Strikes and StrikeScale configure a multi-hit special: Strikes hits
	// per strike, each dealing StrikeScale × base damage.
	Strikes     int     `yaml:"strikes,omitempty"`
	StrikeScale float64 `yaml:"strike_scale,omitempty"`
	// Pierce is the fraction of the defender's ignored defense restored
	// as damage by a piercing special.
	Pierce float64 `yaml:"pierce,omitempty"`
	// Vantage marks an initiative-swap special; it only takes hold when
	// the skill's own hp-threshold trigger passes at pre-combat.
	Vantage bool `yaml:"vantage,omitempty"`
	// VsCategory with VsHitBonus/VsAvoidBonus grants conditional hit and
	// avoid against opponents wielding the named category.
	VsCategory   item.Category `yaml:"vs_category,omitempty"`
	VsHitBonus   int           `yaml:"vs_hit_bonus,omitempty"`
	VsAvoidBonus int           `yaml:"vs_avoid_bonus,omitempty"`
}

// Validate checks that the effect's payload fields match its kind.
//
// Postcondition: A nil return guarantees the effect can be applied without
// further payload checks.
func (e Effect) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("skill: unknown effect kind %q", e.Kind)
	}
	switch e.Kind {
	case EffectStatBoost:
		if !e.Stat.Valid() {
			return fmt.Errorf("skill: stat_boost has unknown stat %q", e.Stat)
		}
		if e.Amount == 0 {
			return fmt.Errorf("skill: stat_boost amount must be non-zero")
		}
	case EffectDamageBoost, EffectHitBoost, EffectAvoidBoost, EffectCritBoost:
		if e.Amount == 0 {
			return fmt.Errorf("skill: %s amount must be non-zero", e.Kind)
		}
	case EffectDamageReduce:
		flat := e.Amount > 0
		ratio := e.Ratio > 0
		if flat == ratio {
			return fmt.Errorf("skill: damage_reduce requires exactly one of amount > 0 or ratio > 0")
		}
		if ratio && e.Ratio > 1 {
			return fmt.Errorf("skill: damage_reduce ratio must be in (0,1], got %g", e.Ratio)
		}
	case EffectHeal:
		set := 0
		if e.Amount > 0 {
			set++
		}
		if e.Ratio > 0 {
			set++
		}
		if e.DamageRatio > 0 {
			set++
		}
		if set != 1 {
			return fmt.Errorf("skill: heal requires exactly one of amount, ratio, damage_ratio")
		}
		if e.Ratio > 1 || e.DamageRatio > 1 {
			return fmt.Errorf("skill: heal ratios must be in (0,1]")
		}
	case EffectGuaranteedCounter, EffectGuaranteedFollowUp:
		// Pure flags, no payload.
	case EffectSpecial:
		if err := e.validateSpecial(); err != nil {
			return err
		}
	}
	return nil
}

func (e Effect) validateSpecial() error {
	multi := e.Strikes != 0 || e.StrikeScale != 0
	pierce := e.Pierce != 0
	versus := e.VsCategory != "" || e.VsHitBonus != 0 || e.VsAvoidBonus != 0

	if !multi && !pierce && !e.Vantage && !versus {
		return fmt.Errorf("skill: special effect declares no behavior")
	}
	if multi {
		if e.Strikes < 2 {
			return fmt.Errorf("skill: multi-hit special requires strikes >= 2, got %d", e.Strikes)
		}
		if e.StrikeScale <= 0 {
			return fmt.Errorf("skill: multi-hit special requires strike_scale > 0, got %g", e.StrikeScale)
		}
	}
	if pierce && (e.Pierce < 0 || e.Pierce > 1) {
		return fmt.Errorf("skill: special pierce must be in (0,1], got %g", e.Pierce)
	}
	if versus {
		if !e.VsCategory.Valid() {
			return fmt.Errorf("skill: special vs_category %q is unknown", e.VsCategory)
		}
		if e.VsHitBonus == 0 && e.VsAvoidBonus == 0 {
			return fmt.Errorf("skill: special vs_category requires a hit or avoid bonus")
		}
	}
	return nil
}
