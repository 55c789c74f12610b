// Package skill provides the declarative skill rule model for the emblem
// combat engine: trigger conditions, closed typed effect variants, the
// per-encounter active set, and the YAML-backed definition registry.
package skill

import (
	"fmt"

	"github.com/cory-johannsen/emblem/internal/game/dice"
	"github.com/cory-johannsen/emblem/internal/game/item"
)

// StatName identifies one of the seven core combat stats.
type StatName string

const (
	StatPower      StatName = "power"
	StatMagic      StatName = "magic"
	StatSkill      StatName = "skill"
	StatSpeed      StatName = "speed"
	StatLuck       StatName = "luck"
	StatDefense    StatName = "defense"
	StatResistance StatName = "resistance"
)

// Valid reports whether s is one of the seven known stats.
func (s StatName) Valid() bool {
	switch s {
	case StatPower, StatMagic, StatSkill, StatSpeed, StatLuck, StatDefense, StatResistance:
		return true
	}
	return false
}

// CompareOp is a comparison operator for hp-threshold triggers.
type CompareOp string

const (
	OpLess         CompareOp = "<"
	OpLessEqual    CompareOp = "<="
	OpGreater      CompareOp = ">"
	OpGreaterEqual CompareOp = ">="
)

// Compare applies the operator to (value, threshold).
//
// Postcondition: Returns false for an unknown operator.
func (op CompareOp) Compare(value, threshold float64) bool {
	switch op {
	case OpLess:
		return value < threshold
	case OpLessEqual:
		return value <= threshold
	case OpGreater:
		return value > threshold
	case OpGreaterEqual:
		return value >= threshold
	default:
		return false
	}
}

// TriggerKind identifies when and how a skill's trigger is evaluated.
type TriggerKind string

const (
	// TriggerPercent fires on a fixed-percentage roll.
	TriggerPercent TriggerKind = "percent"
	// TriggerStatScaled fires on a roll against stat × multiplier.
	TriggerStatScaled TriggerKind = "stat_scaled"
	// TriggerHPThreshold fires while hp/max_hp×100 satisfies op threshold.
	TriggerHPThreshold TriggerKind = "hp_threshold"
	// TriggerWeaponCategory fires while the matching weapon category is equipped.
	TriggerWeaponCategory TriggerKind = "weapon_category"
	// TriggerAlways is unconditionally active.
	TriggerAlways TriggerKind = "always"

	// Phase-event kinds fire only when the engine raises the matching event.
	TriggerOnAttack      TriggerKind = "on_attack"
	TriggerOnDefend      TriggerKind = "on_defend"
	TriggerOnKill        TriggerKind = "on_kill"
	TriggerOnDamageTaken TriggerKind = "on_damage_taken"
	TriggerPreCombat     TriggerKind = "pre_combat"
	TriggerPostCombat    TriggerKind = "post_combat"

	// Turn-phase kinds are loadable but raised by the map layer between
	// encounters, never by the exchange sequencer.
	TriggerTurnStart TriggerKind = "turn_start"
	TriggerTurnEnd   TriggerKind = "turn_end"
)

// Valid reports whether k is a known trigger kind.
func (k TriggerKind) Valid() bool {
	switch k {
	case TriggerPercent, TriggerStatScaled, TriggerHPThreshold, TriggerWeaponCategory,
		TriggerAlways, TriggerOnAttack, TriggerOnDefend, TriggerOnKill,
		TriggerOnDamageTaken, TriggerPreCombat, TriggerPostCombat,
		TriggerTurnStart, TriggerTurnEnd:
		return true
	}
	return false
}

// Conditional reports whether k is evaluated against the unit's own state
// rather than a raised phase event. Conditional triggers are re-evaluated
// at each on-attack/on-defend event for the acting side.
func (k TriggerKind) Conditional() bool {
	switch k {
	case TriggerPercent, TriggerStatScaled, TriggerHPThreshold, TriggerWeaponCategory, TriggerAlways:
		return true
	}
	return false
}

// Trigger is a skill's activation condition. Kind selects which parameter
// fields are meaningful; Validate enforces the pairing.
type Trigger struct {
	Kind       TriggerKind   `yaml:"kind"`
	Chance     int           `yaml:"chance,omitempty"`     // percent
	Stat       StatName      `yaml:"stat,omitempty"`       // stat_scaled
	Multiplier float64       `yaml:"multiplier,omitempty"` // stat_scaled
	Op         CompareOp     `yaml:"op,omitempty"`         // hp_threshold
	Threshold  int           `yaml:"threshold,omitempty"`  // hp_threshold
	Category   item.Category `yaml:"category,omitempty"`   // weapon_category
}

// Validate checks that the trigger's parameters match its kind.
func (t Trigger) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("skill: unknown trigger kind %q", t.Kind)
	}
	switch t.Kind {
	case TriggerPercent:
		if t.Chance < 1 || t.Chance > 100 {
			return fmt.Errorf("skill: percent trigger chance must be in [1,100], got %d", t.Chance)
		}
	case TriggerStatScaled:
		if !t.Stat.Valid() {
			return fmt.Errorf("skill: stat_scaled trigger has unknown stat %q", t.Stat)
		}
		if t.Multiplier <= 0 {
			return fmt.Errorf("skill: stat_scaled trigger multiplier must be > 0, got %g", t.Multiplier)
		}
	case TriggerHPThreshold:
		switch t.Op {
		case OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		default:
			return fmt.Errorf("skill: hp_threshold trigger has unknown op %q", t.Op)
		}
		if t.Threshold < 0 || t.Threshold > 100 {
			return fmt.Errorf("skill: hp_threshold must be in [0,100], got %d", t.Threshold)
		}
	case TriggerWeaponCategory:
		if !t.Category.Valid() {
			return fmt.Errorf("skill: weapon_category trigger has unknown category %q", t.Category)
		}
	}
	return nil
}

// Unit is the view of a combatant the trigger evaluation needs.
// Using a local interface avoids a circular import with the combat package.
type Unit interface {
	// StatValue returns the effective value of the named stat, transient
	// modifiers included.
	StatValue(s StatName) int
	// HPPercent returns current hp as a percentage of max hp.
	HPPercent() float64
	// WeaponCategory returns the equipped weapon's category, or ok=false
	// when unarmed.
	WeaponCategory() (item.Category, bool)
}

// Event carries the facts of a raised combat phase event.
type Event struct {
	// Kind is the phase event being raised.
	Kind TriggerKind
	// IsAttacker is true when the evaluating side initiated the strike.
	IsAttacker bool
	// DamageDealt is the damage the evaluating side dealt (on-damage,
	// post-combat contexts).
	DamageDealt int
	// DamageReceived is the damage the evaluating side took.
	DamageReceived int
	// TargetKilled is true when the evaluating side's opponent died.
	TargetKilled bool
}

// Matches evaluates the trigger for u at the raised event, drawing from
// src for probabilistic kinds.
//
// Conditional kinds ignore the event entirely; phase kinds require
// ev.Kind to equal the trigger kind and the kind's own field check to hold.
//
// Precondition: u must be non-nil; src must be non-nil for probabilistic kinds.
func (t Trigger) Matches(u Unit, src dice.Source, ev Event) bool {
	switch t.Kind {
	case TriggerPercent:
		return dice.Check(src, t.Chance)
	case TriggerStatScaled:
		return float64(dice.Percentile(src)) <= float64(u.StatValue(t.Stat))*t.Multiplier
	case TriggerHPThreshold:
		return t.Op.Compare(u.HPPercent(), float64(t.Threshold))
	case TriggerWeaponCategory:
		cat, ok := u.WeaponCategory()
		return ok && cat == t.Category
	case TriggerAlways:
		return true
	case TriggerOnAttack:
		return ev.Kind == TriggerOnAttack && ev.IsAttacker
	case TriggerOnDefend:
		return ev.Kind == TriggerOnDefend && !ev.IsAttacker
	case TriggerOnKill:
		return ev.Kind == TriggerOnKill && ev.TargetKilled
	case TriggerOnDamageTaken:
		return ev.Kind == TriggerOnDamageTaken && ev.DamageReceived > 0
	case TriggerPreCombat:
		return ev.Kind == TriggerPreCombat
	case TriggerPostCombat:
		return ev.Kind == TriggerPostCombat
	case TriggerTurnStart:
		return ev.Kind == TriggerTurnStart
	case TriggerTurnEnd:
		return ev.Kind == TriggerTurnEnd
	default:
		return false
	}
}
