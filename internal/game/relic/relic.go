// Package relic provides special weapons that carry item effects and
// granted skills on top of ordinary weapon stats, plus the rarity-weighted
// generator used for post-victory drops.
package relic

import (
	"fmt"

	"github.com/cory-johannsen/emblem/internal/game/item"
	"github.com/cory-johannsen/emblem/internal/game/skill"
)

// Rarity grades a relic; higher tiers roll stronger effects.
type Rarity string

const (
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Valid reports whether r is a known rarity.
func (r Rarity) Valid() bool {
	switch r {
	case RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Def is the static definition of a relic: an ordinary weapon definition
// plus the effect list and granted skills the combat engine folds into an
// encounter while the relic is equipped.
type Def struct {
	Weapon        item.WeaponDef `yaml:"weapon"`
	Rarity        Rarity         `yaml:"rarity"`
	Effects       []skill.Effect `yaml:"effects,omitempty"`
	GrantedSkills []*skill.Def   `yaml:"granted_skills,omitempty"`
	RequiredLevel int            `yaml:"required_level,omitempty"`
	UniqueOwner   string         `yaml:"unique_owner,omitempty"`
	Lore          string         `yaml:"lore,omitempty"`
}

// Validate checks the relic definition, its weapon stats, and every effect
// and granted-skill payload.
func (d *Def) Validate() error {
	if err := d.Weapon.Validate(); err != nil {
		return fmt.Errorf("relic: %w", err)
	}
	if !d.Rarity.Valid() {
		return fmt.Errorf("relic %q: unknown rarity %q", d.Weapon.ID, d.Rarity)
	}
	for i, e := range d.Effects {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("relic %q effect %d: %w", d.Weapon.ID, i, err)
		}
	}
	for _, s := range d.GrantedSkills {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("relic %q granted skill: %w", d.Weapon.ID, err)
		}
	}
	if d.RequiredLevel < 0 {
		return fmt.Errorf("relic %q: required_level must be >= 0", d.Weapon.ID)
	}
	return nil
}

// CanEquip reports whether a combatant with the given level and name may
// wield this relic.
func (d *Def) CanEquip(level int, name string) bool {
	if d.UniqueOwner != "" && d.UniqueOwner != name {
		return false
	}
	return level >= d.RequiredLevel
}

// EffectsOfKind returns the relic's effects with the given kind.
func (d *Def) EffectsOfKind(kind skill.EffectKind) []skill.Effect {
	var out []skill.Effect
	for _, e := range d.Effects {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Relic is a mutable relic instance: the shared definition plus a weapon
// instance tracking durability.
type Relic struct {
	Def    *Def
	Weapon *item.Weapon
}

// New creates a fresh instance of def with full weapon uses.
//
// Precondition: def must not be nil.
func New(def *Def) *Relic {
	return &Relic{Def: def, Weapon: item.NewWeapon(&def.Weapon)}
}
