// Package item provides weapon categories, the category matchup triangle,
// and weapon definitions and instances used by the combat engine.
package item

import (
	"fmt"
)

// Category classifies a weapon for matchup and damage-stat selection.
type Category string

const (
	// CategoryBlade covers swords and daggers.
	CategoryBlade Category = "blade"
	// CategoryPolearm covers lances and spears.
	CategoryPolearm Category = "polearm"
	// CategoryAxe covers axes and hammers.
	CategoryAxe Category = "axe"
	// CategoryBow covers ranged physical weapons.
	CategoryBow Category = "bow"
	// CategoryArcane covers tomes and staves; damage scales off magic and
	// is resisted by resistance instead of defense.
	CategoryArcane Category = "arcane"
)

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBlade, CategoryPolearm, CategoryAxe, CategoryBow, CategoryArcane:
		return true
	}
	return false
}

// IsMagical reports whether damage with this category is computed from the
// wielder's magic stat and resisted by resistance.
func (c Category) IsMagical() bool { return c == CategoryArcane }

// WeaponDef defines the static properties of a weapon loaded from YAML.
type WeaponDef struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Category Category `yaml:"category"`
	Might    int      `yaml:"might"`
	Hit      int      `yaml:"hit"`
	Crit     int      `yaml:"crit"`
	Weight   int      `yaml:"weight"`
	RangeMin int      `yaml:"range_min"`
	RangeMax int      `yaml:"range_max"`
	MaxUses  int      `yaml:"max_uses"`
}

// Validate checks the definition's invariants.
func (w *WeaponDef) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("item: weapon def has empty id")
	}
	if !w.Category.Valid() {
		return fmt.Errorf("weapon %q: unknown category %q", w.ID, w.Category)
	}
	if w.Might < 0 || w.Hit < 0 || w.Crit < 0 || w.Weight < 0 {
		return fmt.Errorf("weapon %q: might/hit/crit/weight must be >= 0", w.ID)
	}
	if w.RangeMin < 1 || w.RangeMax < w.RangeMin {
		return fmt.Errorf("weapon %q: range must satisfy 1 <= min <= max, got [%d,%d]", w.ID, w.RangeMin, w.RangeMax)
	}
	if w.MaxUses < 1 {
		return fmt.Errorf("weapon %q: max_uses must be >= 1, got %d", w.ID, w.MaxUses)
	}
	return nil
}

// InRange reports whether a target at Manhattan distance d can be struck.
func (w *WeaponDef) InRange(d int) bool {
	return d >= w.RangeMin && d <= w.RangeMax
}

// Weapon is a mutable weapon instance: a definition plus remaining uses.
// Only the combat engine decrements Uses, once per landed strike.
//
// Invariant: Uses >= 0.
type Weapon struct {
	Def  *WeaponDef
	Uses int
}

// NewWeapon creates a fresh instance of def with full uses.
//
// Precondition: def must not be nil.
func NewWeapon(def *WeaponDef) *Weapon {
	return &Weapon{Def: def, Uses: def.MaxUses}
}

// Spend decrements the remaining uses by one, flooring at zero.
//
// Postcondition: Uses >= 0.
func (w *Weapon) Spend() {
	if w.Uses > 0 {
		w.Uses--
	}
}

// Broken reports whether the weapon has no uses left.
func (w *Weapon) Broken() bool { return w.Uses <= 0 }
