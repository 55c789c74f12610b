package combat

import (
	"fmt"

	"github.com/cory-johannsen/emblem/internal/game/item"
	"github.com/cory-johannsen/emblem/internal/game/relic"
	"github.com/cory-johannsen/emblem/internal/game/skill"
)

// Stats holds a combatant's base battle statistics before transient
// modifiers are applied.
type Stats struct {
	Power      int `yaml:"power"`
	Magic      int `yaml:"magic"`
	Skill      int `yaml:"skill"`
	Speed      int `yaml:"speed"`
	Luck       int `yaml:"luck"`
	Defense    int `yaml:"defense"`
	Resistance int `yaml:"resistance"`
}

// value returns the base stat by name, 0 for an unknown name.
func (s Stats) value(name skill.StatName) int {
	switch name {
	case skill.StatPower:
		return s.Power
	case skill.StatMagic:
		return s.Magic
	case skill.StatSkill:
		return s.Skill
	case skill.StatSpeed:
		return s.Speed
	case skill.StatLuck:
		return s.Luck
	case skill.StatDefense:
		return s.Defense
	case skill.StatResistance:
		return s.Resistance
	}
	return 0
}

// Combatant is one side of an exchange: identity, position, stats,
// equipment, and the permanent skill roster. Transient per-encounter
// state (activated skills, stat modifiers, relic-granted skills) lives
// behind ActiveSkills and is wiped by ResetTransient.
//
// Invariant: outside an encounter the transient state is empty.
type Combatant struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`

	MaxHP int `yaml:"max_hp"`
	HP    int `yaml:"hp"`

	Stats Stats `yaml:"stats"`

	X int `yaml:"x"`
	Y int `yaml:"y"`

	// Equipped is the wielded weapon; nil means unarmed. When a relic is
	// equipped it is the relic's weapon instance.
	Equipped *item.Weapon `yaml:"-"`
	// Relic is the equipped relic, nil when the weapon is mundane.
	Relic *relic.Relic `yaml:"-"`

	// Skills is the permanent roster loaded from content.
	Skills []*skill.Def `yaml:"-"`

	active  *skill.ActiveSet
	granted []*skill.Def
}

// Validate checks the combatant's invariants.
func (c *Combatant) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("combat: combatant has empty id")
	}
	if c.MaxHP <= 0 {
		return fmt.Errorf("combat: combatant %q has non-positive max hp %d", c.ID, c.MaxHP)
	}
	if c.HP < 0 || c.HP > c.MaxHP {
		return fmt.Errorf("combat: combatant %q hp %d outside [0,%d]", c.ID, c.HP, c.MaxHP)
	}
	return nil
}

// EquipWeapon wields a mundane weapon, clearing any equipped relic.
func (c *Combatant) EquipWeapon(w *item.Weapon) {
	c.Equipped = w
	c.Relic = nil
}

// EquipRelic wields r's weapon and attaches its passive effects.
//
// Precondition: r must not be nil.
func (c *Combatant) EquipRelic(r *relic.Relic) {
	c.Equipped = r.Weapon
	c.Relic = r
}

// Armed reports whether the combatant wields a usable weapon.
func (c *Combatant) Armed() bool {
	return c.Equipped != nil && !c.Equipped.Broken()
}

// ActiveSkills returns the transient per-encounter skill state, creating
// it on first use.
func (c *Combatant) ActiveSkills() *skill.ActiveSet {
	if c.active == nil {
		c.active = skill.NewActiveSet()
	}
	return c.active
}

// GrantSkill attaches a relic-granted skill for the current encounter only.
func (c *Combatant) GrantSkill(def *skill.Def) {
	c.granted = append(c.granted, def)
}

// EncounterSkills returns the roster plus any encounter-granted skills.
func (c *Combatant) EncounterSkills() []*skill.Def {
	if len(c.granted) == 0 {
		return c.Skills
	}
	out := make([]*skill.Def, 0, len(c.Skills)+len(c.granted))
	out = append(out, c.Skills...)
	out = append(out, c.granted...)
	return out
}

// ResetTransient wipes all per-encounter state: activated skills, stat
// modifiers, and granted skills. It is idempotent.
//
// Postcondition: ActiveSkills is empty and EncounterSkills equals Skills.
func (c *Combatant) ResetTransient() {
	if c.active != nil {
		c.active.Clear()
	}
	c.granted = nil
}

// StatValue returns the effective stat: base plus transient modifiers.
func (c *Combatant) StatValue(name skill.StatName) int {
	v := c.Stats.value(name)
	if c.active != nil {
		v += c.active.Mod(name)
	}
	return v
}

// HPPercent returns current hp as a percentage of max hp.
//
// Precondition: MaxHP must be positive.
func (c *Combatant) HPPercent() float64 {
	return float64(c.HP) / float64(c.MaxHP) * 100
}

// WeaponCategory returns the equipped weapon's category, ok=false when
// unarmed.
func (c *Combatant) WeaponCategory() (item.Category, bool) {
	if c.Equipped == nil {
		return "", false
	}
	return c.Equipped.Def.Category, true
}

// AttackPower is the base damage before the aggregator's adjustments:
// might plus the governing stat (magic for arcane weapons, power
// otherwise). An unarmed combatant has 0 attack power.
func (c *Combatant) AttackPower() int {
	if c.Equipped == nil {
		return 0
	}
	stat := c.StatValue(skill.StatPower)
	if c.Equipped.Def.Category.IsMagical() {
		stat = c.StatValue(skill.StatMagic)
	}
	return stat + c.Equipped.Def.Might
}

// HitRate is the base accuracy: weapon hit + 2×skill + luck/2, or 0 when
// unarmed.
func (c *Combatant) HitRate() int {
	if c.Equipped == nil {
		return 0
	}
	return c.Equipped.Def.Hit + 2*c.StatValue(skill.StatSkill) + c.StatValue(skill.StatLuck)/2
}

// Avoid is the base evasion: 2×speed + luck.
func (c *Combatant) Avoid() int {
	return 2*c.StatValue(skill.StatSpeed) + c.StatValue(skill.StatLuck)
}

// CritRate is the base critical chance: weapon crit + skill/2, or 0 when
// unarmed.
func (c *Combatant) CritRate() int {
	if c.Equipped == nil {
		return 0
	}
	return c.Equipped.Def.Crit + c.StatValue(skill.StatSkill)/2
}

// AttackSpeed is speed reduced by the weapon's weight burden: weight in
// excess of power/5 slows the wielder. Never negative.
func (c *Combatant) AttackSpeed() int {
	speed := c.StatValue(skill.StatSpeed)
	if c.Equipped == nil {
		return speed
	}
	burden := c.Equipped.Def.Weight - c.StatValue(skill.StatPower)/5
	if burden < 0 {
		burden = 0
	}
	speed -= burden
	if speed < 0 {
		speed = 0
	}
	return speed
}

// ApplyDamage reduces hp by n, flooring at 0, and returns the hp actually
// removed.
func (c *Combatant) ApplyDamage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > c.HP {
		n = c.HP
	}
	c.HP -= n
	return n
}

// Heal restores up to n hp, capped at max, and returns the hp actually
// restored.
func (c *Combatant) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	if c.HP+n > c.MaxHP {
		n = c.MaxHP - c.HP
	}
	c.HP += n
	return n
}

// IsDead reports whether the combatant has no hp remaining.
func (c *Combatant) IsDead() bool { return c.HP <= 0 }
