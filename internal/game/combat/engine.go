package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/emblem/internal/game/dice"
	"github.com/cory-johannsen/emblem/internal/game/skill"
)

// Tunables are the engine's balance knobs.
type Tunables struct {
	// FollowUpMargin is the attack-speed edge required for a natural
	// follow-up strike.
	FollowUpMargin int
	// CritMultiplier scales a critical hit's damage.
	CritMultiplier int
}

// DefaultTunables returns the standard balance values.
func DefaultTunables() Tunables {
	return Tunables{FollowUpMargin: 4, CritMultiplier: 3}
}

// Engine resolves full exchanges between two combatants. It holds no
// per-encounter state and may be reused across exchanges; it is not safe
// for concurrent use of the same combatants.
type Engine struct {
	src    dice.Source
	logger *zap.Logger
	tun    Tunables
}

// NewEngine creates an engine drawing rolls from src. A nil logger
// disables logging.
//
// Precondition: src must not be nil.
func NewEngine(src dice.Source, logger *zap.Logger, tun Tunables) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tun.CritMultiplier <= 0 {
		tun.CritMultiplier = DefaultTunables().CritMultiplier
	}
	return &Engine{src: src, logger: logger, tun: tun}
}

// hasEffect reports whether c currently benefits from an effect of the
// given kind, via an activated skill or a relic passive.
func hasEffect(c *Combatant, kind skill.EffectKind) bool {
	if c.ActiveSkills().AnyEffect(kind) {
		return true
	}
	return c.Relic != nil && len(c.Relic.Def.EffectsOfKind(kind)) > 0
}

// hasVantage reports whether c holds an initiative swap at the start of
// an exchange: a skill whose vantage special is gated by a passing
// hp-threshold trigger, or a relic vantage passive.
func (e *Engine) hasVantage(c *Combatant) bool {
	for _, def := range c.EncounterSkills() {
		if def.Effect.Kind != skill.EffectSpecial || !def.Effect.Vantage {
			continue
		}
		if def.Trigger.Kind != skill.TriggerHPThreshold {
			continue
		}
		if def.Trigger.Matches(c, e.src, skill.Event{Kind: skill.TriggerPreCombat}) {
			return true
		}
	}
	if c.Relic != nil {
		for _, ef := range c.Relic.Def.EffectsOfKind(skill.EffectSpecial) {
			if ef.Vantage {
				return true
			}
		}
	}
	return false
}

// canCounter reports whether defender may retaliate against attacker: it
// must be armed, and either its weapon reaches the attacker's position or
// a guaranteed-counter effect waives the range check. An unarmed
// combatant never counters.
func (e *Engine) canCounter(defender, attacker *Combatant) bool {
	if !defender.Armed() {
		return false
	}
	if hasEffect(defender, skill.EffectGuaranteedCounter) {
		return true
	}
	return defender.Equipped.Def.InRange(Distance(defender, attacker))
}

// canFollowUp reports whether a is fast enough to strike b twice: its
// attack speed must exceed b's by the follow-up margin, or a
// guaranteed-follow-up effect must be in force.
func (e *Engine) canFollowUp(a, b *Combatant) bool {
	if hasEffect(a, skill.EffectGuaranteedFollowUp) {
		return true
	}
	return a.AttackSpeed() >= b.AttackSpeed()+e.tun.FollowUpMargin
}

// multiHit returns the hit count and per-hit damage scale of c's
// strongest multi-hit special, or (1, 1.0) without one.
func multiHit(c *Combatant) (hits int, scale float64) {
	hits, scale = 1, 1.0
	for _, e := range effects(c, skill.EffectSpecial) {
		if e.Strikes > hits && e.StrikeScale > 0 {
			hits, scale = e.Strikes, e.StrikeScale
		}
	}
	return hits, scale
}

// spendDurations counts one application against every active
// finite-duration skill of c, deactivating those that reach zero.
func spendDurations(c *Combatant) {
	for _, a := range c.ActiveSkills().All() {
		if a.Remaining > 0 {
			c.ActiveSkills().Spend(a.Def.ID)
		}
	}
}

// eligibleAt reports whether a trigger of the given kind is evaluated at
// the raised event kind. Conditional kinds are re-evaluated at every
// strike event for the acting side; phase kinds fire only at their own
// event.
func eligibleAt(kind, at skill.TriggerKind) bool {
	if kind == at {
		return true
	}
	return kind.Conditional() && (at == skill.TriggerOnAttack || at == skill.TriggerOnDefend)
}

func validateParticipants(attacker, defender *Combatant) error {
	if attacker == nil || defender == nil {
		return fmt.Errorf("combat: both participants are required")
	}
	if attacker == defender {
		return fmt.Errorf("combat: combatant %q cannot fight itself", attacker.ID)
	}
	if err := attacker.Validate(); err != nil {
		return err
	}
	if err := defender.Validate(); err != nil {
		return err
	}
	if attacker.IsDead() {
		return fmt.Errorf("combat: attacker %q is already defeated", attacker.ID)
	}
	if defender.IsDead() {
		return fmt.Errorf("combat: defender %q is already defeated", defender.ID)
	}
	return nil
}
