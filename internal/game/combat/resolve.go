package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/emblem/internal/game/dice"
	"github.com/cory-johannsen/emblem/internal/game/skill"
)

// encounter carries the mutable state of one exchange being resolved.
type encounter struct {
	e    *Engine
	bf   Battlefield
	prox ProximityProvider

	// attacker and defender are the original roles; first and second are
	// the strike order after the vantage check. Outcome buckets always
	// follow the original roles.
	attacker, defender *Combatant
	first, second      *Combatant

	out      *Outcome
	firedAtt map[string]bool
	firedDef map[string]bool
}

// Resolve runs a full exchange between attacker and defender: vantage
// check, initiate, counter, at most one follow-up, with a lethal strike
// ending the exchange immediately. A nil battlefield means flat terrain;
// a nil proximity provider means no ally bonuses.
//
// Precondition: both combatants must be alive, distinct, and valid.
// Postcondition: both combatants' transient state is cleared on every
// return path, error or not; the mutations that persist are hp, weapon
// durability, and support history owned by the caller.
func (e *Engine) Resolve(attacker, defender *Combatant, bf Battlefield, prox ProximityProvider) (*Outcome, error) {
	if err := validateParticipants(attacker, defender); err != nil {
		return nil, err
	}
	if bf == nil {
		bf = flatField{}
	}

	defer attacker.ResetTransient()
	defer defender.ResetTransient()

	enc := &encounter{
		e:        e,
		bf:       bf,
		prox:     prox,
		attacker: attacker,
		defender: defender,
		out:      &Outcome{},
		firedAtt: make(map[string]bool),
		firedDef: make(map[string]bool),
	}
	enc.run()

	e.logger.Info("exchange resolved",
		zap.String("attacker", attacker.ID),
		zap.String("defender", defender.ID),
		zap.Int("attacker_hp", attacker.HP),
		zap.Int("defender_hp", defender.HP),
		zap.Bool("initiative_swapped", enc.out.InitiativeSwapped),
	)
	return enc.out, nil
}

func (enc *encounter) run() {
	enc.applyRelicPassives(enc.attacker)
	enc.applyRelicPassives(enc.defender)

	enc.first, enc.second = enc.attacker, enc.defender
	if enc.e.hasVantage(enc.defender) && !enc.e.hasVantage(enc.attacker) {
		enc.first, enc.second = enc.defender, enc.attacker
		enc.out.InitiativeSwapped = true
	}

	enc.activate(enc.first, skill.Event{Kind: skill.TriggerPreCombat, IsAttacker: true})
	enc.activate(enc.second, skill.Event{Kind: skill.TriggerPreCombat})

	if enc.strike(enc.first, enc.second) {
		enc.finish()
		return
	}

	counterEligible := enc.e.canCounter(enc.second, enc.first)
	if counterEligible {
		if enc.strike(enc.second, enc.first) {
			enc.finish()
			return
		}
	}

	// At most one follow-up; the first striker has priority.
	if enc.e.canFollowUp(enc.first, enc.second) {
		enc.strike(enc.first, enc.second)
	} else if counterEligible && enc.e.canFollowUp(enc.second, enc.first) {
		enc.strike(enc.second, enc.first)
	}
	enc.finish()
}

// finish raises post-combat events for both sides with their aggregate
// damage totals. It runs on every terminal branch of the exchange.
func (enc *encounter) finish() {
	attDealt, defDealt := enc.out.damageBySide()
	enc.activate(enc.attacker, skill.Event{
		Kind:           skill.TriggerPostCombat,
		IsAttacker:     enc.attacker == enc.first,
		DamageDealt:    attDealt,
		DamageReceived: defDealt,
	})
	enc.activate(enc.defender, skill.Event{
		Kind:           skill.TriggerPostCombat,
		IsAttacker:     enc.defender == enc.first,
		DamageDealt:    defDealt,
		DamageReceived: attDealt,
	})
}

// strike resolves one strike from striker against target and reports
// whether it was lethal.
func (enc *encounter) strike(striker, target *Combatant) bool {
	enc.activate(striker, skill.Event{Kind: skill.TriggerOnAttack, IsAttacker: true})
	enc.activate(target, skill.Event{Kind: skill.TriggerOnDefend})

	res := StrikeResult{
		HitChance:  HitChance(striker, target, enc.bf, enc.prox),
		CritChance: CritChance(striker, target),
	}
	dmg := Damage(striker, target, enc.bf, enc.prox)

	res.Hit = dice.Check(enc.e.src, res.HitChance)
	if res.Hit {
		res.Critical = dice.Check(enc.e.src, res.CritChance)

		hits, scale := multiHit(striker)
		total := 0
		for i := 0; i < hits; i++ {
			perHit := dmg
			if hits > 1 {
				perHit = int(float64(dmg) * scale)
			}
			// Only the opening hit of a flurry is amplified by a critical.
			if res.Critical && i == 0 {
				perHit *= enc.e.tun.CritMultiplier
			}
			total += target.ApplyDamage(perHit)
			res.Hits++
			if target.IsDead() {
				break
			}
		}
		res.Damage = total
		res.Lethal = target.IsDead()

		if total > 0 {
			for _, ef := range effects(striker, skill.EffectHeal) {
				if ef.DamageRatio > 0 {
					striker.Heal(int(float64(total) * ef.DamageRatio))
				}
			}
		}
		if striker.Equipped != nil {
			striker.Equipped.Spend()
		}
	}

	enc.record(striker, res)

	if res.Damage > 0 {
		enc.activate(target, skill.Event{
			Kind:           skill.TriggerOnDamageTaken,
			DamageReceived: res.Damage,
		})
	}
	if res.Lethal {
		enc.activate(striker, skill.Event{
			Kind:         skill.TriggerOnKill,
			IsAttacker:   true,
			DamageDealt:  res.Damage,
			TargetKilled: true,
		})
	}

	spendDurations(striker)
	spendDurations(target)

	enc.e.logger.Debug("strike resolved",
		zap.String("striker", striker.ID),
		zap.String("target", target.ID),
		zap.Int("hit_chance", res.HitChance),
		zap.Bool("hit", res.Hit),
		zap.Bool("critical", res.Critical),
		zap.Int("damage", res.Damage),
		zap.Bool("lethal", res.Lethal),
	)
	return res.Lethal
}

// activate evaluates c's eligible skills against the raised event and
// applies the effects of those that fire. Re-activation of an already
// active skill is a no-op; a skill whose effect payload fails validation
// is skipped with a diagnostic.
func (enc *encounter) activate(c *Combatant, ev skill.Event) {
	for _, def := range c.EncounterSkills() {
		if !eligibleAt(def.Trigger.Kind, ev.Kind) {
			continue
		}
		if c.ActiveSkills().Has(def.ID) {
			continue
		}
		if !def.Trigger.Matches(c, enc.e.src, ev) {
			continue
		}
		if err := def.Effect.Validate(); err != nil {
			enc.e.logger.Warn("skipping skill with malformed effect",
				zap.String("combatant", c.ID),
				zap.String("skill", def.ID),
				zap.Error(err),
			)
			continue
		}
		if !c.ActiveSkills().Activate(def) {
			continue
		}
		enc.applyEffect(c, def.Effect)
		enc.recordFired(c, def.Name)
		enc.e.logger.Debug("skill fired",
			zap.String("combatant", c.ID),
			zap.String("skill", def.ID),
			zap.String("at", string(ev.Kind)),
		)
	}
}

// applyEffect performs the immediate part of a freshly activated effect.
// Most kinds are passive while active and are read by the aggregator and
// sequencer scans instead.
func (enc *encounter) applyEffect(c *Combatant, ef skill.Effect) {
	switch ef.Kind {
	case skill.EffectStatBoost:
		c.ActiveSkills().AddMod(ef.Stat, ef.Amount)
	case skill.EffectHeal:
		switch {
		case ef.Amount > 0:
			c.Heal(ef.Amount)
		case ef.Ratio > 0:
			c.Heal(int(float64(c.MaxHP) * ef.Ratio))
		}
		// Damage-ratio heals apply after each landed strike instead.
	}
}

// applyRelicPassives folds c's relic into the encounter: stat boosts
// enter the transient modifier map, flat and max-hp heals mend the wielder
// as the exchange opens, and granted skills join the roster for the
// encounter's duration. ResetTransient reverts the boosts and grants.
func (enc *encounter) applyRelicPassives(c *Combatant) {
	if c.Relic == nil {
		return
	}
	for _, ef := range c.Relic.Def.Effects {
		switch ef.Kind {
		case skill.EffectStatBoost:
			c.ActiveSkills().AddMod(ef.Stat, ef.Amount)
		case skill.EffectHeal:
			// Damage-ratio lifesteal is read at strike time instead.
			switch {
			case ef.Amount > 0:
				c.Heal(ef.Amount)
			case ef.Ratio > 0:
				c.Heal(int(float64(c.MaxHP) * ef.Ratio))
			}
		}
	}
	for _, def := range c.Relic.Def.GrantedSkills {
		c.GrantSkill(def)
	}
}

func (enc *encounter) record(striker *Combatant, res StrikeResult) {
	if striker == enc.attacker {
		enc.out.AttackerStrikes = append(enc.out.AttackerStrikes, res)
	} else {
		enc.out.DefenderStrikes = append(enc.out.DefenderStrikes, res)
	}
}

func (enc *encounter) recordFired(c *Combatant, name string) {
	seen, names := enc.firedAtt, &enc.out.AttackerSkills
	if c != enc.attacker {
		seen, names = enc.firedDef, &enc.out.DefenderSkills
	}
	if seen[name] {
		return
	}
	seen[name] = true
	*names = append(*names, name)
}
