package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/emblem/internal/game/item"
	"github.com/cory-johannsen/emblem/internal/game/relic"
	"github.com/cory-johannsen/emblem/internal/game/skill"
)

// fixedSrc returns val for every Intn call; val 0 makes every accuracy
// roll succeed and every 0%-chance roll fail.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

// seqSrc plays back scripted rolls, then zeroes.
type seqSrc struct {
	rolls []int
	i     int
}

func (s *seqSrc) Intn(n int) int {
	v := 0
	if s.i < len(s.rolls) {
		v = s.rolls[s.i]
		s.i++
	}
	if v >= n {
		v = n - 1
	}
	return v
}

func testEngine(src interface{ Intn(int) int }) *Engine {
	return NewEngine(src, zap.NewNop(), DefaultTunables())
}

func TestResolveInitiateAndCounter(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 1 // adjacent, inside both blades' range

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	require.Len(t, out.AttackerStrikes, 1)
	require.Len(t, out.DefenderStrikes, 1)
	assert.Equal(t, 12, out.AttackerStrikes[0].Damage)
	assert.Equal(t, 12, out.DefenderStrikes[0].Damage)
	assert.Equal(t, 28, a.HP)
	assert.Equal(t, 28, b.HP)
	assert.False(t, out.InitiativeSwapped)
}

func TestLethalInitiateEndsExchange(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 1
	b.HP = 10

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	require.Len(t, out.AttackerStrikes, 1)
	assert.True(t, out.AttackerStrikes[0].Lethal)
	assert.Equal(t, 10, out.AttackerStrikes[0].Damage, "overkill capped at remaining hp")
	assert.Empty(t, out.DefenderStrikes, "the fallen never counter")
	assert.True(t, b.IsDead())
	assert.Equal(t, 40, a.HP)
}

func TestLethalCounterSkipsFollowUp(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.Stats.Speed = 14 // would follow up
	a.HP = 12
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	require.Len(t, out.AttackerStrikes, 1)
	require.Len(t, out.DefenderStrikes, 1)
	assert.True(t, out.DefenderStrikes[0].Lethal)
	assert.True(t, a.IsDead())
}

func TestUnarmedDefenderNeverCounters(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 1
	b.Equipped = nil
	// Even a guaranteed-counter effect cannot arm empty hands.
	b.Skills = []*skill.Def{{
		ID: "retribution", Name: "Retribution",
		Trigger: skill.Trigger{Kind: skill.TriggerAlways},
		Effect:  skill.Effect{Kind: skill.EffectGuaranteedCounter},
	}}

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out.DefenderStrikes)
}

func TestCounterRequiresRange(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 2 // both wield 1-range blades

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	require.Len(t, out.AttackerStrikes, 1)
	assert.Empty(t, out.DefenderStrikes, "blade cannot answer at range 2")
}

func TestGuaranteedCounterWaivesRange(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 2
	b.Skills = []*skill.Def{{
		ID: "quick_draw", Name: "Quick Draw",
		Trigger: skill.Trigger{Kind: skill.TriggerAlways},
		Effect:  skill.Effect{Kind: skill.EffectGuaranteedCounter},
	}}

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	require.Len(t, out.DefenderStrikes, 1)
}

func TestFollowUpFirstStrikerPriority(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.Stats.Speed = 14 // margin 4 over the defender
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	assert.Len(t, out.AttackerStrikes, 2, "initiate plus follow-up")
	assert.Len(t, out.DefenderStrikes, 1)
	assert.Equal(t, 40-24, b.HP)
}

func TestFollowUpSecondStriker(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.Stats.Speed = 14
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	assert.Len(t, out.AttackerStrikes, 1)
	assert.Len(t, out.DefenderStrikes, 2, "counter plus follow-up")
}

func TestNoFollowUpInsideMargin(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.Stats.Speed = 13 // 3 over: inside the margin
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	assert.Len(t, out.AttackerStrikes, 1)
	assert.Len(t, out.DefenderStrikes, 1)
}

func TestGuaranteedFollowUp(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.Skills = []*skill.Def{{
		ID: "relentless", Name: "Relentless",
		Trigger: skill.Trigger{Kind: skill.TriggerAlways},
		Effect:  skill.Effect{Kind: skill.EffectGuaranteedFollowUp},
	}}
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	assert.Len(t, out.AttackerStrikes, 2, "effect waives the speed margin")
}

func TestMutualFollowUpEligibilityYieldsOneExtraStrike(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	relentless := func(id string) []*skill.Def {
		return []*skill.Def{{
			ID: id, Name: "Relentless",
			Trigger: skill.Trigger{Kind: skill.TriggerAlways},
			Effect:  skill.Effect{Kind: skill.EffectGuaranteedFollowUp},
		}}
	}
	a := testFighter(t, "edric")
	a.Skills = relentless("relentless_a")
	b := testFighter(t, "bram")
	b.Skills = relentless("relentless_b")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	assert.Len(t, out.AttackerStrikes, 2, "first striker claims the only follow-up")
	assert.Len(t, out.DefenderStrikes, 1)
}

func TestVantageSwapsInitiative(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 1
	b.HP = 15 // 37.5%, under the threshold
	b.Skills = []*skill.Def{{
		ID: "vantage", Name: "Vantage",
		Trigger: skill.Trigger{
			Kind:      skill.TriggerHPThreshold,
			Op:        skill.OpLess,
			Threshold: 50,
		},
		Effect: skill.Effect{Kind: skill.EffectSpecial, Vantage: true},
	}}

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	assert.True(t, out.InitiativeSwapped)
	// Buckets stay with the original roles: the defender's strike is the
	// opening one.
	require.Len(t, out.DefenderStrikes, 1)
	require.Len(t, out.AttackerStrikes, 1)
	assert.Equal(t, 28, a.HP)
	assert.Equal(t, 3, b.HP)
}

func TestVantageAboveThresholdDoesNotSwap(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 1
	b.Skills = []*skill.Def{{
		ID: "vantage", Name: "Vantage",
		Trigger: skill.Trigger{
			Kind:      skill.TriggerHPThreshold,
			Op:        skill.OpLess,
			Threshold: 50,
		},
		Effect: skill.Effect{Kind: skill.EffectSpecial, Vantage: true},
	}}

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	assert.False(t, out.InitiativeSwapped)
}

func TestVantageLethalOpeningStopsAttacker(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.HP = 12
	b := testFighter(t, "bram")
	b.X = 1
	b.HP = 15
	b.Skills = []*skill.Def{{
		ID: "vantage", Name: "Vantage",
		Trigger: skill.Trigger{
			Kind:      skill.TriggerHPThreshold,
			Op:        skill.OpLess,
			Threshold: 50,
		},
		Effect: skill.Effect{Kind: skill.EffectSpecial, Vantage: true},
	}}

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	require.Len(t, out.DefenderStrikes, 1)
	assert.True(t, out.DefenderStrikes[0].Lethal)
	assert.Empty(t, out.AttackerStrikes)
	assert.True(t, a.IsDead())
}

func TestCriticalTriplesDamage(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.EquipWeapon(testWeapon("kris", item.CategoryBlade, 4, 80, 10, 0))
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	// crit chance 10 + 4 − 4 = 10, and the fixed roll always passes
	require.Len(t, out.AttackerStrikes, 1)
	assert.True(t, out.AttackerStrikes[0].Critical)
	assert.Equal(t, 33, out.AttackerStrikes[0].Damage, "11 base damage tripled")
	assert.Equal(t, 7, b.HP)
}

func TestMissDealsNothingAndSpendsNothing(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 1
	b.Stats.Speed = 60 // avoid clamps the hit chance to 0

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	require.Len(t, out.AttackerStrikes, 1)
	assert.False(t, out.AttackerStrikes[0].Hit)
	assert.Equal(t, 0, out.AttackerStrikes[0].Damage)
	assert.Equal(t, 0, out.AttackerStrikes[0].Hits)
	assert.Equal(t, 30, a.Equipped.Uses, "a miss costs no durability")
	assert.Equal(t, 40, b.HP)
}

func TestDurabilityPerLandedStrike(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.Stats.Speed = 14
	b := testFighter(t, "bram")
	b.X = 1

	_, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 28, a.Equipped.Uses, "initiate and follow-up each cost one use")
	assert.Equal(t, 29, b.Equipped.Uses)
}

func TestMultiHitSpecial(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.Skills = []*skill.Def{{
		ID: "astra", Name: "Astra",
		Trigger: skill.Trigger{Kind: skill.TriggerAlways},
		Effect:  skill.Effect{Kind: skill.EffectSpecial, Strikes: 2, StrikeScale: 0.5},
	}}
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	require.Len(t, out.AttackerStrikes, 1)
	assert.Equal(t, 2, out.AttackerStrikes[0].Hits)
	assert.Equal(t, 12, out.AttackerStrikes[0].Damage, "two hits of int(12×0.5)=6 each")
	assert.Equal(t, 29, a.Equipped.Uses, "one use per strike, not per hit")
	assert.Contains(t, out.AttackerSkills, "Astra")
}

func TestPreCombatStatBoost(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.Skills = []*skill.Def{{
		ID: "war_cry", Name: "War Cry",
		Trigger: skill.Trigger{Kind: skill.TriggerPreCombat},
		Effect:  skill.Effect{Kind: skill.EffectStatBoost, Stat: skill.StatPower, Amount: 5},
	}}
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 17, out.AttackerStrikes[0].Damage, "boosted power feeds the aggregator")
	assert.Contains(t, out.AttackerSkills, "War Cry")
	assert.Equal(t, 0, a.ActiveSkills().ModCount(), "modifiers do not outlive the exchange")
}

func TestFiniteDurationExpires(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.Stats.Speed = 14
	a.Skills = []*skill.Def{{
		ID: "opening_surge", Name: "Opening Surge",
		Trigger:  skill.Trigger{Kind: skill.TriggerPreCombat},
		Effect:   skill.Effect{Kind: skill.EffectDamageBoost, Amount: 5},
		Duration: 1,
	}}
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	require.Len(t, out.AttackerStrikes, 2)
	assert.Equal(t, 17, out.AttackerStrikes[0].Damage, "boost applies to the opening strike")
	assert.Equal(t, 12, out.AttackerStrikes[1].Damage, "boost expired before the follow-up")
}

func TestLifestealHealsAfterLandedStrike(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.HP = 20
	a.Skills = []*skill.Def{{
		ID: "sol", Name: "Sol",
		Trigger: skill.Trigger{Kind: skill.TriggerAlways},
		Effect:  skill.Effect{Kind: skill.EffectHeal, DamageRatio: 0.5},
	}}
	b := testFighter(t, "bram")
	b.X = 1

	_, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	// initiate heals int(12×0.5)=6, then the counter removes 12
	assert.Equal(t, 14, a.HP)
}

func TestOnKillTriggerFires(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	a.HP = 25
	a.Skills = []*skill.Def{{
		ID: "second_wind", Name: "Second Wind",
		Trigger: skill.Trigger{Kind: skill.TriggerOnKill},
		Effect:  skill.Effect{Kind: skill.EffectHeal, Amount: 10},
	}}
	b := testFighter(t, "bram")
	b.X = 1
	b.HP = 10

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 35, a.HP, "the kill restores hp")
	assert.Contains(t, out.AttackerSkills, "Second Wind")
}

func TestOnDamageTakenTriggerFires(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")
	b.X = 1
	b.Skills = []*skill.Def{{
		ID: "adrenaline", Name: "Adrenaline",
		Trigger: skill.Trigger{Kind: skill.TriggerOnDamageTaken},
		Effect:  skill.Effect{Kind: skill.EffectHeal, Amount: 5},
	}}

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	// 40 − 12 damage + 5 heal
	assert.Equal(t, 33, b.HP)
	assert.Contains(t, out.DefenderSkills, "Adrenaline")
}

func TestRelicPassivesAppliedAndReverted(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	r := relic.New(&relic.Def{
		Weapon: item.WeaponDef{
			ID: "dawnfang", Name: "Dawnfang", Category: item.CategoryBlade,
			Might: 5, Hit: 75, RangeMin: 1, RangeMax: 1, MaxUses: 30,
		},
		Rarity: relic.RarityEpic,
		Effects: []skill.Effect{
			{Kind: skill.EffectStatBoost, Stat: skill.StatPower, Amount: 3},
		},
		GrantedSkills: []*skill.Def{{
			ID: "dawnfang_fury", Name: "Fury",
			Trigger: skill.Trigger{Kind: skill.TriggerAlways},
			Effect:  skill.Effect{Kind: skill.EffectDamageBoost, Amount: 2},
		}},
	})
	a.EquipRelic(r)
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)

	// 10 power + 3 relic boost + 5 might + 2 granted fury − 3 defense
	assert.Equal(t, 17, out.AttackerStrikes[0].Damage)
	assert.Contains(t, out.AttackerSkills, "Fury")

	assert.Empty(t, a.EncounterSkills(), "granted skills do not persist")
	assert.Equal(t, 0, a.ActiveSkills().ModCount())
	assert.Equal(t, 0, a.ActiveSkills().Len())
}

func TestRelicHealMendsWielderAtOpening(t *testing.T) {
	healingRelic := func(ef skill.Effect) *relic.Relic {
		return relic.New(&relic.Def{
			Weapon: item.WeaponDef{
				ID: "lifeward", Name: "Lifeward", Category: item.CategoryBlade,
				Might: 5, Hit: 75, RangeMin: 1, RangeMax: 1, MaxUses: 30,
			},
			Rarity:  relic.RarityRare,
			Effects: []skill.Effect{ef},
		})
	}

	t.Run("flat amount", func(t *testing.T) {
		eng := testEngine(fixedSrc{0})
		a := testFighter(t, "edric")
		a.HP = 20
		a.EquipRelic(healingRelic(skill.Effect{Kind: skill.EffectHeal, Amount: 8}))
		b := testFighter(t, "bram")
		b.X = 1

		_, err := eng.Resolve(a, b, nil, nil)
		require.NoError(t, err)
		// Healed to 28 before the first strike, then the counter lands 12.
		assert.Equal(t, 16, a.HP)
	})

	t.Run("max hp ratio", func(t *testing.T) {
		eng := testEngine(fixedSrc{0})
		a := testFighter(t, "edric")
		a.HP = 20
		a.EquipRelic(healingRelic(skill.Effect{Kind: skill.EffectHeal, Ratio: 0.25}))
		b := testFighter(t, "bram")
		b.X = 1

		_, err := eng.Resolve(a, b, nil, nil)
		require.NoError(t, err)
		// int(40 * 0.25) = 10 restored, then 12 taken on the counter.
		assert.Equal(t, 18, a.HP)
	})
}

func TestTransientClearedOnEveryPath(t *testing.T) {
	boost := &skill.Def{
		ID: "war_cry", Name: "War Cry",
		Trigger: skill.Trigger{Kind: skill.TriggerPreCombat},
		Effect:  skill.Effect{Kind: skill.EffectStatBoost, Stat: skill.StatPower, Amount: 5},
	}

	cases := map[string]func(a, b *Combatant){
		"full exchange": func(a, b *Combatant) {},
		"lethal initiate": func(a, b *Combatant) {
			b.HP = 5
		},
		"lethal counter": func(a, b *Combatant) {
			a.HP = 12
		},
		"vantage swap": func(a, b *Combatant) {
			b.HP = 15
			b.Skills = append(b.Skills, &skill.Def{
				ID: "vantage", Name: "Vantage",
				Trigger: skill.Trigger{Kind: skill.TriggerHPThreshold, Op: skill.OpLess, Threshold: 50},
				Effect:  skill.Effect{Kind: skill.EffectSpecial, Vantage: true},
			})
		},
	}

	for name, arrange := range cases {
		t.Run(name, func(t *testing.T) {
			eng := testEngine(fixedSrc{0})
			a := testFighter(t, "edric")
			a.Skills = []*skill.Def{boost}
			b := testFighter(t, "bram")
			b.Skills = []*skill.Def{boost}
			b.X = 1
			arrange(a, b)

			_, err := eng.Resolve(a, b, nil, nil)
			require.NoError(t, err)

			for _, c := range []*Combatant{a, b} {
				assert.Equal(t, 0, c.ActiveSkills().Len(), "%s: %s active set not cleared", name, c.ID)
				assert.Equal(t, 0, c.ActiveSkills().ModCount(), "%s: %s modifiers not cleared", name, c.ID)
			}
		})
	}
}

func TestResolveRejectsInvalidParticipants(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	b := testFighter(t, "bram")

	_, err := eng.Resolve(nil, b, nil, nil)
	assert.Error(t, err)

	_, err = eng.Resolve(a, a, nil, nil)
	assert.Error(t, err)

	b.HP = 0
	_, err = eng.Resolve(a, b, nil, nil)
	assert.Error(t, err)
}

func TestMalformedEffectSkipped(t *testing.T) {
	eng := testEngine(fixedSrc{0})
	a := testFighter(t, "edric")
	// heal with no mode set fails payload validation at activation time
	a.Skills = []*skill.Def{{
		ID: "broken", Name: "Broken",
		Trigger: skill.Trigger{Kind: skill.TriggerAlways},
		Effect:  skill.Effect{Kind: skill.EffectHeal},
	}}
	b := testFighter(t, "bram")
	b.X = 1

	out, err := eng.Resolve(a, b, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, out.AttackerSkills, "Broken")
	assert.Equal(t, 28, a.HP, "the exchange proceeds normally")
}
