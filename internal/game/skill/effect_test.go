package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/emblem/internal/game/item"
)

func TestEffectValidate(t *testing.T) {
	cases := []struct {
		name string
		e    Effect
		ok   bool
	}{
		{"stat boost ok", Effect{Kind: EffectStatBoost, Stat: StatSpeed, Amount: 3}, true},
		{"stat boost no stat", Effect{Kind: EffectStatBoost, Amount: 3}, false},
		{"stat boost zero amount", Effect{Kind: EffectStatBoost, Stat: StatSpeed}, false},
		{"damage boost ok", Effect{Kind: EffectDamageBoost, Amount: 5}, true},
		{"hit boost zero", Effect{Kind: EffectHitBoost}, false},
		{"reduce flat ok", Effect{Kind: EffectDamageReduce, Amount: 4}, true},
		{"reduce ratio ok", Effect{Kind: EffectDamageReduce, Ratio: 0.5}, true},
		{"reduce both", Effect{Kind: EffectDamageReduce, Amount: 4, Ratio: 0.5}, false},
		{"reduce neither", Effect{Kind: EffectDamageReduce}, false},
		{"reduce ratio over one", Effect{Kind: EffectDamageReduce, Ratio: 1.5}, false},
		{"heal flat ok", Effect{Kind: EffectHeal, Amount: 10}, true},
		{"heal maxhp ratio ok", Effect{Kind: EffectHeal, Ratio: 0.3}, true},
		{"heal damage ratio ok", Effect{Kind: EffectHeal, DamageRatio: 0.5}, true},
		{"heal two modes", Effect{Kind: EffectHeal, Amount: 10, DamageRatio: 0.5}, false},
		{"heal no mode", Effect{Kind: EffectHeal}, false},
		{"counter flag ok", Effect{Kind: EffectGuaranteedCounter}, true},
		{"follow-up flag ok", Effect{Kind: EffectGuaranteedFollowUp}, true},
		{"special multi ok", Effect{Kind: EffectSpecial, Strikes: 5, StrikeScale: 0.3}, true},
		{"special multi one strike", Effect{Kind: EffectSpecial, Strikes: 1, StrikeScale: 0.3}, false},
		{"special multi no scale", Effect{Kind: EffectSpecial, Strikes: 3}, false},
		{"special pierce ok", Effect{Kind: EffectSpecial, Pierce: 0.5}, true},
		{"special pierce over one", Effect{Kind: EffectSpecial, Pierce: 1.2}, false},
		{"special vantage ok", Effect{Kind: EffectSpecial, Vantage: true}, true},
		{"special versus ok", Effect{Kind: EffectSpecial, VsCategory: item.CategoryAxe, VsHitBonus: 30, VsAvoidBonus: 30}, true},
		{"special versus no bonus", Effect{Kind: EffectSpecial, VsCategory: item.CategoryAxe}, false},
		{"special versus bad category", Effect{Kind: EffectSpecial, VsCategory: "flail", VsHitBonus: 30}, false},
		{"special empty", Effect{Kind: EffectSpecial}, false},
		{"unknown kind", Effect{Kind: "teleport"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.e.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
