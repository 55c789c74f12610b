package relic

import (
	"fmt"

	"github.com/cory-johannsen/emblem/internal/game/dice"
	"github.com/cory-johannsen/emblem/internal/game/item"
	"github.com/cory-johannsen/emblem/internal/game/skill"
)

// Generator builds random relic definitions from built-in templates.
// All randomness flows through the injected Source so drops replay
// deterministically under a seeded source.
type Generator struct {
	src dice.Source
	seq int // serial for unique IDs
}

// NewGenerator creates a Generator drawing from src.
//
// Precondition: src must not be nil.
func NewGenerator(src dice.Source) *Generator {
	return &Generator{src: src}
}

type weaponTemplate struct {
	name     string
	might    int
	hit      int
	crit     int
	weight   int
	rangeMin int
	rangeMax int
	uses     int
}

var weaponTemplates = map[item.Category]weaponTemplate{
	item.CategoryBlade:   {name: "Blade", might: 8, hit: 85, crit: 5, weight: 6, rangeMin: 1, rangeMax: 1, uses: 40},
	item.CategoryPolearm: {name: "Lance", might: 10, hit: 75, crit: 0, weight: 9, rangeMin: 1, rangeMax: 1, uses: 40},
	item.CategoryAxe:     {name: "Axe", might: 12, hit: 65, crit: 0, weight: 12, rangeMin: 1, rangeMax: 1, uses: 40},
	item.CategoryBow:     {name: "Bow", might: 9, hit: 80, crit: 5, weight: 7, rangeMin: 2, rangeMax: 2, uses: 35},
	item.CategoryArcane:  {name: "Tome", might: 9, hit: 80, crit: 0, weight: 5, rangeMin: 1, rangeMax: 2, uses: 30},
}

var rarityPrefixes = map[Rarity][]string{
	RarityUncommon:  {"Tempered", "Keen", "Balanced"},
	RarityRare:      {"Runed", "Gleaming", "Stormforged"},
	RarityEpic:      {"Hallowed", "Dragonbone", "Sunforged"},
	RarityLegendary: {"Mythic", "Worldrending", "Celestial"},
}

// mightBonus and effect counts per rarity tier.
var rarityPower = map[Rarity]struct {
	might   int
	crit    int
	effects int
	skills  int
}{
	RarityUncommon:  {might: 1, crit: 0, effects: 1, skills: 0},
	RarityRare:      {might: 2, crit: 5, effects: 1, skills: 0},
	RarityEpic:      {might: 4, crit: 10, effects: 2, skills: 1},
	RarityLegendary: {might: 6, crit: 15, effects: 2, skills: 1},
}

// Generate builds a relic definition of the given rarity and category.
// An empty category picks one at random.
//
// Precondition: rarity must be valid.
// Postcondition: The returned Def passes Validate.
func (g *Generator) Generate(rarity Rarity, cat item.Category) *Def {
	if !cat.Valid() {
		cats := []item.Category{item.CategoryBlade, item.CategoryPolearm, item.CategoryAxe, item.CategoryBow, item.CategoryArcane}
		cat = cats[g.src.Intn(len(cats))]
	}
	tpl := weaponTemplates[cat]
	power := rarityPower[rarity]
	prefixes := rarityPrefixes[rarity]
	prefix := prefixes[g.src.Intn(len(prefixes))]

	g.seq++
	name := fmt.Sprintf("%s %s", prefix, tpl.name)
	def := &Def{
		Weapon: item.WeaponDef{
			ID:       fmt.Sprintf("relic_%s_%s_%d", rarity, cat, g.seq),
			Name:     name,
			Category: cat,
			Might:    tpl.might + power.might,
			Hit:      tpl.hit,
			Crit:     tpl.crit + power.crit,
			Weight:   tpl.weight,
			RangeMin: tpl.rangeMin,
			RangeMax: tpl.rangeMax,
			MaxUses:  tpl.uses,
		},
		Rarity: rarity,
		Lore:   fmt.Sprintf("The %s was carried through a hundred battles before it was lost.", name),
	}

	for i := 0; i < power.effects; i++ {
		def.Effects = append(def.Effects, g.randomEffect())
	}
	for i := 0; i < power.skills; i++ {
		def.GrantedSkills = append(def.GrantedSkills, g.randomSkill(def.Weapon.ID, i))
	}
	return def
}

func (g *Generator) randomEffect() skill.Effect {
	pool := []skill.Effect{
		{Kind: skill.EffectDamageBoost, Amount: 3},
		{Kind: skill.EffectHitBoost, Amount: 10},
		{Kind: skill.EffectCritBoost, Amount: 10},
		{Kind: skill.EffectAvoidBoost, Amount: 10},
		{Kind: skill.EffectDamageReduce, Amount: 3},
		{Kind: skill.EffectGuaranteedCounter},
		{Kind: skill.EffectGuaranteedFollowUp},
		{Kind: skill.EffectSpecial, Pierce: 0.5},
	}
	return pool[g.src.Intn(len(pool))]
}

func (g *Generator) randomSkill(relicID string, n int) *skill.Def {
	pool := []*skill.Def{
		{
			Name:        "Fury",
			Description: "Below half hp, critical chance rises sharply.",
			Trigger:     skill.Trigger{Kind: skill.TriggerHPThreshold, Op: skill.OpLess, Threshold: 50},
			Effect:      skill.Effect{Kind: skill.EffectCritBoost, Amount: 20},
		},
		{
			Name:        "Lifedrinker",
			Description: "Sometimes restores half the damage dealt.",
			Trigger:     skill.Trigger{Kind: skill.TriggerPercent, Chance: 30},
			Effect:      skill.Effect{Kind: skill.EffectHeal, DamageRatio: 0.5},
		},
		{
			Name:        "Riposte",
			Description: "Below half hp, strike first when attacked.",
			Trigger:     skill.Trigger{Kind: skill.TriggerHPThreshold, Op: skill.OpLess, Threshold: 50},
			Effect:      skill.Effect{Kind: skill.EffectSpecial, Vantage: true},
		},
	}
	picked := *pool[g.src.Intn(len(pool))]
	// IDs must be unique per relic so granted skills never collide with a
	// roster skill of the same template.
	picked.ID = fmt.Sprintf("%s_granted_%d", relicID, n)
	return &picked
}
