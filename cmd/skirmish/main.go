// Package main provides the skirmish demonstration binary. It wires
// together configuration, logging, the content registries, and the combat
// engine, then resolves one exchange and rolls for a drop.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/emblem/internal/config"
	"github.com/cory-johannsen/emblem/internal/game/combat"
	"github.com/cory-johannsen/emblem/internal/game/dice"
	"github.com/cory-johannsen/emblem/internal/game/item"
	"github.com/cory-johannsen/emblem/internal/game/relic"
	"github.com/cory-johannsen/emblem/internal/game/skill"
	"github.com/cory-johannsen/emblem/internal/game/support"
	"github.com/cory-johannsen/emblem/internal/game/terrain"
	"github.com/cory-johannsen/emblem/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (built-in defaults when empty)")
	flag.Parse()

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting skirmish",
		zap.Int("follow_up_margin", cfg.Engine.FollowUpMargin),
		zap.Int("crit_multiplier", cfg.Engine.CritMultiplier),
	)

	// Load content
	terrainReg, err := loadTerrain(cfg.Content)
	if err != nil {
		logger.Fatal("loading terrain", zap.Error(err))
	}
	weapons, err := loadWeapons(cfg.Content)
	if err != nil {
		logger.Fatal("loading weapons", zap.Error(err))
	}
	skills, err := loadSkills(cfg.Content)
	if err != nil {
		logger.Fatal("loading skills", zap.Error(err))
	}
	relics, err := loadRelics(cfg.Content)
	if err != nil {
		logger.Fatal("loading relics", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("terrain", len(terrainReg.All())),
		zap.Int("weapons", len(weapons.AllWeapons())),
		zap.Int("skills", len(skills.All())),
		zap.Int("relics", len(relics.All())),
	)

	// A small field with a forest tile shielding the defender.
	grid, err := terrain.NewGrid(terrainReg, 6, 6, "plain")
	if err != nil {
		logger.Fatal("building battlefield", zap.Error(err))
	}
	if err := grid.Set(3, 2, "forest"); err != nil {
		logger.Fatal("placing forest", zap.Error(err))
	}

	src := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	attacker, defender, ally := demoRoster(weapons, skills, relics)
	if attacker.Relic != nil {
		logger.Info("relic equipped",
			zap.String("combatant", attacker.Name),
			zap.String("relic", attacker.Relic.Def.Weapon.Name),
			zap.String("rarity", string(attacker.Relic.Def.Rarity)),
		)
	}

	bonds := support.NewSystem()
	if pair, err := bonds.Register(attacker.ID, ally.ID, support.LevelA); err == nil {
		pair.AddPoints(20) // rank C from prior campaigns
	}
	prox := support.NewProvider(bonds, []*combat.Combatant{attacker, defender, ally}, cfg.Engine.SupportRange)

	encLogger := observability.NewEncounterLogger(logger, attacker.ID, defender.ID)
	eng := combat.NewEngine(src, encLogger, combat.Tunables{
		FollowUpMargin: cfg.Engine.FollowUpMargin,
		CritMultiplier: cfg.Engine.CritMultiplier,
	})

	out, err := eng.Resolve(attacker, defender, grid, prox)
	if err != nil {
		logger.Fatal("resolving exchange", zap.Error(err))
	}
	printOutcome(attacker, defender, out)

	bonds.RecordBattleTogether(attacker.ID, ally.ID)

	if defender.IsDead() {
		gen := relic.NewGenerator(src)
		if drop := combat.GeneratePostVictoryDrop(defender, out, gen, src); drop != nil {
			fmt.Printf("drop: %s (%s %s)\n", drop.Weapon.Name, drop.Rarity, drop.Weapon.Category)
			logger.Info("relic dropped",
				zap.String("weapon", drop.Weapon.Name),
				zap.String("rarity", string(drop.Rarity)),
			)
		} else {
			fmt.Println("no drop this time")
		}
	}
}

func loadTerrain(c config.ContentConfig) (*terrain.Registry, error) {
	if c.TerrainDir == "" {
		return terrain.DefaultRegistry(), nil
	}
	return terrain.LoadDirectory(c.TerrainDir)
}

func loadWeapons(c config.ContentConfig) (*item.Registry, error) {
	reg := item.NewRegistry()
	if c.WeaponsDir == "" {
		for _, def := range defaultWeapons() {
			if err := reg.RegisterWeapon(def); err != nil {
				return nil, err
			}
		}
		return reg, nil
	}
	if err := reg.LoadWeaponsDirectory(c.WeaponsDir); err != nil {
		return nil, err
	}
	return reg, nil
}

func loadSkills(c config.ContentConfig) (*skill.Registry, error) {
	if c.SkillsDir == "" {
		reg := skill.NewRegistry()
		for _, def := range defaultSkills() {
			if err := reg.Register(def); err != nil {
				return nil, err
			}
		}
		return reg, nil
	}
	return skill.LoadDirectory(c.SkillsDir)
}

func loadRelics(c config.ContentConfig) (*relic.Registry, error) {
	if c.RelicsDir == "" {
		reg := relic.NewRegistry()
		for _, def := range defaultRelics() {
			if err := reg.Register(def); err != nil {
				return nil, err
			}
		}
		return reg, nil
	}
	return relic.LoadDirectory(c.RelicsDir)
}

func defaultWeapons() []*item.WeaponDef {
	return []*item.WeaponDef{
		{ID: "iron_blade", Name: "Iron Blade", Category: item.CategoryBlade,
			Might: 5, Hit: 85, Weight: 5, RangeMin: 1, RangeMax: 1, MaxUses: 40},
		{ID: "iron_axe", Name: "Iron Axe", Category: item.CategoryAxe,
			Might: 8, Hit: 70, Weight: 10, RangeMin: 1, RangeMax: 1, MaxUses: 40},
		{ID: "iron_polearm", Name: "Iron Polearm", Category: item.CategoryPolearm,
			Might: 7, Hit: 75, Weight: 8, RangeMin: 1, RangeMax: 1, MaxUses: 40},
		{ID: "shortbow", Name: "Shortbow", Category: item.CategoryBow,
			Might: 6, Hit: 80, Weight: 5, RangeMin: 2, RangeMax: 2, MaxUses: 30},
		{ID: "flame_tome", Name: "Flame Tome", Category: item.CategoryArcane,
			Might: 5, Hit: 80, Weight: 4, RangeMin: 1, RangeMax: 2, MaxUses: 35},
	}
}

func defaultSkills() []*skill.Def {
	return []*skill.Def{
		{
			ID: "vantage", Name: "Vantage",
			Description: "Strike first when cornered.",
			Trigger:     skill.Trigger{Kind: skill.TriggerHPThreshold, Op: skill.OpLess, Threshold: 50},
			Effect:      skill.Effect{Kind: skill.EffectSpecial, Vantage: true},
		},
		{
			ID: "war_cry", Name: "War Cry",
			Description: "Open every fight with surging power.",
			Trigger:     skill.Trigger{Kind: skill.TriggerPreCombat},
			Effect:      skill.Effect{Kind: skill.EffectStatBoost, Stat: skill.StatPower, Amount: 3},
		},
		{
			ID: "sol", Name: "Sol",
			Description: "Drain vitality from landed strikes.",
			Trigger:     skill.Trigger{Kind: skill.TriggerPercent, Chance: 35},
			Effect:      skill.Effect{Kind: skill.EffectHeal, DamageRatio: 0.5},
		},
	}
}

func defaultRelics() []*relic.Def {
	return []*relic.Def{
		{
			Weapon: item.WeaponDef{ID: "ember_fang", Name: "Ember Fang", Category: item.CategoryBlade,
				Might: 8, Hit: 80, Crit: 5, Weight: 6, RangeMin: 1, RangeMax: 1, MaxUses: 25},
			Rarity:        relic.RarityRare,
			Effects:       []skill.Effect{{Kind: skill.EffectStatBoost, Stat: skill.StatSpeed, Amount: 2}},
			RequiredLevel: 5,
			Lore:          "Forged in the ashes of the old capital.",
		},
	}
}

// demoRoster builds two opposing fighters plus a bonded ally standing by.
// The attacker wields a relic when one is available to them, otherwise an
// ordinary blade.
func demoRoster(weapons *item.Registry, skills *skill.Registry, relics *relic.Registry) (attacker, defender, ally *combat.Combatant) {
	attacker = &combat.Combatant{
		ID:    uuid.NewString(),
		Name:  "Edric",
		Level: 8,
		MaxHP: 38, HP: 38,
		Stats: combat.Stats{Power: 12, Magic: 2, Skill: 9, Speed: 11, Luck: 6, Defense: 6, Resistance: 3},
		X:     2, Y: 2,
	}
	if def, ok := relics.Get("ember_fang"); ok && def.CanEquip(attacker.Level, attacker.Name) {
		attacker.EquipRelic(relic.New(def))
	} else {
		attacker.EquipWeapon(item.NewWeapon(weapons.Weapon("iron_blade")))
	}
	if def, ok := skills.Get("war_cry"); ok {
		attacker.Skills = append(attacker.Skills, def)
	}
	if def, ok := skills.Get("sol"); ok {
		attacker.Skills = append(attacker.Skills, def)
	}

	defender = &combat.Combatant{
		ID:    uuid.NewString(),
		Name:  "Bram",
		Level: 7,
		MaxHP: 42, HP: 42,
		Stats: combat.Stats{Power: 13, Magic: 1, Skill: 7, Speed: 8, Luck: 4, Defense: 8, Resistance: 2},
		X:     3, Y: 2,
	}
	defender.EquipWeapon(item.NewWeapon(weapons.Weapon("iron_axe")))
	if def, ok := skills.Get("vantage"); ok {
		defender.Skills = append(defender.Skills, def)
	}

	ally = &combat.Combatant{
		ID:    uuid.NewString(),
		Name:  "Aria",
		Level: 6,
		MaxHP: 30, HP: 30,
		Stats: combat.Stats{Power: 8, Magic: 10, Skill: 8, Speed: 10, Luck: 7, Defense: 4, Resistance: 7},
		X:     2, Y: 3,
	}
	ally.EquipWeapon(item.NewWeapon(weapons.Weapon("flame_tome")))

	return attacker, defender, ally
}

func printOutcome(attacker, defender *combat.Combatant, out *combat.Outcome) {
	fmt.Printf("%s vs %s (initiative swapped: %v)\n", attacker.Name, defender.Name, out.InitiativeSwapped)
	printStrikes(attacker.Name, out.AttackerStrikes)
	printStrikes(defender.Name, out.DefenderStrikes)
	if len(out.AttackerSkills) > 0 {
		fmt.Printf("%s skills: %v\n", attacker.Name, out.AttackerSkills)
	}
	if len(out.DefenderSkills) > 0 {
		fmt.Printf("%s skills: %v\n", defender.Name, out.DefenderSkills)
	}
	fmt.Printf("%s: %d/%d hp   %s: %d/%d hp\n",
		attacker.Name, attacker.HP, attacker.MaxHP,
		defender.Name, defender.HP, defender.MaxHP)
}

func printStrikes(name string, strikes []combat.StrikeResult) {
	for i, s := range strikes {
		switch {
		case !s.Hit:
			fmt.Printf("  %s strike %d: miss (%d%%)\n", name, i+1, s.HitChance)
		case s.Critical:
			fmt.Printf("  %s strike %d: CRITICAL %d damage\n", name, i+1, s.Damage)
		default:
			fmt.Printf("  %s strike %d: %d damage\n", name, i+1, s.Damage)
		}
		if s.Lethal {
			fmt.Printf("  %s lands the killing blow\n", name)
		}
	}
}
