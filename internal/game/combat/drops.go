package combat

import (
	"github.com/cory-johannsen/emblem/internal/game/dice"
	"github.com/cory-johannsen/emblem/internal/game/item"
	"github.com/cory-johannsen/emblem/internal/game/relic"
)

// rarityWeight pairs a rarity with its selection weight in tenths, so
// the fractional level scaling survives integer dice.
type rarityWeight struct {
	rarity relic.Rarity
	weight int
}

// GeneratePostVictoryDrop rolls for a relic reward after a lethal
// exchange. Stronger defeated combatants raise both the drop chance and
// the rarity weights; a spectacular victory (any critical or multi-hit
// strike by the winner) raises both further. The drop inherits the
// defeated combatant's weapon category 70% of the time.
//
// Returns nil when no drop is generated.
//
// Precondition: outcome must contain a lethal strike; gen and src must
// not be nil.
func GeneratePostVictoryDrop(defeated *Combatant, outcome *Outcome, gen *relic.Generator, src dice.Source) *relic.Def {
	winner := outcome.winnerStrikes()
	if winner == nil {
		return nil
	}

	levelFactor := float64(defeated.Level) / 20.0

	spectacular := false
	for _, r := range winner {
		if r.Critical || r.Hits > 1 {
			spectacular = true
			break
		}
	}

	dropChance := 5 + 25*levelFactor
	if spectacular {
		dropChance *= 1.5
	}
	// Tenths of a percent, so the fractional chance is not truncated away.
	if src.Intn(1000) >= int(dropChance*10) {
		return nil
	}

	weights := []rarityWeight{
		{relic.RarityUncommon, int(1000 * (1.0 - levelFactor))},
		{relic.RarityRare, int(500 * levelFactor)},
		{relic.RarityEpic, int(200 * levelFactor)},
		{relic.RarityLegendary, int(50 * levelFactor)},
	}
	if spectacular {
		for i := 1; i < len(weights); i++ {
			weights[i].weight = weights[i].weight * 3 / 2
		}
	}

	total := 0
	for _, w := range weights {
		if w.weight > 0 {
			total += w.weight
		}
	}
	rarity := relic.RarityUncommon
	if total > 0 {
		roll := src.Intn(total)
		for _, w := range weights {
			if w.weight <= 0 {
				continue
			}
			if roll < w.weight {
				rarity = w.rarity
				break
			}
			roll -= w.weight
		}
	}

	var cat item.Category
	if dc, ok := defeated.WeaponCategory(); ok && src.Intn(100) < 70 {
		cat = dc
	}

	return gen.Generate(rarity, cat)
}
