package combat

// StrikeResult records one resolved strike.
type StrikeResult struct {
	// Hit is true when the accuracy roll succeeded.
	Hit bool
	// Critical is true when the strike hit and the critical roll succeeded.
	Critical bool
	// Damage is the total hp removed across all hits of the strike.
	Damage int
	// Lethal is true when the strike reduced the target to 0 hp.
	Lethal bool
	// Hits is the number of individual hits the strike landed; above 1
	// only for multi-hit specials.
	Hits int
	// HitChance and CritChance are the computed percentages the rolls
	// were made against.
	HitChance  int
	CritChance int
}

// Outcome is the full record of a resolved exchange. Strikes and skill
// names are bucketed by the combatants' original roles regardless of any
// initiative swap.
type Outcome struct {
	// AttackerStrikes and DefenderStrikes list each side's strikes in
	// resolution order.
	AttackerStrikes []StrikeResult
	DefenderStrikes []StrikeResult

	// AttackerSkills and DefenderSkills name the skills that fired per
	// side, in activation order.
	AttackerSkills []string
	DefenderSkills []string

	// InitiativeSwapped is true when a vantage effect let the defender
	// strike first.
	InitiativeSwapped bool
}

// damageBySide sums the hp removed by each original side's strikes.
func (o *Outcome) damageBySide() (attacker, defender int) {
	for _, r := range o.AttackerStrikes {
		attacker += r.Damage
	}
	for _, r := range o.DefenderStrikes {
		defender += r.Damage
	}
	return attacker, defender
}

// winnerStrikes returns the strike list of the side that landed the
// lethal strike, or nil when both sides survived.
func (o *Outcome) winnerStrikes() []StrikeResult {
	for _, r := range o.AttackerStrikes {
		if r.Lethal {
			return o.AttackerStrikes
		}
	}
	for _, r := range o.DefenderStrikes {
		if r.Lethal {
			return o.DefenderStrikes
		}
	}
	return nil
}
