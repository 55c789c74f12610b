package combat

// Battlefield answers positional terrain queries during an exchange.
// Implementations return 0 for out-of-bounds coordinates.
type Battlefield interface {
	// DodgeAt is the avoid bonus granted by the tile at (x, y).
	DodgeAt(x, y int) int
	// DefenseAt is the damage reduction granted by the tile at (x, y).
	DefenseAt(x, y int) int
}

// flatField is the zero-terrain battlefield used when none is supplied.
type flatField struct{}

func (flatField) DodgeAt(x, y int) int   { return 0 }
func (flatField) DefenseAt(x, y int) int { return 0 }

// Distance is the Manhattan distance between two combatants.
func Distance(a, b *Combatant) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SupportBonus is the aggregate modifier contributed by nearby allies.
type SupportBonus struct {
	// Damage is added to the holder's dealt damage.
	Damage int
	// Defense is subtracted from damage the holder takes.
	Defense int
	// Hit is added to the holder's hit chance.
	Hit int
	// Avoid is subtracted from the opponent's hit chance.
	Avoid int
}

// Add returns the component-wise sum of two bonuses.
func (b SupportBonus) Add(other SupportBonus) SupportBonus {
	return SupportBonus{
		Damage:  b.Damage + other.Damage,
		Defense: b.Defense + other.Defense,
		Hit:     b.Hit + other.Hit,
		Avoid:   b.Avoid + other.Avoid,
	}
}

// ProximityProvider reports the positional ally bonus a combatant holds
// at the moment of a strike. A nil provider means no proximity effects.
type ProximityProvider interface {
	Bonus(c *Combatant) SupportBonus
}
