package item

// The matchup triangle is the cyclic advantage relation
// blade > axe > polearm > blade. Bow and arcane sit outside it.
//
// Each favorable edge is worth +15 hit and +1 might to the attacker; the
// reverse edge is worth the negative. All other pairings, including
// unarmed ones, contribute nothing.

// TriangleHitBonus is the hit-chance swing per favorable matchup edge.
const TriangleHitBonus = 15

// TriangleMightBonus is the might swing per favorable matchup edge.
const TriangleMightBonus = 1

// Advantage returns +1 when attacker's category beats defender's, -1 when
// it is beaten by it, and 0 for neutral pairings.
//
// Postcondition: Advantage(a, b) == -Advantage(b, a).
func Advantage(attacker, defender Category) int {
	if beats(attacker) == defender {
		return 1
	}
	if beats(defender) == attacker {
		return -1
	}
	return 0
}

// beats returns the category c has advantage over, or "" for categories
// outside the triangle.
func beats(c Category) Category {
	switch c {
	case CategoryBlade:
		return CategoryAxe
	case CategoryAxe:
		return CategoryPolearm
	case CategoryPolearm:
		return CategoryBlade
	default:
		return ""
	}
}
