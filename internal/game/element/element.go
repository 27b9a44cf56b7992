// Package element holds the static elemental rules of Emberquest: the element
// set, the strong/weak matchup table, the per-combatant resistance model, and
// the ordered pairwise reaction table. Everything in this package is pure and
// stateless; the damage pipeline composes these functions.
package element

// None is the neutral element tag carried by unaligned attacks and combatants.
const None = "None"

// Elements is the canonical element set, in display order.
var Elements = []string{None, "Fire", "Water", "Earth", "Air", "Ice", "Lightning", "Arcane"}

// ModifierFunc computes an elemental damage multiplier for an attack element
// against a defender's resistance map. Values below 1.0 mean the attack was
// resisted; values above 1.0 mean the defender is vulnerable.
type ModifierFunc func(attackElement string, defenderResistances map[string]float64) float64

// matchup lists the elements each element is strong and weak against.
type matchup struct {
	strongAgainst []string
	weakAgainst   []string
}

var matchups = map[string]matchup{
	"Fire":      {strongAgainst: []string{"Earth", "Air"}, weakAgainst: []string{"Water"}},
	"Water":     {strongAgainst: []string{"Fire"}, weakAgainst: []string{"Earth", "Lightning"}},
	"Earth":     {strongAgainst: []string{"Water", "Lightning"}, weakAgainst: []string{"Fire", "Air"}},
	"Air":       {strongAgainst: []string{"Earth"}, weakAgainst: []string{"Lightning"}},
	"Lightning": {strongAgainst: []string{"Water", "Air"}, weakAgainst: []string{"Earth"}},
	"Arcane":    {strongAgainst: []string{"Arcane"}, weakAgainst: []string{None}},
}

// Valid reports whether name is a known element tag.
func Valid(name string) bool {
	for _, e := range Elements {
		if e == name {
			return true
		}
	}
	return false
}

// MatchupModifier computes the type-matchup multiplier for an attack element
// against a defender's innate element: 1.25 when the attacker is strong
// against the defender, 0.75 when weak, 1.0 otherwise.
//
// Postcondition: Returns one of 0.75, 1.0, 1.25.
func MatchupModifier(attackElement, defenderElement string) float64 {
	m, ok := matchups[attackElement]
	if !ok {
		return 1.0
	}
	for _, e := range m.strongAgainst {
		if e == defenderElement {
			return 1.25
		}
	}
	for _, e := range m.weakAgainst {
		if e == defenderElement {
			return 0.75
		}
	}
	return 1.0
}

// ResistanceModifier computes the resistance-model multiplier: a resist value
// of 0.2 means 20% damage reduction, negative values mean vulnerability.
// Unknown elements and the None element yield 1.0.
//
// Postcondition: Returns >= 0.
func ResistanceModifier(attackElement string, defenderResistances map[string]float64) float64 {
	if attackElement == "" || attackElement == None {
		return 1.0
	}
	resist := defenderResistances[attackElement]
	mod := 1.0 - resist
	if mod < 0 {
		return 0
	}
	return mod
}
