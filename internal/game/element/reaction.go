package element

// Reaction is a bonus or penalty multiplier triggered when a specific ordered
// pair of elements meets in an attack.
type Reaction struct {
	// Name is the display name of the reaction, e.g. "Steam".
	Name string
	// Description is the flavor text shown when the reaction fires.
	Description string
	// Modifier is the damage multiplier applied on top of the elemental modifier.
	Modifier float64
}

// reactionKey is the ordered (attack element, defender element) pair.
type reactionKey struct {
	attack   string
	defender string
}

// reactions is the static ordered-pair reaction table. Order matters: Fire
// into Ice melts, but Ice into Fire does nothing.
var reactions = map[reactionKey]Reaction{
	{"Fire", "Water"}:      {Name: "Steam", Description: "Creates steam, reduces visibility.", Modifier: 0.9},
	{"Water", "Fire"}:      {Name: "Steam", Description: "Creates steam, reduces visibility.", Modifier: 0.9},
	{"Fire", "Ice"}:        {Name: "Melt", Description: "Melts ice, increases damage.", Modifier: 1.2},
	{"Lightning", "Water"}: {Name: "Conduct", Description: "Electricity spreads through water.", Modifier: 1.3},
}

// ReactionFor looks up the reaction for the ordered pair (attackElement,
// defenderElement).
//
// Postcondition: Returns (reaction, true) when the pair is in the table, or
// (zero Reaction, false) otherwise.
func ReactionFor(attackElement, defenderElement string) (Reaction, bool) {
	r, ok := reactions[reactionKey{attack: attackElement, defender: defenderElement}]
	return r, ok
}
