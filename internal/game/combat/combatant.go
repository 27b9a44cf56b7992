package combat

import "github.com/lmoretti/emberquest/internal/game/damage"

// Combatant is the surface every participant exposes to the engine. It
// extends the damage pipeline's attacker and defender contracts with the
// health bookkeeping the round loop needs.
type Combatant interface {
	damage.Attacker
	damage.Defender

	Name() string
	Health() int
	MaxHealth() int
	Alive() bool
	ApplyDamage(amount int)
	EvasionChance() float64
}

// Protagonist is the player side of an encounter. The engine drives it
// through the action verbs it accepts from the caller.
type Protagonist interface {
	Combatant

	// AttackElement is the element carried by the protagonist's basic
	// attack, typically the equipped weapon's element.
	AttackElement() string
	HasPotion(kind string) bool
	// UsePotion consumes one potion of the given kind and returns the
	// amount of health or mana restored.
	UsePotion(kind string) int
}

// Opponent is the enemy side of an encounter.
type Opponent interface {
	Combatant

	// AbilityIDs lists the abilities the opponent may invoke on its
	// scripted turns. Empty means it only uses basic attacks.
	AbilityIDs() []string
	// Rewards reports the gold and experience granted on victory.
	Rewards() (gold, xp int)
}

// AbilityFunc applies the identified ability cast by the opponent against
// the protagonist and returns the damage dealt plus narration text. The
// engine treats the returned damage as pre-evasion: it still rolls the
// protagonist's (reduced) evasion before applying it.
type AbilityFunc func(caster Opponent, target Protagonist, abilityID string) (int, string)
