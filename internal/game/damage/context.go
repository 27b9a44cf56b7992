// Package damage implements the unified damage pipeline for Emberquest.
// Every hit in the game — player attacks, enemy attacks, special abilities —
// flows through the same Calculator so modifiers compose in one fixed order.
package damage

// Category is the kind of damage being dealt.
type Category int

const (
	// Physical is a basic weapon or claw attack.
	Physical Category = iota
	// Spell is magic damage drawn from the caster's spell power.
	Spell
	// Ability is damage from a data-defined special ability.
	Ability
	// Status is periodic damage from a lingering effect.
	Status
)

// String returns the lowercase category label.
func (c Category) String() string {
	switch c {
	case Physical:
		return "physical"
	case Spell:
		return "spell"
	case Ability:
		return "ability"
	case Status:
		return "status"
	default:
		return "unknown"
	}
}

// Attacker is the attacker-side stat surface consumed by the pipeline.
// Implementations report effective values including equipment bonuses.
type Attacker interface {
	// AttackPower returns the effective physical attack power.
	AttackPower() int
	// SpellPower returns the effective spell power.
	SpellPower() int
}

// Defender is the defender-side stat surface consumed by the pipeline.
type Defender interface {
	// Defense returns the effective combined defense value.
	Defense() int
	// Resistances returns the per-element resistance map; 0.2 means 20%
	// damage reduction, negative values mean vulnerability.
	Resistances() map[string]float64
	// Element returns the defender's innate element tag.
	Element() string
}

// Context describes one damage computation. It is constructed and consumed
// within a single Calculate call and never persisted.
type Context struct {
	Attacker Attacker
	Defender Defender

	Category Category
	// Element is the attack's element tag; element.None skips the elemental
	// and reaction steps.
	Element string
	// AbilityMultiplier scales the damage for special abilities; 1.0 is neutral.
	AbilityMultiplier float64

	// BaseDamage is used verbatim instead of rolling from attacker stats
	// when HasBaseDamage is set.
	BaseDamage    int
	HasBaseDamage bool

	// Bypass flags; each skips exactly one pipeline step.
	IgnoreDefense    bool
	IgnoreResistance bool
	IgnoreReaction   bool

	Metadata map[string]any
}

// Result is the fully itemized outcome of one damage computation.
type Result struct {
	// BaseDamage is the rolled or overridden starting value.
	BaseDamage int
	// DefenseReduction is the amount subtracted by the defender's defense.
	DefenseReduction int
	// ElementModifier is the elemental multiplier that was applied.
	ElementModifier float64
	// ReactionModifier is the reaction multiplier that was applied.
	ReactionModifier float64
	// AbilityMultiplier is the ability multiplier that was applied.
	AbilityMultiplier float64
	// FinalDamage is the clamped end result, always >= 1.
	FinalDamage int

	// Reaction is the name of the reaction that fired, if any.
	Reaction string
	// Resisted is true when the elemental modifier fell below 1.0.
	Resisted bool
	// Vulnerable is true when the elemental modifier exceeded 1.0.
	Vulnerable bool
}
