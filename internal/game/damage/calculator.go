package damage

import (
	"github.com/lmoretti/emberquest/internal/game/dice"
	"github.com/lmoretti/emberquest/internal/game/element"
)

// ReactionFunc resolves the ordered (attack element, defender element) pair to
// a reaction, if one exists.
type ReactionFunc func(attackElement, defenderElement string) (element.Reaction, bool)

// Calculator applies damage modifiers in a fixed order:
//
//  1. Base damage (rolled from stats, or the context override)
//  2. Defense reduction
//  3. Elemental modifier
//  4. Reaction bonus/penalty
//  5. Ability multiplier
//  6. Final clamp to max(1, damage)
//
// The order is part of the balancing contract and is never reordered.
type Calculator struct {
	src      dice.Source
	modifier element.ModifierFunc
	reaction ReactionFunc
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithModifierFunc replaces the default resistance-model elemental strategy.
func WithModifierFunc(fn element.ModifierFunc) Option {
	return func(c *Calculator) { c.modifier = fn }
}

// WithReactionFunc replaces the default reaction table lookup.
func WithReactionFunc(fn ReactionFunc) Option {
	return func(c *Calculator) { c.reaction = fn }
}

// NewCalculator creates a Calculator drawing randomness from src. The default
// elemental strategy is the resistance model; the default reaction strategy is
// the static ordered-pair table.
//
// Precondition: src must be non-nil.
func NewCalculator(src dice.Source, opts ...Option) *Calculator {
	c := &Calculator{
		src:      src,
		modifier: element.ResistanceModifier,
		reaction: element.ReactionFor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate runs ctx through the pipeline and returns the itemized result.
//
// Precondition: ctx.Attacker and ctx.Defender must be non-nil.
// Postcondition: result.FinalDamage >= 1.
func (c *Calculator) Calculate(ctx Context) Result {
	baseDmg := ctx.BaseDamage
	if !ctx.HasBaseDamage {
		baseDmg = c.rollBaseDamage(ctx)
	}

	defenseReduction := 0
	if !ctx.IgnoreDefense {
		defenseReduction = ctx.Defender.Defense()
	}
	running := baseDmg - defenseReduction
	if running < 1 {
		running = 1
	}

	elementMod := 1.0
	if !ctx.IgnoreResistance && ctx.Element != "" && ctx.Element != element.None {
		elementMod = c.modifier(ctx.Element, ctx.Defender.Resistances())
	}
	running = int(float64(running) * elementMod)

	reactionMod := 1.0
	reactionName := ""
	if !ctx.IgnoreReaction && ctx.Element != "" && ctx.Element != element.None {
		if r, ok := c.reaction(ctx.Element, ctx.Defender.Element()); ok {
			reactionMod = r.Modifier
			reactionName = r.Name
		}
	}
	running = int(float64(running) * reactionMod)

	abilityMult := ctx.AbilityMultiplier
	if abilityMult == 0 {
		abilityMult = 1.0
	}
	if abilityMult != 1.0 {
		running = int(float64(running) * abilityMult)
	}

	if running < 1 {
		running = 1
	}

	return Result{
		BaseDamage:        baseDmg,
		DefenseReduction:  defenseReduction,
		ElementModifier:   elementMod,
		ReactionModifier:  reactionMod,
		AbilityMultiplier: abilityMult,
		FinalDamage:       running,
		Reaction:          reactionName,
		Resisted:          elementMod < 1.0,
		Vulnerable:        elementMod > 1.0,
	}
}

// rollBaseDamage draws the starting damage from the attacker's stats: spell
// power +/-1 for spells, attack power +/-2 for everything else. The lower
// bound never drops below 1.
func (c *Calculator) rollBaseDamage(ctx Context) int {
	var lo, hi int
	if ctx.Category == Spell {
		power := ctx.Attacker.SpellPower()
		lo, hi = power-1, power+1
	} else {
		power := ctx.Attacker.AttackPower()
		lo, hi = power-2, power+2
	}
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return dice.Between(c.src, lo, hi)
}

// BasicAttack computes damage for a basic physical attack carrying the given
// attack element (the attacker's weapon or innate element; element.None for
// unaligned attacks).
func (c *Calculator) BasicAttack(attacker Attacker, defender Defender, attackElement string) Result {
	return c.Calculate(Context{
		Attacker: attacker,
		Defender: defender,
		Category: Physical,
		Element:  attackElement,
	})
}

// AbilityAttack computes damage for a special ability with the given element
// and multiplier.
func (c *Calculator) AbilityAttack(attacker Attacker, defender Defender, abilityElement string, multiplier float64, metadata map[string]any) Result {
	return c.Calculate(Context{
		Attacker:          attacker,
		Defender:          defender,
		Category:          Ability,
		Element:           abilityElement,
		AbilityMultiplier: multiplier,
		Metadata:          metadata,
	})
}
