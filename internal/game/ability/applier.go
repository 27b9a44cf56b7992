package ability

import (
	"fmt"

	"github.com/lmoretti/emberquest/internal/game/damage"
)

// Caster is the stat surface an ability user must expose. Heal is invoked for
// self-healing abilities and must clamp to the caster's maximum health.
type Caster interface {
	damage.Attacker
	// MaxHealth returns the caster's maximum health.
	MaxHealth() int
	// Heal restores up to amount health and returns the amount actually restored.
	Heal(amount int) int
}

// Hook is an optional extension invoked after an ability resolves. It can
// replace the narration; returning ("", false) keeps the default.
type Hook interface {
	OnUse(d *Definition, casterName, targetName string, damageDealt int) (narration string, ok bool)
}

// Applier resolves ability use against the damage pipeline.
type Applier struct {
	registry *Registry
	calc     *damage.Calculator
	hook     Hook
}

// NewApplier creates an Applier over the given registry and calculator.
// hook may be nil.
//
// Precondition: registry and calc must be non-nil.
func NewApplier(registry *Registry, calc *damage.Calculator, hook Hook) *Applier {
	return &Applier{registry: registry, calc: calc, hook: hook}
}

// Registry returns the underlying registry.
func (a *Applier) Registry() *Registry {
	return a.registry
}

// Apply resolves abilityID cast by caster against target. Damage is computed
// by the pipeline with the definition's element and multiplier; a nonzero
// healing fraction heals the caster by floor(max health x fraction), clamped
// to max health. The returned narration is the definition's effect text or a
// generic fallback.
//
// An unknown abilityID degrades gracefully: zero damage and a diagnostic
// narration, never an error.
//
// Precondition: caster and target must be non-nil.
// Postcondition: Returns (damage >= 1, narration) for known abilities, or
// (0, diagnostic) for unknown ones.
func (a *Applier) Apply(caster Caster, target damage.Defender, abilityID string) (int, string) {
	d, ok := a.registry.Get(abilityID)
	if !ok {
		return 0, fmt.Sprintf("Unknown ability: %s", abilityID)
	}

	result := a.calc.AbilityAttack(caster, target, d.Element, d.DamageMultiplier,
		map[string]any{"ability_id": d.ID})

	if d.HealingFraction > 0 {
		caster.Heal(int(float64(caster.MaxHealth()) * d.HealingFraction))
	}

	narration := d.EffectText
	if narration == "" {
		narration = fmt.Sprintf("%s is cast!", d.Name)
	}
	if a.hook != nil {
		if custom, ok := a.hook.OnUse(d, casterName(caster), targetName(target), result.FinalDamage); ok {
			narration = custom
		}
	}

	return result.FinalDamage, narration
}

// named is implemented by combatants that expose a display name.
type named interface {
	Name() string
}

func casterName(c Caster) string {
	if n, ok := c.(named); ok {
		return n.Name()
	}
	return "caster"
}

func targetName(t damage.Defender) string {
	if n, ok := t.(named); ok {
		return n.Name()
	}
	return "target"
}
