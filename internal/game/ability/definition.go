// Package ability provides data-driven special ability definitions and their
// application. Abilities are loaded from YAML at startup into a Registry and
// routed through the damage pipeline when used.
package ability

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lmoretti/emberquest/internal/game/element"
)

// Definition describes a single ability loaded from YAML. Definitions are
// immutable after load.
type Definition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// DamageMultiplier scales the damage pipeline output; 1.0 is neutral.
	DamageMultiplier float64 `yaml:"damage_multiplier"`
	// Element is the ability's element tag; empty defaults to None.
	Element string `yaml:"element"`
	// EffectText is the narration emitted when the ability is used.
	EffectText string `yaml:"effect_text"`
	// HealingFraction heals the caster for this fraction of their max health;
	// 0 means no self-heal.
	HealingFraction float64 `yaml:"healing_fraction"`
	// ManaCost is the resource cost to use the ability.
	ManaCost int `yaml:"mana_cost"`
	// Cooldown is the number of turns before the ability can be reused.
	Cooldown int `yaml:"cooldown"`
	// Script is the optional Lua on_use hook name; empty means no hook.
	Script string `yaml:"script"`

	Metadata map[string]any `yaml:"metadata"`
}

// Validate checks that the definition satisfies its invariants.
//
// Precondition: d must not be nil.
// Postcondition: Returns nil iff all fields are valid.
func (d *Definition) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.DamageMultiplier < 0 {
		errs = append(errs, fmt.Errorf("damage_multiplier must be >= 0, got %g", d.DamageMultiplier))
	}
	if d.Element != "" && !element.Valid(d.Element) {
		errs = append(errs, fmt.Errorf("unknown element %q", d.Element))
	}
	if d.HealingFraction < 0 {
		errs = append(errs, fmt.Errorf("healing_fraction must be >= 0, got %g", d.HealingFraction))
	}
	if d.ManaCost < 0 {
		errs = append(errs, fmt.Errorf("mana_cost must be >= 0, got %d", d.ManaCost))
	}
	if d.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("cooldown must be >= 0, got %d", d.Cooldown))
	}
	return errors.Join(errs...)
}

// ParseDefinition parses a single ability definition from raw YAML bytes and
// validates it. An empty element tag is normalized to element.None and a zero
// damage multiplier to 1.0.
//
// Precondition: data must be valid YAML for a single Definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing ability YAML: %w", err)
	}
	if d.Element == "" {
		d.Element = element.None
	}
	if d.DamageMultiplier == 0 {
		d.DamageMultiplier = 1.0
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
