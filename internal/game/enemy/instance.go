package enemy

import (
	"github.com/google/uuid"
)

// immunityResist is the resist value that zeroes incoming damage of an element.
const immunityResist = 1.0

// vulnerabilityResist is the (negative) resist value granting +50% damage.
const vulnerabilityResist = -0.5

// Instance is a live opponent in one encounter.
//
// Invariant: 0 <= HP <= MaxHP.
type Instance struct {
	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source template's ID.
	TemplateID string

	DisplayName string
	Tier        int

	HP       int
	MaxHP    int
	Atk      int
	Def      int
	Affinity string

	// resistances is the effective per-element resist map: the template's
	// resistances overlaid with immunities (full resist) and vulnerabilities
	// (negative resist).
	resistances map[string]float64

	Abilities    []string
	Evasion      float64
	Boss         bool
	Regeneration int

	GoldReward int
	XPReward   int
}

// NewInstance creates a live opponent from a template.
//
// Precondition: tmpl must be non-nil and validated.
// Postcondition: HP equals tmpl.HP; the instance carries a fresh unique ID.
func NewInstance(tmpl *Template) *Instance {
	resist := make(map[string]float64, len(tmpl.Resistances)+len(tmpl.Immunities)+len(tmpl.Vulnerabilities))
	for elem, v := range tmpl.Resistances {
		resist[elem] = v
	}
	for _, elem := range tmpl.Vulnerabilities {
		resist[elem] = vulnerabilityResist
	}
	// Immunities win over everything else.
	for _, elem := range tmpl.Immunities {
		resist[elem] = immunityResist
	}

	return &Instance{
		ID:           uuid.NewString(),
		TemplateID:   tmpl.ID,
		DisplayName:  tmpl.Name,
		Tier:         tmpl.Tier,
		HP:           tmpl.HP,
		MaxHP:        tmpl.HP,
		Atk:          tmpl.Attack,
		Def:          tmpl.Defense,
		Affinity:     tmpl.Element,
		resistances:  resist,
		Abilities:    tmpl.Abilities,
		Evasion:      tmpl.Evasion,
		Boss:         tmpl.Boss,
		Regeneration: tmpl.Regeneration,
		GoldReward:   tmpl.GoldReward,
		XPReward:     tmpl.XPReward,
	}
}

// Name returns the enemy's display name.
func (i *Instance) Name() string { return i.DisplayName }

// Health returns current health.
func (i *Instance) Health() int { return i.HP }

// MaxHealth returns maximum health.
func (i *Instance) MaxHealth() int { return i.MaxHP }

// Alive reports whether the enemy can still fight.
func (i *Instance) Alive() bool { return i.HP > 0 }

// Element returns the enemy's innate element tag.
func (i *Instance) Element() string { return i.Affinity }

// Resistances returns the effective per-element resistance map.
func (i *Instance) Resistances() map[string]float64 { return i.resistances }

// AttackPower returns the enemy's attack stat.
func (i *Instance) AttackPower() int { return i.Atk }

// SpellPower returns the power backing the enemy's spell-like attacks.
func (i *Instance) SpellPower() int { return i.Atk }

// Defense returns effective defense: half the raw defense stat, floored.
func (i *Instance) Defense() int { return i.Def / 2 }

// EvasionChance returns the fixed per-definition evasion chance.
func (i *Instance) EvasionChance() float64 { return i.Evasion }

// AbilityIDs returns the ability ids this enemy can use.
func (i *Instance) AbilityIDs() []string { return i.Abilities }

// Rewards reports the gold and experience granted when this enemy falls.
func (i *Instance) Rewards() (gold, xp int) { return i.GoldReward, i.XPReward }

// ApplyDamage reduces HP by amount, flooring at zero.
//
// Precondition: amount must be >= 0.
// Postcondition: HP >= 0.
func (i *Instance) ApplyDamage(amount int) {
	i.HP -= amount
	if i.HP < 0 {
		i.HP = 0
	}
}

// Heal restores up to amount HP and returns the amount actually restored.
//
// Postcondition: HP <= MaxHP.
func (i *Instance) Heal(amount int) int {
	healed := amount
	if i.HP+healed > i.MaxHP {
		healed = i.MaxHP - i.HP
	}
	i.HP += healed
	return healed
}

// TickRegen applies one regeneration tick, clamped to max health. Dead
// enemies do not regenerate.
func (i *Instance) TickRegen() {
	if i.Regeneration > 0 && i.Alive() {
		i.Heal(i.Regeneration)
	}
}
