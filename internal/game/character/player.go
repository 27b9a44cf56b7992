// Package character provides the protagonist model: stats, equipment, potion
// inventory, and level progression. The combat engine mutates a Player's
// health and resources in place during an encounter; everything else is owned
// by the caller.
package character

import (
	"github.com/lmoretti/emberquest/internal/config"
	"github.com/lmoretti/emberquest/internal/game/element"
)

// Potion inventory keys.
const (
	PotionSmall      = "small"
	PotionMedium     = "medium"
	PotionStrong     = "strong"
	PotionMana       = "mana"
	PotionManaStrong = "mana_strong"
)

// defaultSpellPower is the spell power of a protagonist with no casting gear.
const defaultSpellPower = 5

// Weapon is an equippable weapon granting attack, an attack element, and an
// evasion bonus.
type Weapon struct {
	Name         string
	Attack       int
	Element      string
	EvasionBonus float64
}

// Accessory is an equippable trinket granting flat stat bonuses.
type Accessory struct {
	Name         string
	Attack       int
	Defense      int
	EvasionBonus float64
}

// Player is the protagonist of an Emberquest run.
//
// Invariant: 0 <= HP <= MaxHP; 0 <= Mana <= MaxMana; potion counts >= 0.
type Player struct {
	PlayerName string

	Level int
	XP    int
	Gold  int

	HP      int
	MaxHP   int
	Mana    int
	MaxMana int
	Attack  int
	Agility int

	// Affinity is the player's innate element tag.
	Affinity string
	// ElementResistances maps element tag to resist value (0.2 = 20% reduction).
	ElementResistances map[string]float64

	Potions     map[string]int
	Weapon      *Weapon
	Accessories []Accessory
	// Abilities lists the ids of abilities the player has learned.
	Abilities []string

	potionCfg config.PotionConfig
	playerCfg config.PlayerConfig
	combatCfg config.CombatConfig
}

// NewPlayer creates a level-1 protagonist from the configured starting stats.
//
// Postcondition: HP == MaxHP, Mana == MaxMana, Level == 1.
func NewPlayer(name string, cfg config.Config) *Player {
	return &Player{
		PlayerName:         name,
		Level:              1,
		Gold:               cfg.Player.StartingGold,
		HP:                 cfg.Player.StartingHP,
		MaxHP:              cfg.Player.StartingHP,
		Mana:               cfg.Player.StartingMana,
		MaxMana:            cfg.Player.StartingMana,
		Attack:             cfg.Player.StartingAttack,
		Agility:            cfg.Player.StartingAgility,
		Affinity:           element.None,
		ElementResistances: make(map[string]float64),
		Potions: map[string]int{
			PotionSmall:  2,
			PotionMedium: 0,
			PotionStrong: 0,
			PotionMana:   1,
		},
		potionCfg: cfg.Potions,
		playerCfg: cfg.Player,
		combatCfg: cfg.Combat,
	}
}

// Name returns the player's display name.
func (p *Player) Name() string { return p.PlayerName }

// Health returns current health.
func (p *Player) Health() int { return p.HP }

// MaxHealth returns maximum health including accessory bonuses.
func (p *Player) MaxHealth() int { return p.MaxHP }

// Alive reports whether the player can still fight.
func (p *Player) Alive() bool { return p.HP > 0 }

// Element returns the player's innate element tag.
func (p *Player) Element() string { return p.Affinity }

// Resistances returns the per-element resistance map.
func (p *Player) Resistances() map[string]float64 { return p.ElementResistances }

// AttackPower returns effective attack including weapon and accessory bonuses.
func (p *Player) AttackPower() int {
	total := p.Attack
	if p.Weapon != nil {
		total += p.Weapon.Attack
	}
	for _, a := range p.Accessories {
		total += a.Attack
	}
	return total
}

// SpellPower returns effective spell power.
func (p *Player) SpellPower() int { return defaultSpellPower }

// Defense returns effective defense from accessories.
func (p *Player) Defense() int {
	total := 0
	for _, a := range p.Accessories {
		total += a.Defense
	}
	return total
}

// AttackElement returns the element carried by the player's basic attacks:
// the equipped weapon's element, or None when unarmed or the weapon is
// unaligned.
func (p *Player) AttackElement() string {
	if p.Weapon != nil && p.Weapon.Element != "" {
		return p.Weapon.Element
	}
	return element.None
}

// EvasionChance derives the probability of dodging an incoming attack:
// base + agility bonus + equipment bonuses, clamped to [0, max].
//
// Postcondition: 0 <= result <= combat.max_evasion.
func (p *Player) EvasionChance() float64 {
	chance := p.combatCfg.BaseEvasion + float64(p.Agility)*p.combatCfg.EvasionPerAgility
	if p.Weapon != nil {
		chance += p.Weapon.EvasionBonus
	}
	for _, a := range p.Accessories {
		chance += a.EvasionBonus
	}
	if chance < 0 {
		return 0
	}
	if chance > p.combatCfg.MaxEvasion {
		return p.combatCfg.MaxEvasion
	}
	return chance
}

// ApplyDamage reduces HP by amount, flooring at zero.
//
// Precondition: amount must be >= 0.
// Postcondition: HP >= 0.
func (p *Player) ApplyDamage(amount int) {
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// Heal restores up to amount HP and returns the amount actually restored.
//
// Postcondition: HP <= MaxHP.
func (p *Player) Heal(amount int) int {
	healed := amount
	if p.HP+healed > p.MaxHP {
		healed = p.MaxHP - p.HP
	}
	p.HP += healed
	return healed
}

// HasPotion reports whether at least one potion of the given type is held.
func (p *Player) HasPotion(potionType string) bool {
	return p.Potions[potionType] > 0
}

// AddPotion adds count potions of the given type to the inventory.
//
// Precondition: count must be >= 0.
func (p *Player) AddPotion(potionType string, count int) {
	p.Potions[potionType] += count
}

// UsePotion consumes one potion of the given type and returns the amount of
// health (or mana, for mana potions) restored. Returns 0 without consuming
// anything when no potion of that type is held.
//
// Postcondition: HP <= MaxHP and Mana <= MaxMana.
func (p *Player) UsePotion(potionType string) int {
	if p.Potions[potionType] <= 0 {
		return 0
	}

	var restored int
	switch potionType {
	case PotionSmall:
		restored = p.Heal(p.potionCfg.Small)
	case PotionMedium:
		restored = p.Heal(p.potionCfg.Medium)
	case PotionStrong:
		restored = p.Heal(p.potionCfg.Strong)
	case PotionMana:
		restored = p.restoreMana(p.potionCfg.Mana)
	case PotionManaStrong:
		restored = p.restoreMana(p.potionCfg.ManaStrong)
	default:
		return 0
	}

	p.Potions[potionType]--
	return restored
}

func (p *Player) restoreMana(amount int) int {
	restored := amount
	if p.Mana+restored > p.MaxMana {
		restored = p.MaxMana - p.Mana
	}
	p.Mana += restored
	return restored
}

// SpendMana deducts cost from the mana pool and reports whether it was
// affordable. An unaffordable cost leaves the pool untouched.
func (p *Player) SpendMana(cost int) bool {
	if cost > p.Mana {
		return false
	}
	p.Mana -= cost
	return true
}

// GainXP adds amount experience and applies any level-ups: each level costs
// level x xp_per_level, grants the configured stat growth, and fully heals.
//
// Postcondition: Returns true iff at least one level was gained.
func (p *Player) GainXP(amount int) bool {
	p.XP += amount
	leveled := false
	for p.XP >= p.Level*p.playerCfg.XPPerLevel {
		p.XP -= p.Level * p.playerCfg.XPPerLevel
		p.Level++
		p.MaxHP += p.playerCfg.HPPerLevel
		p.Attack += p.playerCfg.AttackPerLevel
		p.Agility += p.playerCfg.AgilityPerLevel
		p.HP = p.MaxHP
		leveled = true
	}
	return leveled
}

// AddGold adds amount to the player's purse, flooring the purse at zero for
// negative adjustments.
func (p *Player) AddGold(amount int) {
	p.Gold += amount
	if p.Gold < 0 {
		p.Gold = 0
	}
}

// Equip sets the player's weapon, replacing any current one.
func (p *Player) Equip(w *Weapon) {
	p.Weapon = w
}

// EquipAccessory adds an accessory to the worn set.
func (p *Player) EquipAccessory(a Accessory) {
	p.Accessories = append(p.Accessories, a)
}

// LearnAbility records an ability id as known, ignoring duplicates.
func (p *Player) LearnAbility(id string) {
	for _, known := range p.Abilities {
		if known == id {
			return
		}
	}
	p.Abilities = append(p.Abilities, id)
}
