package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lmoretti/emberquest/internal/config"
	"github.com/lmoretti/emberquest/internal/game/character"
)

func newPlayer(t *testing.T) *character.Player {
	t.Helper()
	return character.NewPlayer("Aria", config.Default())
}

// TestNewPlayer verifies starting state from the default configuration.
func TestNewPlayer(t *testing.T) {
	p := newPlayer(t)

	assert.Equal(t, "Aria", p.Name())
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 30, p.Health())
	assert.Equal(t, 30, p.MaxHealth())
	assert.Equal(t, 6, p.AttackPower())
	assert.Equal(t, "None", p.Element())
	assert.True(t, p.Alive())
	assert.True(t, p.HasPotion(character.PotionSmall))
}

// TestApplyDamage_FloorsAtZero verifies the stored-health invariant.
func TestApplyDamage_FloorsAtZero(t *testing.T) {
	p := newPlayer(t)
	p.ApplyDamage(12)
	assert.Equal(t, 18, p.Health())

	p.ApplyDamage(100)
	assert.Equal(t, 0, p.Health())
	assert.False(t, p.Alive())
}

// TestHeal_ClampsAtMax verifies healing never exceeds max health and reports
// the actual amount restored.
func TestHeal_ClampsAtMax(t *testing.T) {
	p := newPlayer(t)
	p.ApplyDamage(5)

	assert.Equal(t, 5, p.Heal(20), "only the missing health is restored")
	assert.Equal(t, 30, p.Health())
	assert.Equal(t, 0, p.Heal(10), "healing at full health restores nothing")
}

// TestUsePotion verifies consumption, restore amounts, and the no-potion case.
func TestUsePotion(t *testing.T) {
	p := newPlayer(t)
	p.ApplyDamage(20)

	healed := p.UsePotion(character.PotionSmall)
	assert.Equal(t, 12, healed)
	assert.Equal(t, 22, p.Health())

	// second small potion clamps at max
	healed = p.UsePotion(character.PotionSmall)
	assert.Equal(t, 8, healed)
	assert.Equal(t, 30, p.Health())

	assert.Zero(t, p.UsePotion(character.PotionSmall), "inventory exhausted")
	assert.Zero(t, p.UsePotion(character.PotionStrong), "none held")
	assert.Zero(t, p.UsePotion("elixir"), "unknown type")
}

// TestUsePotion_Mana verifies mana potions restore the mana pool, not health.
func TestUsePotion_Mana(t *testing.T) {
	p := newPlayer(t)
	require.True(t, p.SpendMana(15))
	assert.Equal(t, 5, p.Mana)

	restored := p.UsePotion(character.PotionMana)
	assert.Equal(t, 15, restored)
	assert.Equal(t, 20, p.Mana)

	assert.False(t, p.SpendMana(25), "unaffordable cost leaves the pool untouched")
	assert.Equal(t, 20, p.Mana)
}

// TestAttackPower_Equipment verifies weapon and accessory bonuses stack.
func TestAttackPower_Equipment(t *testing.T) {
	p := newPlayer(t)
	p.Equip(&character.Weapon{Name: "Ember Blade", Attack: 4, Element: "Fire"})
	p.EquipAccessory(character.Accessory{Name: "Iron Ring", Attack: 1, Defense: 2})

	assert.Equal(t, 11, p.AttackPower())
	assert.Equal(t, 2, p.Defense())
	assert.Equal(t, "Fire", p.AttackElement())
}

// TestAttackElement_Unarmed verifies unarmed attacks carry no element.
func TestAttackElement_Unarmed(t *testing.T) {
	p := newPlayer(t)
	assert.Equal(t, "None", p.AttackElement())

	p.Equip(&character.Weapon{Name: "Plain Dagger", Attack: 1})
	assert.Equal(t, "None", p.AttackElement(), "unaligned weapon stays elementless")
}

// TestEvasionChance verifies the base + agility + gear derivation and clamp.
func TestEvasionChance(t *testing.T) {
	p := newPlayer(t)
	// 0.1 base + 5 agility x 0.02
	assert.InDelta(t, 0.2, p.EvasionChance(), 1e-9)

	p.Equip(&character.Weapon{Name: "Swift Blade", EvasionBonus: 0.05})
	assert.InDelta(t, 0.25, p.EvasionChance(), 1e-9)

	p.EquipAccessory(character.Accessory{Name: "Wind Charm", EvasionBonus: 0.5})
	assert.Equal(t, 0.5, p.EvasionChance(), "clamped to max_evasion")
}

// TestEvasionChance_Clamp_Property verifies the clamp holds for arbitrary
// agility and gear.
func TestEvasionChance_Clamp_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := character.NewPlayer("Aria", config.Default())
		p.Agility = rapid.IntRange(0, 100).Draw(t, "agility")
		p.Equip(&character.Weapon{
			EvasionBonus: rapid.Float64Range(-1, 1).Draw(t, "bonus"),
		})

		chance := p.EvasionChance()
		if chance < 0 || chance > 0.5 {
			t.Fatalf("evasion chance %f outside [0, 0.5]", chance)
		}
	})
}

// TestGainXP_LevelUp verifies the level-up loop: threshold level x 12,
// stat growth, full heal, and multi-level gains.
func TestGainXP_LevelUp(t *testing.T) {
	p := newPlayer(t)
	p.ApplyDamage(10)

	require.False(t, p.GainXP(11), "below the first threshold")
	require.True(t, p.GainXP(1), "12 XP reaches level 2")

	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 36, p.MaxHealth())
	assert.Equal(t, 36, p.Health(), "level-up fully heals")
	assert.Equal(t, 8, p.AttackPower())
	assert.Equal(t, 6, p.Agility)
	assert.Zero(t, p.XP)

	// 24 (level 2) + 36 (level 3) = 60 XP jumps two levels at once
	require.True(t, p.GainXP(60))
	assert.Equal(t, 4, p.Level)
}

// TestAddGold verifies the purse floors at zero.
func TestAddGold(t *testing.T) {
	p := newPlayer(t)
	p.AddGold(50)
	assert.Equal(t, 50, p.Gold)

	p.AddGold(-80)
	assert.Zero(t, p.Gold)
}

// TestLearnAbility verifies duplicate ability ids are ignored.
func TestLearnAbility(t *testing.T) {
	p := newPlayer(t)
	p.LearnAbility("fireball")
	p.LearnAbility("fireball")
	p.LearnAbility("stab")
	assert.Equal(t, []string{"fireball", "stab"}, p.Abilities)
}
