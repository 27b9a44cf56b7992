package damage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lmoretti/emberquest/internal/game/damage"
	"github.com/lmoretti/emberquest/internal/game/element"
)

// stubCombatant satisfies both damage.Attacker and damage.Defender with
// directly settable effective values.
type stubCombatant struct {
	atk    int
	spell  int
	def    int
	elem   string
	resist map[string]float64
}

func (s stubCombatant) AttackPower() int                { return s.atk }
func (s stubCombatant) SpellPower() int                 { return s.spell }
func (s stubCombatant) Defense() int                    { return s.def }
func (s stubCombatant) Element() string                 { return s.elem }
func (s stubCombatant) Resistances() map[string]float64 { return s.resist }

// fixedSrc makes Intn return min(v, n-1), pinning the base-damage roll.
type fixedSrc struct{ v int }

func (s fixedSrc) Intn(n int) int {
	if s.v >= n {
		return n - 1
	}
	return s.v
}

func (s fixedSrc) Float64() float64 { return 0 }

func neutral(elem string) stubCombatant {
	return stubCombatant{atk: 8, spell: 5, def: 2, elem: elem, resist: map[string]float64{}}
}

// TestCalculate_NeutralAttack pins the §"attack power 8 vs effective defense 2"
// scenario: rolled base in [6, 10], no elemental or reaction modifiers, final
// damage = max(1, base - 2).
func TestCalculate_NeutralAttack(t *testing.T) {
	attacker := neutral(element.None)
	defender := neutral(element.None)

	for roll := 0; roll < 5; roll++ {
		calc := damage.NewCalculator(fixedSrc{v: roll})
		res := calc.BasicAttack(attacker, defender, element.None)

		wantBase := 6 + roll
		require.Equal(t, wantBase, res.BaseDamage, "Between(6, 10) with draw %d", roll)
		assert.Equal(t, 2, res.DefenseReduction)
		assert.Equal(t, 1.0, res.ElementModifier)
		assert.Equal(t, 1.0, res.ReactionModifier)
		assert.Equal(t, wantBase-2, res.FinalDamage)
		assert.False(t, res.Resisted)
		assert.False(t, res.Vulnerable)
	}
}

// TestCalculate_FireResistanceHalves verifies that a 0.5 Fire resistance
// halves the post-defense damage, rounded down.
func TestCalculate_FireResistanceHalves(t *testing.T) {
	attacker := neutral(element.None)
	defender := neutral(element.None)
	defender.resist = map[string]float64{"Fire": 0.5}

	// draw 3 → base 9, post-defense 7, halved → 3
	calc := damage.NewCalculator(fixedSrc{v: 3})
	res := calc.BasicAttack(attacker, defender, "Fire")

	assert.Equal(t, 9, res.BaseDamage)
	assert.Equal(t, 0.5, res.ElementModifier)
	assert.Equal(t, 3, res.FinalDamage)
	assert.True(t, res.Resisted)
	assert.False(t, res.Vulnerable)
}

// TestCalculate_PipelineOrder is the regression-style exact computation:
// base 12 (override) → defense 3 → x0.5 element → x0.9 steam reaction →
// x2.0 ability → clamp. Each intermediate truncates to an integer.
func TestCalculate_PipelineOrder(t *testing.T) {
	defender := stubCombatant{
		def:    3,
		elem:   "Water",
		resist: map[string]float64{"Fire": 0.5},
	}

	calc := damage.NewCalculator(fixedSrc{})
	res := calc.Calculate(damage.Context{
		Attacker:          neutral(element.None),
		Defender:          defender,
		Category:          damage.Ability,
		Element:           "Fire",
		AbilityMultiplier: 2.0,
		BaseDamage:        12,
		HasBaseDamage:     true,
	})

	// 12 - 3 = 9; 9 * 0.5 = 4.5 → 4; 4 * 0.9 = 3.6 → 3; 3 * 2.0 = 6
	assert.Equal(t, 12, res.BaseDamage)
	assert.Equal(t, 3, res.DefenseReduction)
	assert.Equal(t, 0.5, res.ElementModifier)
	assert.Equal(t, 0.9, res.ReactionModifier)
	assert.Equal(t, 2.0, res.AbilityMultiplier)
	assert.Equal(t, "Steam", res.Reaction)
	assert.Equal(t, 6, res.FinalDamage)
}

// TestCalculate_DamageFloor_Property verifies FinalDamage >= 1 for arbitrary
// stats, resistances, elements, and multipliers.
func TestCalculate_DamageFloor_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		attacker := stubCombatant{
			atk:   rapid.IntRange(0, 50).Draw(t, "atk"),
			spell: rapid.IntRange(0, 50).Draw(t, "spell"),
		}
		elem := rapid.SampledFrom(element.Elements).Draw(t, "elem")
		defender := stubCombatant{
			def:  rapid.IntRange(0, 100).Draw(t, "def"),
			elem: rapid.SampledFrom(element.Elements).Draw(t, "delem"),
			resist: map[string]float64{
				elem: rapid.Float64Range(-2, 2).Draw(t, "resist"),
			},
		}

		calc := damage.NewCalculator(fixedSrc{v: rapid.IntRange(0, 4).Draw(t, "roll")})
		res := calc.Calculate(damage.Context{
			Attacker:          attacker,
			Defender:          defender,
			Category:          damage.Category(rapid.IntRange(0, 3).Draw(t, "cat")),
			Element:           elem,
			AbilityMultiplier: rapid.Float64Range(0, 5).Draw(t, "mult"),
		})

		if res.FinalDamage < 1 {
			t.Fatalf("final damage %d below floor", res.FinalDamage)
		}
	})
}

// TestCalculate_BypassFlags verifies each flag skips exactly one step.
func TestCalculate_BypassFlags(t *testing.T) {
	defender := stubCombatant{
		def:    4,
		elem:   "Water",
		resist: map[string]float64{"Fire": 0.5},
	}
	base := damage.Context{
		Attacker:      neutral(element.None),
		Defender:      defender,
		Element:       "Fire",
		BaseDamage:    10,
		HasBaseDamage: true,
	}

	calc := damage.NewCalculator(fixedSrc{})

	t.Run("ignore defense", func(t *testing.T) {
		ctx := base
		ctx.IgnoreDefense = true
		res := calc.Calculate(ctx)
		assert.Equal(t, 0, res.DefenseReduction)
		// 10 * 0.5 = 5; 5 * 0.9 = 4.5 → 4
		assert.Equal(t, 4, res.FinalDamage)
	})

	t.Run("ignore resistance", func(t *testing.T) {
		ctx := base
		ctx.IgnoreResistance = true
		res := calc.Calculate(ctx)
		assert.Equal(t, 1.0, res.ElementModifier)
		// 10 - 4 = 6; 6 * 0.9 = 5.4 → 5
		assert.Equal(t, 5, res.FinalDamage)
	})

	t.Run("ignore reaction", func(t *testing.T) {
		ctx := base
		ctx.IgnoreReaction = true
		res := calc.Calculate(ctx)
		assert.Equal(t, 1.0, res.ReactionModifier)
		assert.Empty(t, res.Reaction)
		// 10 - 4 = 6; 6 * 0.5 = 3
		assert.Equal(t, 3, res.FinalDamage)
	})
}

// TestCalculate_SpellUsesSpellPower verifies the spell category draws from
// [spell power - 1, spell power + 1].
func TestCalculate_SpellUsesSpellPower(t *testing.T) {
	attacker := stubCombatant{atk: 50, spell: 5}
	defender := stubCombatant{}

	for roll := 0; roll < 3; roll++ {
		calc := damage.NewCalculator(fixedSrc{v: roll})
		res := calc.Calculate(damage.Context{
			Attacker: attacker,
			Defender: defender,
			Category: damage.Spell,
			Element:  element.None,
		})
		assert.Equal(t, 4+roll, res.BaseDamage)
	}
}

// TestCalculate_WeakAttackerStillRolls verifies the base-damage roll bounds
// never drop below 1 for very low attack power.
func TestCalculate_WeakAttackerStillRolls(t *testing.T) {
	attacker := stubCombatant{atk: 1}
	defender := stubCombatant{def: 10}

	calc := damage.NewCalculator(fixedSrc{})
	res := calc.BasicAttack(attacker, defender, element.None)
	require.GreaterOrEqual(t, res.BaseDamage, 1)
	assert.Equal(t, 1, res.FinalDamage)
}

// TestCalculate_ZeroMultiplierIsNeutral verifies an unset (zero) ability
// multiplier is treated as 1.0, not as a zeroing factor.
func TestCalculate_ZeroMultiplierIsNeutral(t *testing.T) {
	calc := damage.NewCalculator(fixedSrc{})
	res := calc.Calculate(damage.Context{
		Attacker:      neutral(element.None),
		Defender:      stubCombatant{},
		BaseDamage:    7,
		HasBaseDamage: true,
	})
	assert.Equal(t, 1.0, res.AbilityMultiplier)
	assert.Equal(t, 7, res.FinalDamage)
}

// TestCalculate_MatchupStrategy verifies a custom elemental strategy takes
// precedence over the resistance model.
func TestCalculate_MatchupStrategy(t *testing.T) {
	defender := stubCombatant{
		elem: "Earth",
		// resistance model would halve; the matchup strategy must win
		resist: map[string]float64{"Fire": 0.5},
	}
	matchup := func(attackElement string, _ map[string]float64) float64 {
		return element.MatchupModifier(attackElement, defender.elem)
	}

	calc := damage.NewCalculator(fixedSrc{}, damage.WithModifierFunc(matchup))
	res := calc.Calculate(damage.Context{
		Attacker:      neutral(element.None),
		Defender:      defender,
		Element:       "Fire",
		BaseDamage:    8,
		HasBaseDamage: true,
	})

	assert.Equal(t, 1.25, res.ElementModifier)
	assert.True(t, res.Vulnerable)
	// 8 * 1.25 = 10
	assert.Equal(t, 10, res.FinalDamage)
}
