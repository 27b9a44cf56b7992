package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lmoretti/emberquest/internal/config"
	"github.com/lmoretti/emberquest/internal/game/character"
	"github.com/lmoretti/emberquest/internal/game/combat"
)

// TestChooseAction covers the policy's three branches: attack while
// healthy, drink the strongest held potion when hurt, and flee once the
// potions run out.
func TestChooseAction(t *testing.T) {
	p := character.NewPlayer("Simulant", config.Default())
	assert.Equal(t, combat.ActionAttack, chooseAction(p))

	p.HP = p.MaxHP/3 - 1
	p.AddPotion(character.PotionStrong, 1)
	assert.Equal(t, "potion:"+character.PotionStrong, chooseAction(p))

	p.Potions = map[string]int{}
	assert.Equal(t, combat.ActionFlee, chooseAction(p))
}

func TestLeveledPlayer(t *testing.T) {
	p := leveledPlayer(config.Default(), 4)
	assert.Equal(t, 4, p.Level)
	assert.Equal(t, p.MaxHP, p.HP)
}
