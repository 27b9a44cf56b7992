package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmoretti/emberquest/internal/config"
	"github.com/lmoretti/emberquest/internal/game/character"
	"github.com/lmoretti/emberquest/internal/storage/postgres"
	"github.com/lmoretti/emberquest/internal/testutil"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func setupPlayerRepo(t *testing.T) *postgres.PlayerRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return postgres.NewPlayerRepository(pc.RawPool, config.Default())
}

func TestPlayerRepository_SaveAndLoad(t *testing.T) {
	repo := setupPlayerRepo(t)
	ctx := context.Background()

	name := uniqueName("aria")
	p := character.NewPlayer(name, config.Default())
	p.Level = 3
	p.XP = 17
	p.Gold = 240
	p.HP = 21
	p.MaxHP = 42
	p.Affinity = "Fire"
	p.ElementResistances["Ice"] = 0.25
	p.Weapon = &character.Weapon{Name: "Ember Blade", Attack: 4, Element: "Fire"}
	p.Accessories = []character.Accessory{{Name: "Iron Ring", Defense: 2}}
	p.Abilities = []string{"fireball", "ember_ward"}
	p.Potions[character.PotionStrong] = 2

	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, name, loaded.PlayerName)
	assert.Equal(t, 3, loaded.Level)
	assert.Equal(t, 17, loaded.XP)
	assert.Equal(t, 240, loaded.Gold)
	assert.Equal(t, 21, loaded.HP)
	assert.Equal(t, 42, loaded.MaxHP)
	assert.Equal(t, "Fire", loaded.Affinity)
	assert.Equal(t, 0.25, loaded.ElementResistances["Ice"])
	require.NotNil(t, loaded.Weapon)
	assert.Equal(t, "Ember Blade", loaded.Weapon.Name)
	assert.Equal(t, []character.Accessory{{Name: "Iron Ring", Defense: 2}}, loaded.Accessories)
	assert.Equal(t, []string{"fireball", "ember_ward"}, loaded.Abilities)
	assert.Equal(t, 2, loaded.Potions[character.PotionStrong])
}

func TestPlayerRepository_SaveIsUpsert(t *testing.T) {
	repo := setupPlayerRepo(t)
	ctx := context.Background()

	name := uniqueName("aria")
	p := character.NewPlayer(name, config.Default())
	require.NoError(t, repo.Save(ctx, p))

	p.Gold = 999
	p.Level = 5
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, 999, loaded.Gold)
	assert.Equal(t, 5, loaded.Level)

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, name)
}

func TestPlayerRepository_LoadMissing(t *testing.T) {
	repo := setupPlayerRepo(t)

	_, err := repo.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, postgres.ErrPlayerNotFound)
}

func TestPlayerRepository_Delete(t *testing.T) {
	repo := setupPlayerRepo(t)
	ctx := context.Background()

	name := uniqueName("aria")
	require.NoError(t, repo.Save(ctx, character.NewPlayer(name, config.Default())))
	require.NoError(t, repo.Delete(ctx, name))

	_, err := repo.Load(ctx, name)
	assert.ErrorIs(t, err, postgres.ErrPlayerNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, name), postgres.ErrPlayerNotFound)
}

func TestPlayerRepository_NilWeaponRoundTrip(t *testing.T) {
	repo := setupPlayerRepo(t)
	ctx := context.Background()

	name := uniqueName("aria")
	p := character.NewPlayer(name, config.Default())
	require.Nil(t, p.Weapon)
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.Load(ctx, name)
	require.NoError(t, err)
	assert.Nil(t, loaded.Weapon)
}
