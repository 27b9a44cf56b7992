package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lmoretti/emberquest/internal/config"
	"github.com/lmoretti/emberquest/internal/game/character"
)

// ErrPlayerNotFound is returned when a save-game lookup yields no results.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository persists player save games keyed by player name.
// Inventory-shaped fields (resistances, potions, equipment, abilities) are
// stored as JSONB so schema changes stay confined to the application.
type PlayerRepository struct {
	db  *pgxpool.Pool
	cfg config.Config
}

// NewPlayerRepository creates a PlayerRepository backed by the given pool.
// cfg supplies the rule configuration loaded players are bound to.
//
// Precondition: db must be a valid, open connection pool.
func NewPlayerRepository(db *pgxpool.Pool, cfg config.Config) *PlayerRepository {
	return &PlayerRepository{db: db, cfg: cfg}
}

// Save upserts the player's save game by name.
//
// Precondition: p must be non-nil with a non-empty name.
// Postcondition: A subsequent Load for the same name returns equivalent state.
func (r *PlayerRepository) Save(ctx context.Context, p *character.Player) error {
	resistances, err := json.Marshal(p.ElementResistances)
	if err != nil {
		return fmt.Errorf("encoding resistances: %w", err)
	}
	potions, err := json.Marshal(p.Potions)
	if err != nil {
		return fmt.Errorf("encoding potions: %w", err)
	}
	var weapon []byte
	if p.Weapon != nil {
		if weapon, err = json.Marshal(p.Weapon); err != nil {
			return fmt.Errorf("encoding weapon: %w", err)
		}
	}
	accessories, err := json.Marshal(p.Accessories)
	if err != nil {
		return fmt.Errorf("encoding accessories: %w", err)
	}
	abilities, err := json.Marshal(p.Abilities)
	if err != nil {
		return fmt.Errorf("encoding abilities: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO players
			(name, level, xp, gold, hp, max_hp, mana, max_mana, attack, agility,
			 affinity, resistances, potions, weapon, accessories, abilities)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (name) DO UPDATE SET
			level = EXCLUDED.level, xp = EXCLUDED.xp, gold = EXCLUDED.gold,
			hp = EXCLUDED.hp, max_hp = EXCLUDED.max_hp,
			mana = EXCLUDED.mana, max_mana = EXCLUDED.max_mana,
			attack = EXCLUDED.attack, agility = EXCLUDED.agility,
			affinity = EXCLUDED.affinity, resistances = EXCLUDED.resistances,
			potions = EXCLUDED.potions, weapon = EXCLUDED.weapon,
			accessories = EXCLUDED.accessories, abilities = EXCLUDED.abilities,
			updated_at = NOW()`,
		p.PlayerName, p.Level, p.XP, p.Gold, p.HP, p.MaxHP, p.Mana, p.MaxMana,
		p.Attack, p.Agility, p.Affinity, resistances, potions, weapon,
		accessories, abilities,
	)
	if err != nil {
		return fmt.Errorf("saving player: %w", err)
	}
	return nil
}

// Load retrieves a save game by player name.
//
// Precondition: name must be non-empty.
// Postcondition: Returns the Player or ErrPlayerNotFound.
func (r *PlayerRepository) Load(ctx context.Context, name string) (*character.Player, error) {
	p := character.NewPlayer(name, r.cfg)
	var resistances, potions, weapon, accessories, abilities []byte

	err := r.db.QueryRow(ctx, `
		SELECT level, xp, gold, hp, max_hp, mana, max_mana, attack, agility,
		       affinity, resistances, potions, weapon, accessories, abilities
		FROM players WHERE name = $1`,
		name,
	).Scan(
		&p.Level, &p.XP, &p.Gold, &p.HP, &p.MaxHP, &p.Mana, &p.MaxMana,
		&p.Attack, &p.Agility, &p.Affinity,
		&resistances, &potions, &weapon, &accessories, &abilities,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("querying player: %w", err)
	}

	if err := json.Unmarshal(resistances, &p.ElementResistances); err != nil {
		return nil, fmt.Errorf("decoding resistances: %w", err)
	}
	if err := json.Unmarshal(potions, &p.Potions); err != nil {
		return nil, fmt.Errorf("decoding potions: %w", err)
	}
	if len(weapon) > 0 {
		p.Weapon = &character.Weapon{}
		if err := json.Unmarshal(weapon, p.Weapon); err != nil {
			return nil, fmt.Errorf("decoding weapon: %w", err)
		}
	} else {
		p.Weapon = nil
	}
	if err := json.Unmarshal(accessories, &p.Accessories); err != nil {
		return nil, fmt.Errorf("decoding accessories: %w", err)
	}
	if err := json.Unmarshal(abilities, &p.Abilities); err != nil {
		return nil, fmt.Errorf("decoding abilities: %w", err)
	}
	return p, nil
}

// List returns all saved player names, ordered by most recently updated.
func (r *PlayerRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM players ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a save game by name.
//
// Postcondition: Returns nil on success, ErrPlayerNotFound if no row deleted.
func (r *PlayerRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM players WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}
