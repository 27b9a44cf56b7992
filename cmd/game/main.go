// Package main provides the interactive command-line game client.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lmoretti/emberquest/internal/config"
	"github.com/lmoretti/emberquest/internal/game/ability"
	"github.com/lmoretti/emberquest/internal/game/character"
	"github.com/lmoretti/emberquest/internal/game/combat"
	"github.com/lmoretti/emberquest/internal/game/damage"
	"github.com/lmoretti/emberquest/internal/game/dice"
	"github.com/lmoretti/emberquest/internal/game/enemy"
	"github.com/lmoretti/emberquest/internal/observability"
	"github.com/lmoretti/emberquest/internal/scripting"
	"github.com/lmoretti/emberquest/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	playerName := flag.String("name", "Hero", "player name")
	persist := flag.Bool("save", false, "load and save progress in the configured database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	src := dice.NewLoggedSource(dice.NewCryptoSource(), logger)

	registry, err := ability.LoadRegistry(cfg.Paths.AbilitiesDir, logger)
	if err != nil {
		logger.Fatal("loading abilities", zap.Error(err))
	}
	templates, err := enemy.LoadTemplates(cfg.Paths.EnemiesDir, logger)
	if err != nil {
		logger.Fatal("loading enemies", zap.Error(err))
	}
	if len(templates) == 0 {
		logger.Fatal("no enemy templates available", zap.String("dir", cfg.Paths.EnemiesDir))
	}

	var hook ability.Hook
	if cfg.Paths.ScriptsDir != "" {
		mgr := scripting.NewManager(src, logger)
		if err := mgr.Load(cfg.Paths.ScriptsDir, 0); err != nil {
			logger.Fatal("loading ability scripts", zap.Error(err))
		}
		defer mgr.Close()
		hook = scripting.NewAbilityHook(mgr)
	}

	calc := damage.NewCalculator(src)
	applier := ability.NewApplier(registry, calc, hook)

	ctx := context.Background()
	var repo *postgres.PlayerRepository
	if *persist {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to save-game store", zap.Error(err))
		}
		defer pool.Close()
		repo = postgres.NewPlayerRepository(pool.DB(), cfg)
	}

	player := loadOrCreatePlayer(ctx, repo, *playerName, cfg, logger)

	fmt.Printf("Welcome, %s! (level %d, %d/%d HP, %d gold)\n",
		player.Name(), player.Level, player.HP, player.MaxHP, player.Gold)

	in := bufio.NewScanner(os.Stdin)
	for player.Alive() {
		foe := nextFoe(templates, src)
		runEncounter(in, player, foe, cfg, src, calc, applier)

		if repo != nil && player.Alive() {
			saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := repo.Save(saveCtx, player); err != nil {
				logger.Warn("saving progress", zap.Error(err))
			}
			cancel()
		}
		if !player.Alive() {
			fmt.Println("Your journey ends here.")
			break
		}

		fmt.Print("Continue to the next battle? [y/n] > ")
		if !in.Scan() || strings.TrimSpace(strings.ToLower(in.Text())) != "y" {
			fmt.Println("Farewell.")
			break
		}
	}
}

func loadOrCreatePlayer(ctx context.Context, repo *postgres.PlayerRepository, name string, cfg config.Config, logger *zap.Logger) *character.Player {
	if repo != nil {
		player, err := repo.Load(ctx, name)
		if err == nil {
			logger.Info("loaded save game", zap.String("player", name), zap.Int("level", player.Level))
			return player
		}
		if !errors.Is(err, postgres.ErrPlayerNotFound) {
			logger.Fatal("loading save game", zap.Error(err))
		}
	}
	return character.NewPlayer(name, cfg)
}

// nextFoe spawns a random enemy. Templates are ordered by id so the choice
// depends only on the dice source.
func nextFoe(templates map[string]*enemy.Template, src dice.Source) *enemy.Instance {
	ids := make([]string, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return enemy.NewInstance(templates[ids[src.Intn(len(ids))]])
}

func runEncounter(in *bufio.Scanner, player *character.Player, foe *enemy.Instance, cfg config.Config, src dice.Source, calc *damage.Calculator, applier *ability.Applier) {
	opts := []combat.Option{combat.WithCalculator(calc)}
	if foe.Boss {
		opts = append(opts, combat.WithBoss(func(_ combat.Opponent, _ combat.Protagonist, id string) (int, string) {
			return applier.Apply(foe, player, id)
		}))
	}

	engine := combat.New(player, foe, cfg.Combat, src, opts...)
	render(engine.Start())

	for !engine.Finished() {
		fmt.Printf("[HP %d/%d | Mana %d/%d | %s HP %d/%d]\n",
			player.HP, player.MaxHP, player.Mana, player.MaxMana,
			foe.Name(), foe.Health(), foe.MaxHealth())
		fmt.Print("attack / potion <type> / flee > ")
		if !in.Scan() {
			return
		}

		events := engine.Step(parseAction(in.Text()))
		render(events)
		if !engine.Finished() {
			foe.TickRegen()
		}

		for _, ev := range events {
			if ev.Type == combat.EventVictory {
				applyRewards(player, ev)
			}
		}
	}
}

// parseAction maps a typed command onto an engine action. Unrecognized
// input is passed through so the engine reports it as invalid.
func parseAction(line string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "attack", "a":
		return combat.ActionAttack
	case "flee", "run":
		return combat.ActionFlee
	case "potion", "p":
		if len(fields) < 2 {
			return "potion:"
		}
		return "potion:" + fields[1]
	}
	return strings.TrimSpace(line)
}

func applyRewards(player *character.Player, victory combat.Event) {
	gold, _ := victory.Metadata["gold_reward"].(int)
	xp, _ := victory.Metadata["xp_reward"].(int)
	player.AddGold(gold)
	fmt.Printf("You gain %d gold and %d experience.\n", gold, xp)
	if player.GainXP(xp) {
		render([]combat.Event{{
			Type:    combat.EventLevelUp,
			Actor:   player.Name(),
			Message: fmt.Sprintf("Level up! %s is now level %d.", player.Name(), player.Level),
		}})
	}
}

func render(events []combat.Event) {
	for _, ev := range events {
		switch ev.Type {
		case combat.EventPlayerTurn, combat.EventEnemyTurn:
			// Turn markers are noise in a terminal session.
		default:
			fmt.Println(ev.Message)
		}
	}
}
