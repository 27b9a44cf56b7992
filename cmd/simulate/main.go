// Package main provides a batch combat simulator for balancing enemy
// templates. It runs unattended encounters with a simple potion-aware
// policy and reports win rates and fight lengths per template.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/lmoretti/emberquest/internal/config"
	"github.com/lmoretti/emberquest/internal/game/ability"
	"github.com/lmoretti/emberquest/internal/game/character"
	"github.com/lmoretti/emberquest/internal/game/combat"
	"github.com/lmoretti/emberquest/internal/game/damage"
	"github.com/lmoretti/emberquest/internal/game/dice"
	"github.com/lmoretti/emberquest/internal/game/enemy"
	"github.com/lmoretti/emberquest/internal/observability"
)

const maxRounds = 200

type tally struct {
	wins, losses, fled, stalled int
	rounds                      int
}

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	fights := flag.Int("fights", 1000, "encounters to simulate per enemy template")
	only := flag.String("enemy", "", "simulate a single enemy template id")
	level := flag.Int("level", 1, "player level to simulate at")
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

	registry, err := ability.LoadRegistry(cfg.Paths.AbilitiesDir, logger)
	if err != nil {
		logger.Fatal("loading abilities", zap.Error(err))
	}
	templates, err := enemy.LoadTemplates(cfg.Paths.EnemiesDir, logger)
	if err != nil {
		logger.Fatal("loading enemies", zap.Error(err))
	}

	src := dice.NewCryptoSource()
	calc := damage.NewCalculator(src)
	applier := ability.NewApplier(registry, calc, nil)

	ids := make([]string, 0, len(templates))
	for id := range templates {
		if *only != "" && id != *only {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		logger.Fatal("no matching enemy templates", zap.String("enemy", *only))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "enemy\tfights\twin%\tloss%\tflee%\tstall%\tavg rounds")
	for _, id := range ids {
		t := simulate(templates[id], cfg, src, calc, applier, *fights, *level)
		total := t.wins + t.losses + t.fled + t.stalled
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			id, total,
			100*float64(t.wins)/float64(total),
			100*float64(t.losses)/float64(total),
			100*float64(t.fled)/float64(total),
			100*float64(t.stalled)/float64(total),
			float64(t.rounds)/float64(total),
		)
	}
	w.Flush()
}

func simulate(tmpl *enemy.Template, cfg config.Config, src dice.Source, calc *damage.Calculator, applier *ability.Applier, fights, level int) tally {
	var t tally
	for i := 0; i < fights; i++ {
		player := leveledPlayer(cfg, level)
		foe := enemy.NewInstance(tmpl)

		opts := []combat.Option{combat.WithCalculator(calc)}
		if foe.Boss {
			opts = append(opts, combat.WithBoss(func(_ combat.Opponent, _ combat.Protagonist, id string) (int, string) {
				return applier.Apply(foe, player, id)
			}))
		}
		engine := combat.New(player, foe, cfg.Combat, src, opts...)

		rounds := 0
		for !engine.Finished() && rounds < maxRounds {
			engine.Step(chooseAction(player))
			if !engine.Finished() {
				foe.TickRegen()
			}
			rounds++
		}
		t.rounds += rounds

		switch {
		case engine.Won():
			t.wins++
		case !player.Alive():
			t.losses++
		case engine.Finished():
			t.fled++
		default:
			t.stalled++
		}
	}
	return t
}

// chooseAction is the simulated policy: below a third of max health it
// drinks the strongest held potion, or runs if no healing is left;
// otherwise it attacks.
func chooseAction(p *character.Player) string {
	if p.HP*3 < p.MaxHP {
		for _, kind := range []string{character.PotionStrong, character.PotionMedium, character.PotionSmall} {
			if p.HasPotion(kind) {
				return "potion:" + kind
			}
		}
		return combat.ActionFlee
	}
	return combat.ActionAttack
}

func leveledPlayer(cfg config.Config, level int) *character.Player {
	p := character.NewPlayer("Simulant", cfg)
	for p.Level < level {
		p.GainXP(p.Level * cfg.Player.XPPerLevel)
	}
	return p
}
