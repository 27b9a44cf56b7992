package combat

import (
	"fmt"
	"strings"

	"github.com/lmoretti/emberquest/internal/config"
	"github.com/lmoretti/emberquest/internal/game/damage"
	"github.com/lmoretti/emberquest/internal/game/dice"
)

// Action verbs accepted by Step. Potion actions carry the potion type after
// a colon, e.g. "potion:small".
const (
	ActionAttack       = "attack"
	ActionFlee         = "flee"
	actionPotionPrefix = "potion:"
)

// Evasion and flee scaling applied by the round loop. Bosses are harder to
// hit and harder to run from, and scripted abilities are harder to dodge
// than basic attacks.
const (
	bossEvasionScale    = 0.75
	abilityEvasionScale = 0.70
	bossFleeScale       = 0.40
)

// Engine resolves a single encounter between one protagonist and one
// opponent as a turn-based state machine. The caller owns the loop: it
// feeds one action per round into Step and renders the events that come
// back. The engine mutates only the two combatants it was constructed
// with; everything else it reports through events.
type Engine struct {
	player Protagonist
	foe    Opponent
	cfg    config.CombatConfig
	src    dice.Source
	calc   *damage.Calculator

	applyAbility AbilityFunc
	isBoss       bool

	turn     int
	finished bool
	won      bool

	startEvents []Event
	events      []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithBoss marks the opponent as a boss, enabling the scripted ability
// schedule and the boss evasion and flee penalties.
func WithBoss(fn AbilityFunc) Option {
	return func(e *Engine) {
		e.isBoss = true
		e.applyAbility = fn
	}
}

// WithCalculator overrides the damage calculator, letting callers swap in
// an alternative elemental strategy.
func WithCalculator(calc *damage.Calculator) Option {
	return func(e *Engine) { e.calc = calc }
}

// New builds an engine for one encounter and records the combat-start
// event sequence, retrievable via Start.
//
// Precondition: player and foe must both be alive.
func New(player Protagonist, foe Opponent, cfg config.CombatConfig, src dice.Source, opts ...Option) *Engine {
	e := &Engine{
		player: player,
		foe:    foe,
		cfg:    cfg,
		src:    src,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.calc == nil {
		e.calc = damage.NewCalculator(src)
	}
	e.startEvents = []Event{{
		Type:    EventCombatStart,
		Actor:   player.Name(),
		Target:  foe.Name(),
		Message: fmt.Sprintf("%s encounters %s!", player.Name(), foe.Name()),
		Metadata: map[string]any{
			"player_hp": player.Health(),
			"enemy_hp":  foe.Health(),
			"is_boss":   e.isBoss,
		},
	}}
	return e
}

// Start returns the events generated at construction. It is safe to call
// more than once; the same events are returned each time.
func (e *Engine) Start() []Event {
	out := make([]Event, len(e.startEvents))
	copy(out, e.startEvents)
	return out
}

// Finished reports whether the encounter has reached a terminal state.
func (e *Engine) Finished() bool { return e.finished }

// Won reports whether the encounter ended in victory. Only meaningful once
// Finished returns true.
func (e *Engine) Won() bool { return e.won }

// Turn returns the number of completed rounds.
func (e *Engine) Turn() int { return e.turn }

// Step resolves one round of combat driven by the given player action and
// returns the events it produced, in order. Once the encounter is finished
// Step returns nil without touching either combatant.
//
// Invalid actions and potion actions naming a potion the protagonist does
// not hold consume no game time: a diagnostic event is emitted, the
// opponent does not act, and the turn counter does not advance.
//
// Postcondition: at most one terminal event (victory, defeat, or flee
// success) appears in the returned slice.
func (e *Engine) Step(action string) []Event {
	if e.finished {
		return nil
	}
	e.events = e.events[:0]
	e.emit(Event{
		Type:    EventPlayerTurn,
		Actor:   e.player.Name(),
		Message: fmt.Sprintf("Turn %d: %s's move", e.turn+1, e.player.Name()),
	})

	switch {
	case action == ActionAttack:
		e.playerAttack()
	case strings.HasPrefix(action, actionPotionPrefix):
		kind := strings.TrimPrefix(action, actionPotionPrefix)
		if !e.usePotion(kind) {
			return e.drain()
		}
	case action == ActionFlee:
		e.attemptFlee()
	default:
		e.emit(Event{
			Type:     EventPlayerTurn,
			Actor:    e.player.Name(),
			Message:  fmt.Sprintf("Invalid action: %s", action),
			Metadata: map[string]any{"invalid_action": action},
		})
		return e.drain()
	}

	if e.finished {
		return e.drain()
	}
	if !e.foe.Alive() {
		e.endCombat(true)
		return e.drain()
	}

	e.enemyTurn()
	if !e.player.Alive() {
		e.endCombat(false)
		return e.drain()
	}

	e.turn++
	return e.drain()
}

func (e *Engine) playerAttack() {
	result := e.calc.BasicAttack(e.player, e.foe, e.player.AttackElement())
	e.emitElementEvents(e.player.Name(), e.foe.Name(), result)

	evasion := e.foe.EvasionChance()
	if e.isBoss {
		evasion *= bossEvasionScale
	}
	if dice.Check(e.src, evasion) {
		e.emit(Event{
			Type:    EventPlayerEvaded,
			Actor:   e.foe.Name(),
			Target:  e.player.Name(),
			Message: fmt.Sprintf("%s evades the attack!", e.foe.Name()),
		})
		return
	}

	e.foe.ApplyDamage(result.FinalDamage)
	e.emit(Event{
		Type:    EventPlayerAttack,
		Actor:   e.player.Name(),
		Target:  e.foe.Name(),
		Damage:  result.FinalDamage,
		Message: fmt.Sprintf("%s hits %s for %d damage", e.player.Name(), e.foe.Name(), result.FinalDamage),
		Metadata: map[string]any{
			"enemy_hp":         e.foe.Health(),
			"damage_breakdown": breakdown(result),
		},
	})
}

// usePotion resolves a potion action. It returns false when the requested
// potion is not held, in which case the round consumed no game time.
func (e *Engine) usePotion(kind string) bool {
	if !e.player.HasPotion(kind) {
		e.emit(Event{
			Type:     EventPlayerUsedPotion,
			Actor:    e.player.Name(),
			Message:  fmt.Sprintf("No %s potion available", kind),
			Metadata: map[string]any{"potion": kind, "missing": true},
		})
		return false
	}
	restored := e.player.UsePotion(kind)
	e.emit(Event{
		Type:    EventPlayerUsedPotion,
		Actor:   e.player.Name(),
		Healing: restored,
		Message: fmt.Sprintf("%s drinks a %s potion and restores %d", e.player.Name(), kind, restored),
		Metadata: map[string]any{
			"potion":    kind,
			"player_hp": e.player.Health(),
		},
	})
	return true
}

func (e *Engine) attemptFlee() {
	chance := e.cfg.FleeChance
	if e.isBoss {
		chance *= bossFleeScale
	}
	if dice.Check(e.src, chance) {
		e.finished = true
		e.emit(Event{
			Type:    EventPlayerFledOK,
			Actor:   e.player.Name(),
			Message: fmt.Sprintf("%s escapes from %s!", e.player.Name(), e.foe.Name()),
		})
		return
	}
	e.emit(Event{
		Type:    EventPlayerFledFail,
		Actor:   e.player.Name(),
		Message: fmt.Sprintf("%s fails to escape!", e.player.Name()),
	})
}

func (e *Engine) enemyTurn() {
	e.emit(Event{
		Type:    EventEnemyTurn,
		Actor:   e.foe.Name(),
		Message: fmt.Sprintf("%s's move", e.foe.Name()),
	})

	abilities := e.foe.AbilityIDs()
	if e.isBoss && e.applyAbility != nil && len(abilities) > 0 &&
		e.turn > 0 && e.cfg.BossAbilityInterval > 0 && e.turn%e.cfg.BossAbilityInterval == 0 {
		e.enemyAbility(abilities)
		return
	}
	e.enemyBasicAttack()
}

func (e *Engine) enemyAbility(abilities []string) {
	id := abilities[e.src.Intn(len(abilities))]
	dealt, effect := e.applyAbility(e.foe, e.player, id)
	e.emit(Event{
		Type:    EventEnemyAbility,
		Actor:   e.foe.Name(),
		Target:  e.player.Name(),
		Message: effect,
		Metadata: map[string]any{
			"ability": id,
		},
	})
	if dealt <= 0 {
		return
	}
	if dice.Check(e.src, e.player.EvasionChance()*abilityEvasionScale) {
		e.emit(Event{
			Type:    EventEnemyEvaded,
			Actor:   e.player.Name(),
			Target:  e.foe.Name(),
			Message: fmt.Sprintf("%s dodges the ability!", e.player.Name()),
		})
		return
	}
	e.player.ApplyDamage(dealt)
	e.emit(Event{
		Type:    EventPlayerTookDamage,
		Actor:   e.foe.Name(),
		Target:  e.player.Name(),
		Damage:  dealt,
		Message: fmt.Sprintf("%s takes %d damage from %s", e.player.Name(), dealt, id),
		Metadata: map[string]any{
			"ability":   id,
			"player_hp": e.player.Health(),
		},
	})
}

func (e *Engine) enemyBasicAttack() {
	result := e.calc.BasicAttack(e.foe, e.player, e.foe.Element())
	if result.Vulnerable {
		e.emit(Event{
			Type:    EventElementAdvantage,
			Actor:   e.foe.Name(),
			Target:  e.player.Name(),
			Message: fmt.Sprintf("%s's %s attack is super effective!", e.foe.Name(), e.foe.Element()),
		})
	}
	if dice.Check(e.src, e.player.EvasionChance()) {
		e.emit(Event{
			Type:    EventEnemyEvaded,
			Actor:   e.player.Name(),
			Target:  e.foe.Name(),
			Message: fmt.Sprintf("%s dodges the attack!", e.player.Name()),
		})
		return
	}
	e.player.ApplyDamage(result.FinalDamage)
	e.emit(Event{
		Type:    EventPlayerTookDamage,
		Actor:   e.foe.Name(),
		Target:  e.player.Name(),
		Damage:  result.FinalDamage,
		Message: fmt.Sprintf("%s hits %s for %d damage", e.foe.Name(), e.player.Name(), result.FinalDamage),
		Metadata: map[string]any{
			"player_hp":        e.player.Health(),
			"damage_breakdown": breakdown(result),
		},
	})
}

// emitElementEvents reports elemental advantage or disadvantage for an
// attack result. At most one of the two fires per attack.
func (e *Engine) emitElementEvents(actor, target string, result damage.Result) {
	switch {
	case result.Vulnerable:
		e.emit(Event{
			Type:    EventElementAdvantage,
			Actor:   actor,
			Target:  target,
			Message: fmt.Sprintf("%s exploits an elemental weakness!", actor),
		})
	case result.Resisted:
		e.emit(Event{
			Type:    EventElementDisadvantage,
			Actor:   actor,
			Target:  target,
			Message: fmt.Sprintf("%s's attack is partially resisted", actor),
		})
	}
}

// endCombat transitions to the terminal state and emits exactly one of the
// victory or defeat events.
func (e *Engine) endCombat(victory bool) {
	e.finished = true
	e.won = victory
	if victory {
		gold, xp := e.foe.Rewards()
		e.emit(Event{
			Type:    EventVictory,
			Actor:   e.player.Name(),
			Target:  e.foe.Name(),
			Message: fmt.Sprintf("%s is defeated!", e.foe.Name()),
			Metadata: map[string]any{
				"gold_reward": gold,
				"xp_reward":   xp,
			},
		})
		return
	}
	e.emit(Event{
		Type:    EventDefeat,
		Actor:   e.foe.Name(),
		Target:  e.player.Name(),
		Message: fmt.Sprintf("%s has fallen...", e.player.Name()),
	})
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// drain hands the accumulated round events to the caller. The returned
// slice is owned by the caller; the engine starts the next round fresh.
func (e *Engine) drain() []Event {
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

func breakdown(r damage.Result) map[string]any {
	return map[string]any{
		"base":              r.BaseDamage,
		"defense_reduction": r.DefenseReduction,
		"element_modifier":  r.ElementModifier,
		"reaction_modifier": r.ReactionModifier,
		"final":             r.FinalDamage,
	}
}
