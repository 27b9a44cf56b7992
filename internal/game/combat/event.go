package combat

// EventType identifies a combat event kind. Every state change the engine
// performs is reported through exactly one event of one of these kinds so
// that callers can render, log, or replay an encounter without consulting
// engine internals.
type EventType string

const (
	EventCombatStart EventType = "combat_start"
	EventCombatEnd   EventType = "combat_end"

	EventPlayerTurn       EventType = "player_turn"
	EventPlayerAttack     EventType = "player_attack"
	EventPlayerEvaded     EventType = "player_evaded"
	EventPlayerTookDamage EventType = "player_took_damage"
	EventPlayerUsedPotion EventType = "player_used_potion"
	EventPlayerFledOK     EventType = "player_fled_success"
	EventPlayerFledFail   EventType = "player_fled_fail"

	EventEnemyTurn       EventType = "enemy_turn"
	EventEnemyAttack     EventType = "enemy_attack"
	EventEnemyEvaded     EventType = "enemy_evaded"
	EventEnemyTookDamage EventType = "enemy_took_damage"
	EventEnemyAbility    EventType = "enemy_ability"

	EventElementAdvantage    EventType = "element_advantage"
	EventElementDisadvantage EventType = "element_disadvantage"

	EventVictory EventType = "victory"
	EventDefeat  EventType = "defeat"
	EventLevelUp EventType = "level_up"
)

// Event is a single observable fact about an encounter. Actor and Target
// name the combatants involved, Damage and Healing carry amounts where the
// kind implies one, and Metadata carries kind-specific detail such as
// damage breakdowns or reward totals.
type Event struct {
	Type     EventType
	Actor    string
	Target   string
	Message  string
	Damage   int
	Healing  int
	Metadata map[string]any
}
