package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/lmoretti/emberquest/internal/game/ability"
)

// AbilityHook adapts a Manager to the ability hook contract. When an
// ability definition names a script function, the hook invokes it as
//
//	<script>(caster, target, damage) -> narration string
//
// and uses the returned string as the ability's narration. Abilities
// without a script, missing hooks, and script errors all keep the default
// narration.
type AbilityHook struct {
	mgr *Manager
}

// NewAbilityHook wraps mgr as an ability hook.
//
// Precondition: mgr must be non-nil.
func NewAbilityHook(mgr *Manager) *AbilityHook {
	return &AbilityHook{mgr: mgr}
}

// OnUse implements ability.Hook.
func (h *AbilityHook) OnUse(d *ability.Definition, casterName, targetName string, damageDealt int) (string, bool) {
	if d.Script == "" {
		return "", false
	}
	ret, err := h.mgr.CallHook(d.Script,
		lua.LString(casterName),
		lua.LString(targetName),
		lua.LNumber(damageDealt),
	)
	if err != nil {
		return "", false
	}
	if s, ok := ret.(lua.LString); ok {
		return string(s), true
	}
	return "", false
}
