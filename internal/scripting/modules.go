package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/lmoretti/emberquest/internal/game/dice"
)

// RegisterModules registers the engine.* Lua table into L:
//
//	engine.roll(lo, hi) -> integer uniform in [lo, hi]
//	engine.log(msg)     -> writes msg to the structured log at debug level
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	L.SetField(engine, "roll", L.NewFunction(func(L *lua.LState) int {
		lo := L.CheckInt(1)
		hi := L.CheckInt(2)
		if hi < lo {
			L.ArgError(2, "hi must be >= lo")
			return 0
		}
		L.Push(lua.LNumber(dice.Between(m.src, lo, hi)))
		return 1
	}))

	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Debug("script", zap.String("msg", L.CheckString(1)))
		return 0
	}))

	L.SetGlobal("engine", engine)
}
