package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/lmoretti/emberquest/internal/game/dice"
)

// Manager owns a single sandboxed LState holding every loaded ability
// script and exposes hook dispatch by global function name.
//
// Manager is safe for concurrent CallHook after Load completes. The LState
// is single-threaded; the mutex serializes concurrent calls.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	cancel func()
	src    dice.Source
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: src and logger must be non-nil.
func NewManager(src dice.Source, logger *zap.Logger) *Manager {
	return &Manager{src: src, logger: logger}
}

// Load creates a sandboxed VM, registers the engine.* modules, then
// executes every *.lua file in scriptDir in lexicographic order. Calling
// Load again replaces the previous VM.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: The VM is ready for CallHook; returns error on Lua load failure.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		if m.cancel != nil {
			m.cancel()
		}
		m.state.Close()
	}
	m.state = L
	m.cancel = cancel
	m.mu.Unlock()
	return nil
}

// Close releases the VM. Subsequent CallHook calls return LNil.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		if m.cancel != nil {
			m.cancel()
		}
		m.state.Close()
		m.state = nil
		m.cancel = nil
	}
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined or no VM is loaded. Lua runtime errors are logged at
// Warn level and never propagated; a broken script must not break combat.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		m.logger.Info("scripting: no VM loaded", zap.String("hook", hook))
		return lua.LNil, nil
	}

	fn := m.state.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	if err := m.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := m.state.Get(-1)
	m.state.Pop(1)
	return ret, nil
}
