package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/lmoretti/emberquest/internal/game/ability"
	"github.com/lmoretti/emberquest/internal/scripting"
)

type fixedSrc struct {
	n int
	f float64
}

func (s fixedSrc) Intn(n int) int   { return s.n % n }
func (s fixedSrc) Float64() float64 { return s.f }

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newManager(t *testing.T, scripts map[string]string) *scripting.Manager {
	t.Helper()
	dir := t.TempDir()
	for name, body := range scripts {
		writeScript(t, dir, name, body)
	}
	m := scripting.NewManager(fixedSrc{n: 2}, zap.NewNop())
	require.NoError(t, m.Load(dir, 0))
	t.Cleanup(m.Close)
	return m
}

func TestManagerCallHook(t *testing.T) {
	m := newManager(t, map[string]string{
		"meteor.lua": `
			function meteor_storm(caster, target, damage)
				return caster .. " rains fire on " .. target .. " for " .. damage
			end
		`,
	})

	ret, err := m.CallHook("meteor_storm", lua.LString("Drake"), lua.LString("Aria"), lua.LNumber(9))
	require.NoError(t, err)
	assert.Equal(t, lua.LString("Drake rains fire on Aria for 9"), ret)
}

func TestManagerMissingHookReturnsNil(t *testing.T) {
	m := newManager(t, nil)

	ret, err := m.CallHook("no_such_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManagerRuntimeErrorIsSwallowed(t *testing.T) {
	m := newManager(t, map[string]string{
		"bad.lua": `
			function explode()
				error("boom")
			end
		`,
	})

	ret, err := m.CallHook("explode")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManagerLoadFailsOnBrokenScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", `function (`)

	m := scripting.NewManager(fixedSrc{}, zap.NewNop())
	assert.Error(t, m.Load(dir, 0))
}

func TestManagerEngineModules(t *testing.T) {
	m := newManager(t, map[string]string{
		"roll.lua": `
			function lucky()
				return engine.roll(1, 6)
			end
		`,
	})

	// fixedSrc Intn returns 2 for any bound, so the roll is 1 + 2.
	ret, err := m.CallHook("lucky")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(3), ret)
}

func TestAbilityHookNarration(t *testing.T) {
	m := newManager(t, map[string]string{
		"meteor.lua": `
			function meteor_storm(caster, target, damage)
				return "The sky burns above " .. target .. "!"
			end
		`,
	})
	hook := scripting.NewAbilityHook(m)

	scripted := &ability.Definition{ID: "meteor_storm", Script: "meteor_storm"}
	narration, ok := hook.OnUse(scripted, "Drake", "Aria", 9)
	assert.True(t, ok)
	assert.Equal(t, "The sky burns above Aria!", narration)

	plain := &ability.Definition{ID: "bite"}
	_, ok = hook.OnUse(plain, "Drake", "Aria", 3)
	assert.False(t, ok)

	unhooked := &ability.Definition{ID: "gale", Script: "missing_fn"}
	_, ok = hook.OnUse(unhooked, "Drake", "Aria", 3)
	assert.False(t, ok)
}
