package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/lmoretti/emberquest/internal/scripting"
)

func newSandbox(t *testing.T, instLimit int) *lua.LState {
	t.Helper()
	L, cancel := scripting.NewSandboxedState(instLimit)
	t.Cleanup(func() {
		cancel()
		L.Close()
	})
	return L
}

func TestSandboxStripsDangerousGlobals(t *testing.T) {
	L := newSandbox(t, 0)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), name)
	}
}

func TestSandboxSafeLibrariesAvailable(t *testing.T) {
	L := newSandbox(t, 0)

	err := L.DoString(`result = math.floor(3.7) + #("ab") + #({1, 2, 3})`)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(8), L.GetGlobal("result"))
}

func TestSandboxInstructionLimitAborts(t *testing.T) {
	L := newSandbox(t, 1000)

	err := L.DoString(`while true do end`)
	require.Error(t, err)
}

func TestSandboxCancelAbortsExecution(t *testing.T) {
	L, cancel := scripting.NewSandboxedState(0)
	defer L.Close()

	cancel()
	assert.Error(t, L.DoString(`x = 1`))
}
