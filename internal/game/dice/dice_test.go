package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/lmoretti/emberquest/internal/game/dice"
)

// fixedSrc returns preset values, enabling deterministic test rolls.
type fixedSrc struct {
	n int
	f float64
}

func (s fixedSrc) Intn(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func (s fixedSrc) Float64() float64 { return s.f }

// TestCryptoSource_IntnRange verifies that Intn stays in [0, n).
func TestCryptoSource_IntnRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 6)
	}
}

// TestCryptoSource_Float64Range verifies that Float64 stays in [0, 1).
func TestCryptoSource_Float64Range(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

// TestBetween_Bounds_Property verifies lo <= Between(src, lo, hi) <= hi
// for arbitrary bounds.
func TestBetween_Bounds_Property(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.IntRange(-100, 100).Draw(t, "lo")
		hi := rapid.IntRange(lo, lo+200).Draw(t, "hi")
		v := dice.Between(src, lo, hi)
		if v < lo || v > hi {
			t.Fatalf("Between(%d, %d) = %d out of range", lo, hi, v)
		}
	})
}

// TestBetween_Degenerate verifies that lo == hi always returns lo.
func TestBetween_Degenerate(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Equal(t, 7, dice.Between(src, 7, 7))
}

// TestCheck_Clamping verifies the chance <= 0 and chance >= 1 short circuits.
func TestCheck_Clamping(t *testing.T) {
	src := fixedSrc{f: 0.5}
	assert.False(t, dice.Check(src, 0.0), "zero chance must never succeed")
	assert.False(t, dice.Check(src, -1.0), "negative chance must never succeed")
	assert.True(t, dice.Check(src, 1.0), "certain chance must always succeed")
	assert.True(t, dice.Check(src, 2.0), "over-unity chance must always succeed")
}

// TestCheck_Threshold verifies the strict-less-than comparison against the draw.
func TestCheck_Threshold(t *testing.T) {
	assert.True(t, dice.Check(fixedSrc{f: 0.1}, 0.5))
	assert.False(t, dice.Check(fixedSrc{f: 0.5}, 0.5))
	assert.False(t, dice.Check(fixedSrc{f: 0.9}, 0.5))
}

// TestLoggedSource_PassThrough verifies the wrapper forwards values unchanged.
func TestLoggedSource_PassThrough(t *testing.T) {
	src := dice.NewLoggedSource(fixedSrc{n: 3, f: 0.25}, zap.NewNop())
	assert.Equal(t, 3, src.Intn(10))
	assert.Equal(t, 0.25, src.Float64())
}
