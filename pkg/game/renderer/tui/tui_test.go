package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/pkg/game/battle"
	"skirmish/pkg/game/board"
	"skirmish/pkg/game/renderer"
	"skirmish/pkg/game/unit"
)

func newPlain(t *testing.T) (*TUIRenderer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r := New(WithOutput(&buf), WithColor(false))
	r.Init()
	return r, &buf
}

func TestRenderRound_Plain(t *testing.T) {
	_, units, err := board.ParseString("#####\n#GE.#\n#####", unit.DefaultStats())
	require.NoError(t, err)
	b := battle.New(units)

	r, buf := newPlain(t)
	r.RenderRound(b.Snapshot())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Round 0")
	assert.Equal(t, "#####", lines[1])
	assert.Equal(t, "#GE.#   G(200), E(200)", lines[2])
	assert.Equal(t, "#####", lines[3])
}

func TestRenderRound_BattleOverLabel(t *testing.T) {
	_, units, err := board.ParseString("####\n#GG#\n####", unit.DefaultStats())
	require.NoError(t, err)
	r, buf := newPlain(t)
	r.RenderRound(battle.New(units).Snapshot())
	assert.Contains(t, buf.String(), "Battle over after 0 rounds")
}

func TestStyleText_Colored(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithOutput(&buf), WithColor(true))
	r.Init()
	styled := r.StyleText("G", renderer.StyleGoblin)
	assert.Contains(t, styled, "G")
	assert.Equal(t, "?", r.StyleText("?", renderer.StyleNormal))

	plain, _ := newPlain(t)
	assert.Equal(t, "G", plain.StyleText("G", renderer.StyleGoblin))
}

func TestFormatText(t *testing.T) {
	r, _ := newPlain(t)
	assert.Equal(t, "Elves win at power 15", r.FormatText("ELF{Elves} win at power %d", 15))
	assert.Contains(t, r.FormatText("NOPE{x}"), "function not found")
}

func TestEvery_UsesCurrentRenderer(t *testing.T) {
	r, buf := newPlain(t)
	renderer.SetRenderer(r)
	t.Cleanup(func() { renderer.SetRenderer(nil) })

	_, units, err := board.ParseString("####\n#GE#\n####", unit.DefaultStats())
	require.NoError(t, err)
	units.SetAttackPower(unit.Elf, 100)
	b := battle.New(units, renderer.Every(1))
	require.NoError(t, b.PerformRound())
	require.NoError(t, b.PerformRound())

	out := buf.String()
	assert.Contains(t, out, "Round 1")
	assert.Contains(t, out, "Round 2", "the round that ends the battle is rendered too")
	assert.Contains(t, out, "Battle over after 2 rounds")
}
