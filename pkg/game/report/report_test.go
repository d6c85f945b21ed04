package report

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/pkg/game/battle"
	"skirmish/pkg/game/board"
	"skirmish/pkg/game/calibrate"
	"skirmish/pkg/game/unit"
)

const duel = "####\n#GE#\n####"

func finishedDuel(t *testing.T) *battle.Battle {
	t.Helper()
	_, units, err := board.ParseString(duel, unit.DefaultStats())
	require.NoError(t, err)
	b := battle.New(units)
	require.NoError(t, b.Run(context.Background()))
	return b
}

func TestFromBattle(t *testing.T) {
	got, err := FromBattle(finishedDuel(t))
	require.NoError(t, err)

	// The goblin strikes first each round, so it wins with 2 hit points after 67 rounds.
	assert.Equal(t, "Goblin", got.Winner)
	assert.Equal(t, 67, got.Rounds)
	assert.Equal(t, 2, got.HitPoints)
	assert.Equal(t, 134, got.Outcome)
	assert.Equal(t, 398, got.DamageDealt)
	require.Len(t, got.Survivors, 1)
	assert.Equal(t, Survivor{ID: 0, Faction: "Goblin", Row: 1, Col: 1, HitPoints: 2}, got.Survivors[0])
}

func TestFromBattle_InProgress(t *testing.T) {
	_, units, err := board.ParseString(duel, unit.DefaultStats())
	require.NoError(t, err)
	_, err = FromBattle(battle.New(units))
	assert.ErrorIs(t, err, battle.ErrBattleInProgress)
}

func TestWrite(t *testing.T) {
	b, err := FromBattle(finishedDuel(t))
	require.NoError(t, err)
	r := &Report{Board: "duel.txt", Battle: b}

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "board: duel.txt\n")
	assert.Contains(t, out, "  outcome: 134\n")
	assert.NotContains(t, out, "calibration")

	back, err := Read(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestWriteFile_Calibration(t *testing.T) {
	_, units, err := board.ParseString("####\n#GE#\n####", unit.DefaultStats())
	require.NoError(t, err)
	res, err := calibrate.Search(context.Background(), units, calibrate.DefaultOptions())
	require.NoError(t, err)

	c, err := FromCalibration(res)
	require.NoError(t, err)
	assert.Equal(t, "Elf", c.Faction)
	assert.Equal(t, 4, c.AttackPower)
	assert.Equal(t, 1, c.Trials)

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, (&Report{Board: "duel", Calibration: c}).WriteFile(path))
}
