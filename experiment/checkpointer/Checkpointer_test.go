package checkpointer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	ts "github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameEnumerator(t *testing.T) {
	next := FilenameEnumerator(0, "table", ".bin")
	assert.Equal(t, "table1.bin", next())
	assert.Equal(t, "table2.bin", next())
}

func TestNEpisode(t *testing.T) {
	g, err := gridworld.LoadString("X 0 S")
	require.NoError(t, err)
	table, err := valuetable.New(g, valuetable.Init{Policy: valuetable.Zero})
	require.NoError(t, err)
	table.Set(1, environment.Right, 7)

	dir := t.TempDir()
	c, err := NewNEpisode(2, table, FilenameEnumerator(0,
		filepath.Join(dir, "table"), ".bin"))
	require.NoError(t, err)

	last := ts.New(ts.Mid, 100, 0.9, 2, 2)
	last.SetEnd(ts.TerminalStateReached)
	for episode := 0; episode < 5; episode++ {
		require.NoError(t, c.Checkpoint(ts.New(ts.Mid, -1, 0.9, 1, 1)))
		require.NoError(t, c.Checkpoint(last))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	var loaded valuetable.ValueTable
	require.NoError(t, Load(filepath.Join(dir, "table2.bin"), &loaded))
	assert.Equal(t, 7.0, loaded.Get(1, environment.Right))

	_, err = NewNEpisode(0, table, nil)
	assert.Error(t, err)
}

func TestRunEnumerator(t *testing.T) {
	next := RunEnumerator("out", "abc", ".gob")
	assert.Equal(t, filepath.Join("out", "abc-1.gob"), next())
}
