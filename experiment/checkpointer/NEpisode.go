package checkpointer

import (
	"fmt"

	ts "github.com/gridlearn/gridlearn/timestep"
)

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	episodes int
	object   Serializable // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each serialized object should be saved in a separate file with
	// each file having an incremented number as a suffix (e.g.
	// file1.bin, file2.bin, ..., fileK.bin), then simply use the
	// static function FilenameEnumerator, which will return a function
	// that will enumerate filenames.
	//
	// RunEnumerator does the same with a run id prefix, for example:
	//
	// n, err := NewNEpisode(10, table, RunEnumerator(dir, runID, ".bin"))
	filename func() string
}

// NewNEpisode returns a checkpointer that checkpoints after every n
// completed episodes.
func NewNEpisode(n int, object Serializable,
	filename func() string) (Checkpointer, error) {
	if n < 1 {
		return nil, fmt.Errorf("newNEpisode: interval must be positive, "+
			"got %d", n)
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the Checkpointer's tracked object when t ends an
// episode whose count is a multiple of the interval
func (n *nEpisode) Checkpoint(t ts.TimeStep) error {
	if !t.Last() {
		return nil
	}
	n.episodes++
	if n.episodes%n.interval == 0 {
		return Save(n.filename(), n.object)
	}
	return nil
}
