// Package export writes value tables, episode traces and cell
// descriptors in human readable form
package export

import (
	"fmt"
	"time"

	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/valuetable"
)

// Stage labels when during training a value table is exported
type Stage int

const (
	Initial Stage = iota
	Final
)

func (s Stage) String() string {
	switch s {
	case Initial:
		return "initial"
	case Final:
		return "final"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Table is a value table export request
type Table struct {
	RunID  string
	Stage  Stage
	Values *valuetable.ValueTable
	Grid   *gridworld.GridWorld
	Time   time.Time
}

// TableSink receives value table exports
type TableSink interface {
	ExportTable(t Table) error
}

// Snapshot is the board after a step of a traced episode. Step 0 is
// the board right after the reset.
type Snapshot struct {
	RunID   string
	Episode int
	Step    int
	Grid    *gridworld.GridWorld
}

// TraceSink receives episode trace snapshots
type TraceSink interface {
	ExportSnapshot(s Snapshot) error
}
