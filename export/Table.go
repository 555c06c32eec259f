package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gridlearn/gridlearn/environment"
	"k8s.io/klog/v2"
)

// DateLayout is the layout of the date line of a value table export
const DateLayout = "2006-01-02 15:04:05"

// WriteTable writes a listing of [row,col] Action Value per action of
// every non-wall cell. Actions leading into a wall are listed as
// -Infinity whatever their learned value.
func WriteTable(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Q-Table Values:")
	fmt.Fprintln(bw, "Format: [State] [Action] [Q-Value]")
	fmt.Fprintln(bw, "Date: "+t.Time.Format(DateLayout))
	if t.RunID != "" {
		fmt.Fprintln(bw, "Run: "+t.RunID)
	}

	masks := t.Values.MaskInvalidActions(t.Grid)
	for s, mask := range masks {
		if t.Values.IsWall(s) {
			continue
		}
		p := t.Grid.PositionOf(s)
		for i, a := range environment.AllActions() {
			value := t.Values.Get(s, a)
			if mask[i] {
				value = math.Inf(-1)
			}
			fmt.Fprintf(bw, "%v %v %v\n", p, a, FormatValue(value))
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writeTable: %w", err)
	}
	return nil
}

// FormatValue formats a table value, writing infinities as Infinity
// and -Infinity
func FormatValue(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsInf(v, 1):
		return "Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TableWriter writes every value table export to a single writer
type TableWriter struct {
	w io.Writer
}

// NewTableWriter returns a TableWriter writing to w
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w}
}

// ExportTable implements the TableSink interface
func (t *TableWriter) ExportTable(table Table) error {
	return WriteTable(t.w, table)
}

// TableFiles writes each value table export to its own file in a
// directory, named qtable-<stage>.txt
type TableFiles struct {
	dir string
}

// NewTableFiles returns a TableFiles writing into dir
func NewTableFiles(dir string) *TableFiles {
	return &TableFiles{dir}
}

// Path returns the file a stage is exported to
func (t *TableFiles) Path(s Stage) string {
	return filepath.Join(t.dir, fmt.Sprintf("qtable-%v.txt", s))
}

// ExportTable implements the TableSink interface
func (t *TableFiles) ExportTable(table Table) error {
	path := t.Path(table.Stage)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("exportTable: %w", err)
	}

	if err := WriteTable(file, table); err != nil {
		file.Close()
		return fmt.Errorf("exportTable: %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("exportTable: %s: %w", path, err)
	}

	klog.V(1).InfoS("Exported value table", "stage", table.Stage, "path", path)
	return nil
}
