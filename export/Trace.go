package export

import (
	"fmt"
	"io"
	"os"

	"k8s.io/klog/v2"
)

// WriteSnapshot writes a board snapshot headed by its episode and step
func WriteSnapshot(w io.Writer, s Snapshot) error {
	_, err := fmt.Fprintf(w, "----- Episode %d, Step %d -----\n%v",
		s.Episode, s.Step, s.Grid)
	if err != nil {
		return fmt.Errorf("writeSnapshot: %w", err)
	}
	return nil
}

// TraceWriter appends every snapshot to a writer
type TraceWriter struct {
	w io.Writer
}

// NewTraceWriter returns a TraceWriter appending to w
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w}
}

// ExportSnapshot implements the TraceSink interface
func (t *TraceWriter) ExportSnapshot(s Snapshot) error {
	return WriteSnapshot(t.w, s)
}

// TraceFile appends snapshots to a file created on the first
// snapshot. Close must be called once tracing is done.
type TraceFile struct {
	path string
	file *os.File
	err  error
}

// NewTraceFile returns a TraceFile writing to path
func NewTraceFile(path string) *TraceFile {
	return &TraceFile{path: path}
}

// ExportSnapshot implements the TraceSink interface
func (t *TraceFile) ExportSnapshot(s Snapshot) error {
	if t.file == nil && t.err == nil {
		t.file, t.err = os.Create(t.path)
		if t.err == nil {
			klog.V(1).InfoS("Writing episode trace", "path", t.path)
		}
	}
	if t.err != nil {
		return fmt.Errorf("exportSnapshot: %w", t.err)
	}
	return WriteSnapshot(t.file, s)
}

// Close closes the trace file
func (t *TraceFile) Close() error {
	if t.file == nil {
		return nil
	}
	return t.file.Close()
}
