package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gridlearn/gridlearn/environment/gridworld"
)

// WriteDescriptors writes the cell descriptors of g as an indented
// JSON array
func WriteDescriptors(w io.Writer, g *gridworld.GridWorld) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Descriptors()); err != nil {
		return fmt.Errorf("writeDescriptors: %w", err)
	}
	return nil
}

// WriteDescriptorsFile writes the cell descriptors of g to path
func WriteDescriptorsFile(path string, g *gridworld.GridWorld) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writeDescriptorsFile: %w", err)
	}
	if err := WriteDescriptors(file, g); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
