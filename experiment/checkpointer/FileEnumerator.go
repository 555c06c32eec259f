package checkpointer

import (
	"fmt"
	"path/filepath"
)

// FilenameEnumerator returns a function which will return filenames
// with a counter integer suffix. Each time the returned function is
// called, the counter is one higher than on the previous call, so
// FilenameEnumerator(0, "table", ".bin") yields table1.bin, table2.bin
// and so on.
func FilenameEnumerator(start int, filename, extension string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v%v%v", filename, i, extension)
	}
}

// RunEnumerator returns a FilenameEnumerator naming files
// <dir>/<run>-<n><extension>
func RunEnumerator(dir, run, extension string) func() string {
	return FilenameEnumerator(0, filepath.Join(dir, run+"-"), extension)
}
