package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManualProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewManualProgressBar(&buf, 10, 4)

	p.Increment()
	assert.Equal(t, 0.25, p.Progress())
	p.Set(10)
	assert.Equal(t, 1.0, p.Progress())
	p.Set(-3)
	assert.Equal(t, 0.0, p.Progress())

	p.Set(2)
	p.Display()
	out := buf.String()
	assert.Contains(t, out, "|█████     |")
	assert.Contains(t, out, "[50.00%")
}

func TestObserver(t *testing.T) {
	var buf bytes.Buffer
	o := NewObserver(&buf, 4)

	o.OnEpisodeProgress(1, 2)
	o.OnStepProgress(3, 8)
	o.OnSuccessCountChanged(1)
	o.OnEpisodeProgress(2, 2)
	o.Close()

	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, lines[len(lines)-2], "successes: 1")
	assert.Contains(t, buf.String(), "steps: 3/8")
	assert.Contains(t, buf.String(), "[100.00%")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
