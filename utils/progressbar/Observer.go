package progressbar

import (
	"fmt"
	"io"
)

// Observer displays training progress as an episode progress bar
// followed by the step counter of the current episode and the number
// of successful episodes. Its methods match experiment.Observer.
type Observer struct {
	out       io.Writer
	episodes  *ManualProgressBar
	step      int
	maxSteps  int
	successes int
}

// NewObserver returns an Observer printing a bar width characters wide
// to out
func NewObserver(out io.Writer, width int) *Observer {
	return &Observer{
		out:      out,
		episodes: NewManualProgressBar(out, width, 1),
	}
}

// OnEpisodeProgress moves the episode bar to current out of total
func (o *Observer) OnEpisodeProgress(current, total int) {
	o.episodes.SetMax(total)
	o.episodes.Set(current)
	o.step = 0
	o.display()
}

// OnStepProgress records the step counter. The line is only redrawn
// when the episode ends so stepping stays cheap.
func (o *Observer) OnStepProgress(current, max int) {
	o.step, o.maxSteps = current, max
}

// OnSuccessCountChanged records the number of successful episodes
func (o *Observer) OnSuccessCountChanged(count int) {
	o.successes = count
	o.display()
}

// Close ends the progress line
func (o *Observer) Close() {
	o.display()
	fmt.Fprintln(o.out)
}

func (o *Observer) display() {
	fmt.Fprintf(o.out, "\n\033[1A\033[K%v steps: %d/%d successes: %d",
		o.episodes.String(), o.step, o.maxSteps, o.successes)
}
