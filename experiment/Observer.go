package experiment

// Observer is notified of training progress. Notifications are
// delivered synchronously from the training loop.
type Observer interface {
	OnEpisodeProgress(current, total int)
	OnStepProgress(current, max int)
	OnSuccessCountChanged(count int)
}

// NopObserver implements Observer and ignores every notification. It
// can be embedded by observers interested in some notifications only.
type NopObserver struct{}

func (NopObserver) OnEpisodeProgress(current, total int) {}
func (NopObserver) OnStepProgress(current, max int)      {}
func (NopObserver) OnSuccessCountChanged(count int)      {}
