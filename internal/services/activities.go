package services

import "github.com/xvierd/corgi-cli/internal/ports"

// activity names one of the controller's scheduled drivers.
type activity string

const (
	activityTick   activity = "tick"
	activityMotion activity = "motion"
)

// activitySet owns at most one live handle per activity name.
type activitySet struct {
	handles map[activity]ports.Handle
}

func newActivitySet() activitySet {
	return activitySet{handles: make(map[activity]ports.Handle)}
}

// set installs h under name, cancelling whatever was there before.
func (a *activitySet) set(name activity, h ports.Handle) {
	a.cancel(name)
	if h != nil {
		a.handles[name] = h
	}
}

func (a *activitySet) cancel(name activity) {
	if h, ok := a.handles[name]; ok {
		delete(a.handles, name)
		h.Cancel()
	}
}

func (a *activitySet) active(name activity) bool {
	_, ok := a.handles[name]
	return ok
}

func (a *activitySet) cancelAll() {
	for name := range a.handles {
		a.cancel(name)
	}
}
