package ports

import "time"

// Handle is a live scheduled activity.
type Handle interface {
	// Cancel stops the activity. It is synchronous: once Cancel returns,
	// the activity's callback does not run again. Cancelling twice is a no-op.
	Cancel()
}

// Scheduler runs periodic activities on the host's single logical thread.
// Callbacks never run concurrently with each other or with any other code
// that touches the controller.
type Scheduler interface {
	// Every calls fn once per interval until the returned handle is cancelled.
	Every(interval time.Duration, fn func()) Handle
}
