package checkout

import "sync/atomic"

// CancelToken is a shared flag the orchestrator sets to stop the active
// confirmation poll. The poller consults it before every query and after
// every response; once set, no further queries are issued and no result is
// surfaced.
type CancelToken struct {
	flag atomic.Bool
}

func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel sets the flag. Calling it more than once is harmless.
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
}

// Cancelled reports whether the flag has been set.
func (t *CancelToken) Cancelled() bool {
	return t.flag.Load()
}
