package feed

import "time"

// Timer is a pending debounce callback.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. The default is time.AfterFunc; tests swap in
// a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
