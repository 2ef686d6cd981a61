package imgload

import "strings"

// Instance is the load state of one rendered image. It starts Loading and
// ends Loaded or Failed. A failed proxy attempt falls back to the original
// url exactly once; nothing after that is retried.
type Instance struct {
	original string
	current  string
	useProxy bool
	phase    Phase
	attempts []string
}

// NewInstance decides the first address for src. An empty src is Failed
// straight away.
func NewInstance(src string, proxies []ProxyTemplate, useProxy bool) *Instance {
	src = strings.TrimSpace(src)
	in := &Instance{original: src, useProxy: useProxy}
	if src == "" {
		in.phase = Failed
		return in
	}
	in.current = firstAddress(src, proxies, useProxy)
	in.attempts = append(in.attempts, in.current)
	return in
}

func (in *Instance) Phase() Phase     { return in.phase }
func (in *Instance) Original() string { return in.original }

// Address is the url to load now; empty once the instance is terminal
// without having loaded.
func (in *Instance) Address() string {
	if in.phase == Failed {
		return ""
	}
	return in.current
}

// Attempts lists every address handed out, in order.
func (in *Instance) Attempts() []string {
	return append([]string(nil), in.attempts...)
}

func (in *Instance) OnLoad() {
	if in.phase == Loading {
		in.phase = Loaded
	}
}

// OnError records a failed load and reports whether another attempt follows.
func (in *Instance) OnError() bool {
	if in.phase != Loading {
		return false
	}
	if in.useProxy && in.current != in.original {
		in.current = in.original
		in.attempts = append(in.attempts, in.current)
		return true
	}
	in.phase = Failed
	return false
}

// Abandon ends a loading instance as Failed.
func (in *Instance) Abandon() {
	if in.phase == Loading {
		in.phase = Failed
	}
}
