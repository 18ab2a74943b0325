// Package connectivity translates raw network-reachability signals into
// a single process-wide online/offline boolean and notifies subscribers
// of transitions. The monitor itself has no opinion about where signals
// come from: a platform push source, the bundled Prober, or tests can
// all feed it through Apply.
package connectivity

import "sync"

// Signal is one raw reachability observation.
//
// Connected reports whether the transport layer claims a link.
// InternetReachable, when determinable, reports whether the destination
// is actually reachable; nil means "unknown". A connected link behind a
// captive portal arrives as {Connected: true, InternetReachable: false}.
type Signal struct {
	Connected         bool
	InternetReachable *bool
}

// Online collapses a signal into the monitor's boolean: the transport
// must be connected, and when reachability is determinable it must also
// be positive.
func (s Signal) Online() bool {
	if !s.Connected {
		return false
	}
	return s.InternetReachable == nil || *s.InternetReachable
}

// Monitor holds the last-known online state and a subscriber set.
// Notifications are edge-triggered: a callback fires once per
// transition, never repeatedly while the state is unchanged.
type Monitor struct {
	mu     sync.Mutex
	online bool
	nextID int
	subs   map[int]func(online bool)
}

// NewMonitor returns a monitor in the offline state. Callers feed it an
// initial Signal once the first real observation is available.
func NewMonitor() *Monitor {
	return &Monitor{subs: make(map[int]func(bool))}
}

// Online is a synchronous read of the last-known state, intended for
// initial decisions before the first transition event arrives.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers fn to run on every online/offline transition and
// returns the unsubscribe handle. The handle must be called on teardown
// or the listener leaks; calling it more than once is harmless.
//
// Callbacks run synchronously on the goroutine that applied the signal,
// after the monitor state has been updated, so a callback reading
// Online() sees the new value.
func (m *Monitor) Subscribe(fn func(online bool)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// Apply folds a raw signal into the monitor. When the collapsed boolean
// differs from the last-known state, every subscriber is notified with
// the new value; otherwise nothing fires.
func (m *Monitor) Apply(sig Signal) {
	online := sig.Online()

	m.mu.Lock()
	if online == m.online {
		m.mu.Unlock()
		return
	}
	m.online = online
	fns := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	// Outside the lock so a callback may Subscribe or read Online
	// without deadlocking.
	for _, fn := range fns {
		fn(online)
	}
}
