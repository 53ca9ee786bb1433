package services

import (
	"context"
	"sync"
	"time"

	"covid-dashboard/models"
)

// Lease identifies one mounted lifetime of a page for a session. Work
// started under a lease may only publish its result while the lease is
// alive.
type Lease struct {
	Session    string
	Page       models.PageName
	generation uint64
}

type mount struct {
	page       models.PageName
	generation uint64
	cancel     context.CancelFunc
	lastSeen   time.Time
}

// Lifetimes tracks which page each session has mounted. Mounting a page
// cancels the in-flight load of the page it replaces.
type Lifetimes struct {
	mu         sync.Mutex
	mounted    map[string]*mount
	generation uint64
	now        func() time.Time
}

func NewLifetimes() *Lifetimes {
	return &Lifetimes{
		mounted: make(map[string]*mount),
		now:     time.Now,
	}
}

// Current returns the page mounted by session.
func (l *Lifetimes) Current(session string) (models.PageName, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.mounted[session]
	if !ok {
		return "", false
	}
	return m.page, true
}

// Mount starts a new lifetime of page for session and returns a context
// for its load. The context is cancelled when the lifetime ends or ctx is
// done. Any previous lifetime of the session ends here.
func (l *Lifetimes) Mount(ctx context.Context, session string, page models.PageName) (context.Context, Lease) {
	loadCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.mounted[session]; ok && prev.cancel != nil {
		prev.cancel()
	}
	l.generation++
	l.mounted[session] = &mount{page: page, generation: l.generation, cancel: cancel, lastSeen: l.now()}
	return loadCtx, Lease{Session: session, Page: page, generation: l.generation}
}

// Adopt returns the lease of session's current lifetime of page, starting
// one without in-flight work when page is not mounted. It is used when a
// page is restored from the store instead of loaded.
func (l *Lifetimes) Adopt(session string, page models.PageName) Lease {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.mounted[session]; ok && m.page == page {
		m.lastSeen = l.now()
		return Lease{Session: session, Page: page, generation: m.generation}
	}
	if prev, ok := l.mounted[session]; ok && prev.cancel != nil {
		prev.cancel()
	}
	l.generation++
	l.mounted[session] = &mount{page: page, generation: l.generation, lastSeen: l.now()}
	return Lease{Session: session, Page: page, generation: l.generation}
}

// Alive reports whether lease's lifetime is still the session's current one.
func (l *Lifetimes) Alive(lease Lease) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.mounted[lease.Session]
	return ok && m.generation == lease.generation
}

// Touch reports whether lease is alive and, if so, records activity on it.
func (l *Lifetimes) Touch(lease Lease) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.mounted[lease.Session]
	if !ok || m.generation != lease.generation {
		return false
	}
	m.lastSeen = l.now()
	return true
}

// Release marks the load of lease as finished. The page stays mounted.
func (l *Lifetimes) Release(lease Lease) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.mounted[lease.Session]
	if !ok || m.generation != lease.generation || m.cancel == nil {
		return
	}
	m.cancel()
	m.cancel = nil
}

// Unmount ends the session's current lifetime, cancelling its in-flight
// load, and returns the page that was mounted.
func (l *Lifetimes) Unmount(session string) (models.PageName, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.mounted[session]
	if !ok {
		return "", false
	}
	if m.cancel != nil {
		m.cancel()
	}
	delete(l.mounted, session)
	return m.page, true
}

// Sweep unmounts sessions idle for longer than maxIdle and returns how
// many were removed.
func (l *Lifetimes) Sweep(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-maxIdle)
	removed := 0
	for session, m := range l.mounted {
		if m.cancel == nil && m.lastSeen.Before(cutoff) {
			delete(l.mounted, session)
			removed++
		}
	}
	return removed
}

// Len returns the number of mounted sessions.
func (l *Lifetimes) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.mounted)
}
