package service

import (
	"sync"
	"time"
)

// DefaultGateTTL is how long an idle session's sequence is remembered.
const DefaultGateTTL = 30 * time.Minute

type gateEntry struct {
	seq  uint64
	seen time.Time
}

// Gate tracks the newest request sequence number per session so that a
// slower, older request never overwrites the result of a newer one.
// Sequence 0 is ungated. Sessions idle for longer than the TTL are
// forgotten, after which any sequence begins afresh.
type Gate struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	swept  time.Time
	latest map[string]gateEntry
}

func NewGate() *Gate {
	return &Gate{
		ttl:    DefaultGateTTL,
		now:    time.Now,
		latest: make(map[string]gateEntry),
	}
}

// Begin records seq and reports whether it is still the newest for the session.
func (g *Gate) Begin(session string, seq uint64) bool {
	if seq == 0 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.sweep(now)
	if e, ok := g.latest[session]; ok && seq < e.seq {
		return false
	}
	g.latest[session] = gateEntry{seq: seq, seen: now}
	return true
}

// IsLatest reports whether no newer request has begun since seq.
func (g *Gate) IsLatest(session string, seq uint64) bool {
	if seq == 0 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.latest[session]
	return ok && e.seq == seq
}

// sweep drops expired sessions, at most once per TTL. Callers hold mu.
func (g *Gate) sweep(now time.Time) {
	if now.Sub(g.swept) < g.ttl {
		return
	}
	for s, e := range g.latest {
		if now.Sub(e.seen) >= g.ttl {
			delete(g.latest, s)
		}
	}
	g.swept = now
}
