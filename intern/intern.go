package intern

import (
	"strconv"
	"sync"
)

// Key is a single (destination port, protocol keyword) combination. Keys are
// handed out exclusively by a Pool, so two Keys for the same combination are
// the same pointer and may be compared or used as map keys directly. Callers
// must treat Keys as read only.
type Key struct {
	Port     int
	Protocol string
}

// Pool deduplicates Keys so that repeated (port, protocol) combinations
// across millions of flow records share one allocation. A Pool is safe for
// concurrent use; the tagging pipeline shares one pool between the lookup
// table and the parse workers.
type Pool struct {
	mu   sync.Mutex
	keys map[string]*Key
}

// NewPool creates an empty Pool. Each tagging run gets its own pool so that
// no key state leaks between runs.
func NewPool() *Pool {
	return &Pool{
		keys: make(map[string]*Key),
	}
}

// Intern returns the shared Key for the given combination, creating it on
// first use.
func (p *Pool) Intern(port int, protocol string) *Key {
	composite := strconv.Itoa(port) + "|" + protocol

	p.mu.Lock()
	defer p.mu.Unlock()

	if key, ok := p.keys[composite]; ok {
		return key
	}
	key := &Key{Port: port, Protocol: protocol}
	p.keys[composite] = key
	return key
}

// Len returns the number of distinct combinations seen so far.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}
