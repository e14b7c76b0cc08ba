package registry

import (
	"sync"
)

// changeNotifier is an in-process fan-out of "the snapshot changed"
// signals. Sends never block: a subscriber that has not drained its
// previous signal simply misses the duplicate.
type changeNotifier struct {
	mu     sync.RWMutex
	subs   []chan struct{}
	closed bool
}

func (cn *changeNotifier) notify() {
	cn.mu.RLock()
	defer cn.mu.RUnlock()

	if cn.closed {
		return
	}
	for _, ch := range cn.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (cn *changeNotifier) subscribe() <-chan struct{} {
	cn.mu.Lock()
	defer cn.mu.Unlock()

	if cn.closed {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	ch := make(chan struct{}, 1)
	cn.subs = append(cn.subs, ch)
	return ch
}

func (cn *changeNotifier) close() {
	cn.mu.Lock()
	if cn.closed {
		cn.mu.Unlock()
		return
	}
	cn.closed = true
	subs := cn.subs
	cn.subs = nil
	cn.mu.Unlock()

	for _, ch := range subs {
		close(ch)
	}
}
