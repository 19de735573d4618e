package store

import "sync"

// Subscription delivers store revision numbers. The channel is buffered with
// size 1 and latest-wins: a slow subscriber never blocks writers and always
// wakes up with the newest revision pending. On wake-up the subscriber reads
// the store, which by then reflects at least that revision and never a partial
// batch, because notifications fire only after commit.
type Subscription struct {
	C <-chan int64

	n  *notifier
	ch chan int64
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.n.remove(s)
}

type notifier struct {
	mu   sync.Mutex
	rev  int64
	subs map[*Subscription]struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[*Subscription]struct{})}
}

func (n *notifier) subscribe() *Subscription {
	ch := make(chan int64, 1)
	s := &Subscription{C: ch, n: n, ch: ch}
	n.mu.Lock()
	n.subs[s] = struct{}{}
	n.mu.Unlock()
	return s
}

func (n *notifier) remove(s *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.subs[s]; !ok {
		return
	}
	delete(n.subs, s)
	close(s.ch)
}

// publish bumps the revision and fans it out, replacing any undelivered one.
func (n *notifier) publish() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rev++
	for s := range n.subs {
		select {
		case s.ch <- n.rev:
		default:
			select {
			case <-s.ch:
			default:
			}
			s.ch <- n.rev
		}
	}
}
