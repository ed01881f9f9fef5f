package board

import (
	"context"
	"sync"
)

// lanes serializes remote requests per task id. A lane is a capacity-1
// channel; waiters are released in arrival order.
type lanes struct {
	mu   sync.Mutex
	byID map[int64]*lane
}

type lane struct {
	slot chan struct{}
	refs int
}

func newLanes() *lanes {
	return &lanes{byID: map[int64]*lane{}}
}

func (l *lanes) acquire(ctx context.Context, id int64) (func(), error) {
	l.mu.Lock()
	ln, ok := l.byID[id]
	if !ok {
		ln = &lane{slot: make(chan struct{}, 1)}
		l.byID[id] = ln
	}
	ln.refs++
	l.mu.Unlock()

	select {
	case ln.slot <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-ln.slot
				l.drop(id, ln)
			})
		}, nil
	case <-ctx.Done():
		l.drop(id, ln)
		return nil, ctx.Err()
	}
}

func (l *lanes) drop(id int64, ln *lane) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ln.refs--
	if ln.refs == 0 {
		delete(l.byID, id)
	}
}

func (l *lanes) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID)
}
