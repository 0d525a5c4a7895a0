package aggregator

import "sync"

// movieLocks hands out one mutex per movie id and forgets it once nobody holds it.
type movieLocks struct {
	mu    sync.Mutex
	locks map[int64]*movieLock
}

type movieLock struct {
	sync.Mutex
	refs int
}

func newMovieLocks() *movieLocks {
	return &movieLocks{locks: make(map[int64]*movieLock)}
}

func (l *movieLocks) Lock(movieID int64) {
	l.mu.Lock()
	lock, ok := l.locks[movieID]
	if !ok {
		lock = &movieLock{}
		l.locks[movieID] = lock
	}
	lock.refs++
	l.mu.Unlock()
	lock.Lock()
}

func (l *movieLocks) Unlock(movieID int64) {
	l.mu.Lock()
	lock := l.locks[movieID]
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, movieID)
	}
	l.mu.Unlock()
	lock.Unlock()
}
