package usecases

import (
	"sync"

	"github.com/google/uuid"
)

// entityLocks serializes transitions per entity id. Two concurrent reviews,
// or a confirm/reject race, must never both succeed; reads stay lock-free.
type entityLocks struct {
	locks sync.Map
}

// Lock acquires the lock for the given entity id and returns the unlock
// function.
func (l *entityLocks) Lock(id uuid.UUID) func() {
	v, _ := l.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
