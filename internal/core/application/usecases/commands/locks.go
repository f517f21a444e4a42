package commands

import "sync"

// orderMutexes serializes all mutation per order id. Two shoppers, or a
// shopper and an admin, racing on the same order are forced through one at
// a time so neither sees a lost update; different orders proceed in
// parallel. Mutexes are never removed: the set of live order ids in one
// process is small and short-lived.
var orderMutexes sync.Map // order id -> *sync.Mutex

// lockOrder takes the mutex for the given order id and returns the unlock
// function. Callers must defer the returned function.
func lockOrder(orderID string) func() {
	m, _ := orderMutexes.LoadOrStore(orderID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
