// Package middleware decorates a ports.SnapshotStore with cross-cutting
// behavior (metrics, logging) without touching the store adapters.
package middleware

import "github.com/aretw0/tictactoe/pkg/ports"

// Middleware allows wrapping a SnapshotStore to add behavior.
type Middleware func(ports.SnapshotStore) ports.SnapshotStore

// Chain applies mws so that the first one is outermost.
func Chain(store ports.SnapshotStore, mws ...Middleware) ports.SnapshotStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
