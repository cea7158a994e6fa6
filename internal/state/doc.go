// Package state holds the order and product stores shared by the UI.
//
// # Overview
//
// Each store wraps one access capability from package api and keeps the last
// collection it saw together with loading, error and offline flags. Stores
// are created by the application root and handed to the UI; there are no
// package-level instances.
//
// # Concurrency Model
//
// A store action runs in three steps:
//
//	begin()          in-flight counter +1, subscribers signalled
//	access call      no lock held
//	finish(apply)    write lock, apply result, counter -1, signal
//
// Snapshot() takes the read lock and returns deep copies, so readers never
// observe a torn collection. Overlapping actions are not serialized: the last
// one to finish wins.
//
// # Change Signals
//
// Changes() returns a channel with a buffer of one. A send never blocks and
// pending signals coalesce, so a slow reader sees at least one signal after
// the latest transition and then re-reads Snapshot().
//
// # Failure Semantics
//
//   - OrderStore.Fetch records "Failed to fetch orders" and keeps the old
//     collection. Offline is set only for network failures.
//   - ProductStore.Fetch loads the seed catalog on a network failure and keeps
//     mutations local until a later fetch succeeds.
//   - Add, Update and Delete record a message and also return the error.
package state
