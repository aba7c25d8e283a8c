// Package introspect publishes read-only snapshots of a running tree and
// serves them over HTTP.
//
// The engine's bookkeeping store is single-threaded. Instead of locking it,
// the tick loop captures a Snapshot after each tick and hands it to a
// Publisher; any number of readers (the HTTP handler included) then consume
// frozen snapshots without ever touching the live store.
package introspect

import (
	"sync/atomic"
	"time"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/viz"
)

// Snapshot is one frozen view of the tree.
type Snapshot struct {
	Tree       *viz.StatusTree `json:"tree"`
	CapturedAt time.Time       `json:"captured_at"`
}

// Capture builds a snapshot from the bookkeeping store. Call it from the
// goroutine that owns the store.
func Capture(tc *canopy.Context) (*Snapshot, error) {
	tree, err := viz.Build(tc)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Tree: tree, CapturedAt: time.Now()}, nil
}

// SnapshotSource yields the most recent snapshot, or nil when none has been
// published yet.
type SnapshotSource interface {
	Latest() *Snapshot
}

// Publisher hands snapshots from the tick loop to concurrent readers.
// Publish and Latest are safe to call from different goroutines.
type Publisher struct {
	latest atomic.Pointer[Snapshot]
}

// Publish makes snap the snapshot returned by subsequent Latest calls. The
// caller must not mutate snap afterwards.
func (p *Publisher) Publish(snap *Snapshot) {
	p.latest.Store(snap)
}

// Latest returns the most recently published snapshot, or nil.
func (p *Publisher) Latest() *Snapshot {
	return p.latest.Load()
}
