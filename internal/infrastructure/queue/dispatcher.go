package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/memberhub/member-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans audit events out to a fixed set of workers using
// consistent hashing on the member id, so each member's trail is written
// in order.
type Dispatcher struct {
	workers []chan ports.AuditEvent
	store   ports.AuditStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.AuditStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEvent, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an event to the worker responsible for its member id. The
// call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(event ports.AuditEvent) {
	d.workers[d.shardIndex(event.MemberID)] <- event
}

// shardIndex maps a member id deterministically to a worker index.
func (d *Dispatcher) shardIndex(memberID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(memberID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.Store(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("member_id", event.MemberID).
					Str("action", event.Action).
					Int("worker_id", id).
					Msg("audit event write failed")
			}
		}
	}
}
