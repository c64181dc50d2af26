package realtime

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/agencydesk/agency-platform/internal/api/metrics"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher fans task events out to the hub through a fixed set of workers,
// sharded by project id so events within one project's room keep their
// publish order. It implements ports.EventPublisher.
type Dispatcher struct {
	workers []chan ports.TaskEvent
	hub     *Hub
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, hub *Hub, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TaskEvent, numWorkers),
		hub:     hub,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TaskEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands the event to the worker responsible for its project. The
// call never blocks: if the worker's queue is full the event is dropped and
// counted, and the caller's write is unaffected.
func (d *Dispatcher) Publish(event ports.TaskEvent) {
	select {
	case d.workers[d.shardIndex(event.ProjectID)] <- event:
		metrics.EventsPublishedTotal.WithLabelValues(string(event.Kind)).Inc()
	default:
		metrics.EventsDroppedTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("project_id", event.ProjectID).
			Str("kind", string(event.Kind)).
			Msg("event queue full, dropping event")
	}
}

// shardIndex maps a project id deterministically to a worker index.
func (d *Dispatcher) shardIndex(projectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TaskEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.hub.Broadcast(event)
			d.log.Debug().
				Str("project_id", event.ProjectID).
				Str("kind", string(event.Kind)).
				Int("worker_id", id).
				Msg("event broadcast")
		}
	}
}
