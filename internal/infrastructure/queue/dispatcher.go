package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityhub/events-api/internal/api/metrics"
	"github.com/communityhub/events-api/internal/core/domain"
	"github.com/communityhub/events-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// Sink is a named delivery target.
type Sink struct {
	Name string
	ports.ActivitySink
}

// Dispatcher routes activity records to a fixed set of workers using
// consistent hashing on the event id, so one event's trail is delivered in
// the order it was published.
type Dispatcher struct {
	workers []chan domain.Activity
	sinks   []Sink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sinks []Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after delivering whatever is still buffered.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish hands a record to the worker responsible for its event. It never
// blocks: when that worker's buffer is full the record is dropped.
func (d *Dispatcher) Publish(a domain.Activity) {
	idx := d.shardIndex(a.EventID)
	select {
	case d.workers[idx] <- a:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("event_id", a.EventID).
			Str("type", string(a.Type)).
			Int("worker_id", idx).
			Msg("activity queue full, record dropped")
	}
}

// shardIndex maps an event id deterministically to a worker index.
func (d *Dispatcher) shardIndex(eventID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

// runWorker delivers under a context detached from ctx: ctx only tells the
// worker to stop, and a record taken off the channel after that point must
// not reach the sinks already cancelled.
func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	deliverCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			d.drain(id, label, ch)
			return
		case a := <-ch:
			metrics.ActivityQueueDepth.WithLabelValues(label).Dec()
			if ctx.Err() != nil {
				d.drain(id, label, ch, a)
				return
			}
			d.deliver(deliverCtx, id, a)
		}
	}
}

// drain delivers pending, then whatever is left in ch, under a fresh deadline.
func (d *Dispatcher) drain(id int, label string, ch <-chan domain.Activity, pending ...domain.Activity) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for _, a := range pending {
		d.deliver(ctx, id, a)
	}
	for {
		select {
		case a := <-ch:
			metrics.ActivityQueueDepth.WithLabelValues(label).Dec()
			d.deliver(ctx, id, a)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, worker int, a domain.Activity) {
	for _, s := range d.sinks {
		start := time.Now()
		rec := a
		err := s.Record(ctx, &rec)
		metrics.ActivityDeliveryDuration.WithLabelValues(s.Name).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ActivityDeliveryErrorsTotal.WithLabelValues(s.Name).Inc()
			d.log.Error().Err(err).
				Str("sink", s.Name).
				Str("event_id", a.EventID).
				Str("type", string(a.Type)).
				Int("worker_id", worker).
				Msg("activity delivery failed")
		}
	}
}
