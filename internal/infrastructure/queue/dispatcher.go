package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/api/metrics"
	"github.com/openforum/forum-api/internal/core/domain"
	"github.com/openforum/forum-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ActivityProcessor persists one audit record.
type ActivityProcessor interface {
	Process(ctx context.Context, a domain.Activity) error
}

// Dispatcher routes audit records to a fixed set of workers using consistent
// hashing on the subject id, so records about one user are written in order.
type Dispatcher struct {
	workers []chan domain.Activity
	service ActivityProcessor
	log     zerolog.Logger
}

var _ ports.ActivityRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ActivityProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record hands a to the worker responsible for its subject. It never blocks:
// when that worker's queue is full the record is dropped and counted.
func (d *Dispatcher) Record(a domain.Activity) {
	idx := d.shardIndex(shardKey(a))
	select {
	case d.workers[idx] <- a:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().Str("type", string(a.Type)).Int("worker_id", idx).Msg("activity queue full, record dropped")
	}
}

func shardKey(a domain.Activity) string {
	if a.UserID != "" {
		return a.UserID
	}
	return a.Identifier
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Process(ctx, a); err != nil {
				d.log.Error().Err(err).
					Str("type", string(a.Type)).
					Str("user_id", a.UserID).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
		}
	}
}
