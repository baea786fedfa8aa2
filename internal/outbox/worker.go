package outbox

import (
	"context"
	"time"

	"github.com/cetadcco/carwash-pos/internal/events"
	"github.com/cetadcco/carwash-pos/internal/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const drainBatchSize = 100

// ReplicaWriter copies orders into the secondary store. Satisfied by
// db.MongoOrderCollection bound to the replica collection.
type ReplicaWriter interface {
	InsertOrder(ctx context.Context, order models.Order) (primitive.ObjectID, error)
}

// Worker drains the outbox on a timer: each pending order is copied to the
// replica store, announced on the event feed, then marked replicated. A
// record is only marked after the copy succeeds, so replication is
// at-least-once; a crash between copy and mark re-copies on the next sweep.
type Worker struct {
	store     *Store
	replica   ReplicaWriter
	publisher events.Publisher
	interval  time.Duration
}

// NewWorker creates a replication worker.
func NewWorker(store *Store, replica ReplicaWriter, publisher events.Publisher, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Worker{
		store:     store,
		replica:   replica,
		publisher: publisher,
		interval:  interval,
	}
}

// Run drains the outbox until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithField("interval", w.interval.String()).Info("replication worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info("replication worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	records, err := w.store.Pending(ctx, drainBatchSize)
	if err != nil {
		log.WithError(err).Error("failed to read outbox")
		return
	}

	for _, rec := range records {
		order, err := rec.Order()
		if err != nil {
			// An undecodable payload would wedge the queue; skip it
			// but keep the row for inspection.
			log.WithError(err).WithField("outbox_id", rec.ID).Error("skipping malformed outbox record")
			continue
		}

		if _, err := w.replica.InsertOrder(ctx, order); err != nil {
			// A duplicate key means a previous sweep copied the order but
			// crashed before marking the record; fall through to the mark.
			if !mongo.IsDuplicateKeyError(err) {
				// Leave the record pending; the next sweep retries.
				log.WithError(err).WithField("order_id", rec.OrderID).Warn("replication failed, will retry")
				continue
			}
		} else if err := w.publisher.OrderReplicated(order); err != nil {
			log.WithError(err).WithField("order_id", rec.OrderID).Warn("failed to publish order event")
		}

		if err := w.store.MarkReplicated(ctx, rec.ID); err != nil {
			log.WithError(err).WithField("outbox_id", rec.ID).Error("failed to mark record replicated")
		}
	}
}
