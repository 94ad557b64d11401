package audit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	dbconnections "github.com/thebartekbanach/rstream/pkg/connections"
	"github.com/thebartekbanach/rstream/pkg/stream"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	closeOutCollection = "stream_audit"
	recordsBufferSize  = 128
	insertTimeout      = 5 * time.Second
)

// RepositoryLogger stores close-out records in mongo. Records are queued
// and inserted by a worker, so LogCloseOut never waits for the database.
// When the queue is full, or the worker is already stopping, the record is
// dropped.
type RepositoryLogger struct {
	conn    dbconnections.AuditDBConnection
	log     zerolog.Logger
	records chan CloseOutRecord
	stopped chan struct{}

	stopping bool
	lock     sync.RWMutex
}

var _ stream.AuditLogger = (*RepositoryLogger)(nil)

func NewRepositoryLogger(conn dbconnections.AuditDBConnection, log zerolog.Logger) *RepositoryLogger {
	return &RepositoryLogger{
		conn,
		log,
		make(chan CloseOutRecord, recordsBufferSize),
		make(chan struct{}),
		false,
		sync.RWMutex{},
	}
}

func (r *RepositoryLogger) IsLogEnabled() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return !r.stopping
}

func (r *RepositoryLogger) LogCloseOut(logStreamID stream.LogStreamID, userTime, ioTime time.Duration, bytesWritten int64) {
	record := CloseOutRecord{logStreamID, userTime, ioTime, bytesWritten, time.Now().UTC()}

	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.stopping {
		r.log.Warn().Str("logStreamId", string(logStreamID)).Msg("audit worker stopped, close-out record dropped")
		return
	}

	select {
	case r.records <- record:
	default:
		r.log.Warn().Str("logStreamId", string(logStreamID)).Msg("audit queue is full, close-out record dropped")
	}
}

// StartMonitors starts the insert worker. Records still queued when ctx is
// done are inserted before the worker exits.
func (r *RepositoryLogger) StartMonitors(ctx context.Context) {
	go r.runWorker(ctx)
}

// Stopped is closed after the worker flushed its queue and exited.
func (r *RepositoryLogger) Stopped() <-chan struct{} {
	return r.stopped
}

func (r *RepositoryLogger) GetCloseOutRecords(ctx context.Context, logStreamID stream.LogStreamID) ([]CloseOutRecord, error) {
	if logStreamID == "" {
		return nil, ErrLogStreamIDNotAllowed
	}

	coll := r.conn.Collection(closeOutCollection)
	opts := options.Find().SetSort(bson.D{{Key: "closedAt", Value: 1}})
	cursor, err := coll.Find(ctx, bson.D{{Key: "logStreamId", Value: logStreamID}}, opts)
	if err != nil {
		return nil, err
	}

	var records []CloseOutRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *RepositoryLogger) runWorker(ctx context.Context) {
	defer close(r.stopped)

	for {
		select {
		case <-ctx.Done():
			r.lock.Lock()
			r.stopping = true
			r.lock.Unlock()

			r.flush()
			return

		case record := <-r.records:
			r.insert(record)
		}
	}
}

func (r *RepositoryLogger) flush() {
	for {
		select {
		case record := <-r.records:
			r.insert(record)
		default:
			return
		}
	}
}

func (r *RepositoryLogger) insert(record CloseOutRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	coll := r.conn.Collection(closeOutCollection)
	if _, err := coll.InsertOne(ctx, record); err != nil {
		r.log.Error().Err(err).Str("logStreamId", string(record.LogStreamID)).Msg("cannot store close-out record")
	}
}

var ErrLogStreamIDNotAllowed = errors.New("this log stream id is not allowed")
