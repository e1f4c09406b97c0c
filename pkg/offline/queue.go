package offline

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrQueueEmpty is returned when an operation expects a queued entry and none exists.
var ErrQueueEmpty = errors.New("offline: queue is empty")

// QueuedOperation is a write operation captured while the server was unreachable.
// Seq preserves insertion order; replay is strictly FIFO by Seq.
type QueuedOperation struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement" json:"seq"`
	ID        string    `gorm:"uniqueIndex;size:36"      json:"id"`
	Method    string    `gorm:"size:8"                   json:"method"`
	Endpoint  string    `gorm:"size:512"                 json:"endpoint"`
	Payload   []byte    `                                json:"payload,omitempty"`
	QueuedAt  time.Time `                                json:"queued_at"`
	Attempts  int       `                                json:"attempts"`
	LastError string    `gorm:"size:1024"                json:"last_error,omitempty"`
}

// TableName maps the model to a stable sqlite table name.
func (QueuedOperation) TableName() string {
	return "queued_operations"
}

// Queue is a durable FIFO queue of write operations backed by a local sqlite file.
type Queue struct {
	db *gorm.DB
}

// OpenQueue opens (or creates) the sqlite queue database at path.
func OpenQueue(path string) (*Queue, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return NewQueue(db)
}

// NewQueue wraps an existing gorm connection and ensures the schema exists.
func NewQueue(db *gorm.DB) (*Queue, error) {
	if err := db.AutoMigrate(&QueuedOperation{}); err != nil {
		return nil, err
	}
	return &Queue{db: db}, nil
}

// Enqueue appends an operation to the tail of the queue.
func (q *Queue) Enqueue(ctx context.Context, op *QueuedOperation) error {
	return q.db.WithContext(ctx).Create(op).Error
}

// Head returns the oldest queued operation without removing it.
func (q *Queue) Head(ctx context.Context) (*QueuedOperation, error) {
	var op QueuedOperation
	err := q.db.WithContext(ctx).Order("seq asc").First(&op).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Remove deletes a replayed operation by its operation ID.
func (q *Queue) Remove(ctx context.Context, id string) error {
	return q.db.WithContext(ctx).Where("id = ?", id).Delete(&QueuedOperation{}).Error
}

// MarkFailed records a failed replay attempt so the operation surfaces as poisoned.
func (q *Queue) MarkFailed(ctx context.Context, id string, cause string) error {
	return q.db.WithContext(ctx).
		Model(&QueuedOperation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": cause,
		}).Error
}

// Count reports how many operations are waiting for replay.
func (q *Queue) Count(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.WithContext(ctx).Model(&QueuedOperation{}).Count(&n).Error
	return n, err
}

// Pending lists all queued operations in replay order.
func (q *Queue) Pending(ctx context.Context) ([]QueuedOperation, error) {
	var ops []QueuedOperation
	err := q.db.WithContext(ctx).Order("seq asc").Find(&ops).Error
	return ops, err
}
