package offline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OperationIDHeader carries the client-generated operation ID. The server uses
// it to deduplicate replays of the same queued operation.
const OperationIDHeader = "X-Operation-ID"

// ErrNoFailedHead is returned by ClearFailed when the queue head has no
// recorded replay failure and must not be dropped.
var ErrNoFailedHead = errors.New("offline: head operation has not failed")

// Response is the uniform result of a dispatched API call. Offline marks a
// write that was queued locally instead of reaching the server; its Data then
// holds a client-generated placeholder ID the caller may use optimistically.
type Response struct {
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Offline bool            `json:"offline"`
}

type serverEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is an offline-aware API client. Writes issued while the server is
// unreachable are persisted to a durable FIFO queue and replayed in order once
// reachability returns.
type Client struct {
	baseURL       string
	http          *http.Client
	queue         *Queue
	monitor       *Monitor
	logger        *zap.Logger
	replayTimeout time.Duration
	syncing       atomic.Bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithReplayTimeout bounds each individual replay during Sync.
func WithReplayTimeout(d time.Duration) Option {
	return func(c *Client) { c.replayTimeout = d }
}

// NewClient builds a Client and wires the offline-to-online transition to an
// automatic Sync.
func NewClient(baseURL string, queue *Queue, monitor *Monitor, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: 15 * time.Second},
		queue:         queue,
		monitor:       monitor,
		logger:        logger,
		replayTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	monitor.OnOnline(func() {
		if _, err := c.Sync(context.Background()); err != nil {
			c.logger.Error("automatic replay stopped", zap.Error(err))
		}
	})
	return c
}

// Get performs a read. Reads are never queued: when the server is unreachable
// the caller gets an offline-tagged error response.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	if !c.monitor.Online() {
		return &Response{Error: "server unreachable", Offline: true}, nil
	}
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return &Response{Error: err.Error(), Offline: true}, nil
	}
	return resp, nil
}

// Post dispatches a create. Queued when offline.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.dispatch(ctx, http.MethodPost, path, body)
}

// Put dispatches an update. Queued when offline.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.dispatch(ctx, http.MethodPut, path, body)
}

// Delete dispatches a delete. Queued when offline.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.dispatch(ctx, http.MethodDelete, path, nil)
}

func (c *Client) dispatch(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("offline: encode payload: %w", err)
		}
	}
	if !c.monitor.Online() {
		return c.enqueue(ctx, method, path, payload)
	}
	resp, err := c.do(ctx, method, path, payload, uuid.New().String())
	if err != nil {
		// Reachability flipped between the flag read and the call.
		c.logger.Warn("dispatch failed, queueing operation",
			zap.String("method", method), zap.String("endpoint", path), zap.Error(err))
		return c.enqueue(ctx, method, path, payload)
	}
	return resp, nil
}

func (c *Client) enqueue(ctx context.Context, method, path string, payload []byte) (*Response, error) {
	op := &QueuedOperation{
		ID:       uuid.New().String(),
		Method:   method,
		Endpoint: path,
		Payload:  payload,
		QueuedAt: time.Now().UTC(),
	}
	if err := c.queue.Enqueue(ctx, op); err != nil {
		return nil, fmt.Errorf("offline: persist queued operation: %w", err)
	}
	placeholder, _ := json.Marshal(map[string]string{"id": op.ID})
	return &Response{Data: placeholder, Offline: true}, nil
}

// Sync replays queued operations strictly in insertion order and returns how
// many were drained. It stops on the first failure: later operations may
// depend on earlier ones, so skipping ahead could apply them out of order. The
// failed operation stays at the head of the queue. A Sync starting while one
// is already in flight is a no-op.
func (c *Client) Sync(ctx context.Context) (int, error) {
	if !c.syncing.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer c.syncing.Store(false)

	drained := 0
	for {
		op, err := c.queue.Head(ctx)
		if errors.Is(err, ErrQueueEmpty) {
			return drained, nil
		}
		if err != nil {
			return drained, err
		}
		if err := c.replay(ctx, op); err != nil {
			if markErr := c.queue.MarkFailed(ctx, op.ID, err.Error()); markErr != nil {
				c.logger.Error("record replay failure", zap.String("operation_id", op.ID), zap.Error(markErr))
			}
			return drained, fmt.Errorf("offline: replay %s %s: %w", op.Method, op.Endpoint, err)
		}
		if err := c.queue.Remove(ctx, op.ID); err != nil {
			return drained, err
		}
		drained++
	}
}

func (c *Client) replay(ctx context.Context, op *QueuedOperation) error {
	replayCtx, cancel := context.WithTimeout(ctx, c.replayTimeout)
	defer cancel()

	resp, err := c.do(replayCtx, op.Method, op.Endpoint, op.Payload, op.ID)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	return nil
}

// PendingCount reports how many operations are waiting for replay.
func (c *Client) PendingCount(ctx context.Context) (int64, error) {
	return c.queue.Count(ctx)
}

// PendingOperations lists the queued operations in replay order.
func (c *Client) PendingOperations(ctx context.Context) ([]QueuedOperation, error) {
	return c.queue.Pending(ctx)
}

// ClearFailed drops the head operation after a failed replay so the rest of
// the queue can drain. It refuses to drop a head that has never failed.
func (c *Client) ClearFailed(ctx context.Context) error {
	op, err := c.queue.Head(ctx)
	if err != nil {
		return err
	}
	if op.Attempts == 0 {
		return ErrNoFailedHead
	}
	c.logger.Warn("dropping failed queued operation",
		zap.String("operation_id", op.ID),
		zap.String("method", op.Method),
		zap.String("endpoint", op.Endpoint),
		zap.Int("attempts", op.Attempts),
		zap.String("last_error", op.LastError))
	return c.queue.Remove(ctx, op.ID)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, operationID string) (*Response, error) {
	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if operationID != "" {
		req.Header.Set(OperationIDHeader, operationID)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var envelope serverEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && (envelope.Data != nil || envelope.Error != nil) {
		if envelope.Error != nil {
			return &Response{Error: envelope.Error.Message}, nil
		}
		return &Response{Data: envelope.Data}, nil
	}
	if httpResp.StatusCode >= http.StatusBadRequest {
		return &Response{Error: fmt.Sprintf("server returned %d", httpResp.StatusCode)}, nil
	}
	return &Response{Data: raw}, nil
}
