package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garage/backend/internal/infrastructure/cache"
)

// OperationIDHeader carries the client-generated operation ID used to
// deduplicate replayed writes from the offline queue.
const OperationIDHeader = "X-Operation-ID"

// replayHeader marks responses served from the idempotency store
const replayHeader = "X-Idempotent-Replay"

// Idempotency deduplicates mutating requests by operation ID. The first
// execution's response is cached; a replay of the same operation ID gets
// the stored response back instead of re-running the handler, so a write
// retried after a lost response is applied exactly once.
//
// Requests without the header pass through untouched. Responses with 5xx
// status are not stored so the client can retry a transient failure.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		operationID := c.Request.Header.Get(OperationIDHeader)
		if operationID == "" {
			c.Next()
			return
		}

		stored, err := store.Get(c.Request.Context(), operationID)
		if err != nil {
			// A store outage must not block writes; fall through and execute.
			logger.Warn("idempotency store lookup failed",
				zap.String("operation_id", operationID),
				zap.Error(err))
		}
		if stored != nil {
			logger.Info("replaying stored response",
				zap.String("operation_id", operationID),
				zap.Int("status", stored.Status))
			c.Header(replayHeader, "true")
			c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
			c.Abort()
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		status := recorder.Status()
		if status >= http.StatusInternalServerError {
			return
		}

		response := cache.StoredResponse{
			Status: status,
			Body:   recorder.body.Bytes(),
		}
		if err := store.Put(c.Request.Context(), operationID, response, ttl); err != nil {
			logger.Warn("failed to store idempotent response",
				zap.String("operation_id", operationID),
				zap.Error(err))
		}
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseRecorder duplicates the response body so it can be stored after
// the handler has written it to the client.
type responseRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
