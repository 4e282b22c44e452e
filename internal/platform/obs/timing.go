package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const requestIDKey ctxKey = "req_id"

// Attach a request id so collaborator timings can be correlated with the access log.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// Return the request id stored in ctx, or "" when there is none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Time logs the duration of the operation name and its outcome.
// Use as: defer obs.Time(ctx, "strava.ListActivities")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
