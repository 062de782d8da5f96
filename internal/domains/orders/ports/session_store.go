package ports

import "context"

// SessionStore keeps per-browser view state keyed by session id.
type SessionStore[T any] interface {
	Load(ctx context.Context, id string) (T, bool)
	Save(ctx context.Context, id string, value T) error
	Delete(ctx context.Context, id string) error
}

// ExpiringSessionStore can drop sessions that have been idle past their TTL.
type ExpiringSessionStore[T any] interface {
	SessionStore[T]
	PurgeExpired(ctx context.Context) (int, error)
}
