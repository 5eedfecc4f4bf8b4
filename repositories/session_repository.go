package repositories

import (
	"context"
	"sync"
)

// SessionRepository is the durable mirror of the client session: a bearer
// token and the serialized identity it belongs to. Save and Load treat the
// pair as one unit; a reader never sees one half of a write.
// Absent values are returned as empty, not as errors.
type SessionRepository interface {
	Load(ctx context.Context) (token string, identity []byte, err error)
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string, identity []byte) error
	Delete(ctx context.Context) error
}

type MemorySessionRepository struct {
	mu       sync.RWMutex
	token    string
	identity []byte
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{}
}

func (r *MemorySessionRepository) Load(ctx context.Context) (string, []byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token, cloneBytes(r.identity), nil
}

func (r *MemorySessionRepository) Token(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, token string, identity []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
	r.identity = cloneBytes(identity)
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = ""
	r.identity = nil
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
