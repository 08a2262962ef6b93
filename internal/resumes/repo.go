package resumes

import "context"

// Store persists resume documents. Every lookup is scoped by owner and
// reports ErrNotFound for documents that are absent or owned by someone else.
type Store interface {
	Find(ctx context.Context, ownerID string) ([]Resume, error)
	FindOne(ctx context.Context, id, ownerID string) (Resume, error)
	Insert(ctx context.Context, doc Resume) error
	Replace(ctx context.Context, id, ownerID string, doc Resume) error
	Delete(ctx context.Context, id, ownerID string) error
}
