package ingest

import "context"

// Source loads a complete dataset from a remote origin.
type Source interface {
	// Name identifies the origin for logs and snapshots.
	Name() string
	Load(ctx context.Context) (Result, error)
}
