package drive

import (
	"context"
	"fmt"

	"github.com/idir-jpg/study-success-matching/internal/graph"
)

// Open builds the Source named by cfg.Backend. The Graph backend reuses
// client and fails when it is nil.
func Open(ctx context.Context, cfg Config, client *graph.Client) (Source, error) {
	switch cfg.Backend {
	case BackendGraph, "":
		if client == nil {
			return nil, fmt.Errorf("%w: graph backend needs TENANT_ID and CLIENT_ID", ErrInvalidConfig)
		}
		return NewGraphSource(client), nil
	case BackendS3:
		src, err := NewS3Source(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return src, nil
	case BackendLocal:
		src, err := NewLocalSource(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
}
