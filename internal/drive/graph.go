package drive

import (
	"context"
	"errors"

	"github.com/idir-jpg/study-success-matching/internal/graph"
)

type downloader interface {
	Download(ctx context.Context, path string) ([]byte, error)
}

// GraphSource reads the SharePoint site drive.
type GraphSource struct {
	client downloader
}

func NewGraphSource(client downloader) *GraphSource {
	return &GraphSource{client: client}
}

func (s *GraphSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	p, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Download(ctx, p)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, graph.ErrNotFound):
		return nil, errors.Join(ErrFileNotFound, err)
	case errors.Is(err, graph.ErrAccessDenied), errors.Is(err, graph.ErrAuth):
		return nil, errors.Join(ErrAccessDenied, err)
	default:
		return nil, errors.Join(ErrFetch, err)
	}
}
