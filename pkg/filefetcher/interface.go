package filefetcher

import (
	"context"
	"io"
)

type Fetcher interface {
	// Fetch copies the body of url into w and returns the number of bytes copied.
	Fetch(ctx context.Context, url string, w io.Writer) (int64, error)
}
