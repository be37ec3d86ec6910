package youtube

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"

	"github.com/osa030/playtime/internal/domain/locale"
)

// BatchResult holds the merged items of all successful chunks and one error per failed chunk.
type BatchResult struct {
	Items  []Resource
	Errors []APIError
}

// Batch looks up ids in chunks of the configured batch size, one concurrent
// Call per chunk, and waits for all of them. Failed chunks are not retried.
// Only unexpected failures (transport, decoding) are returned as err.
func (c *Client) Batch(ctx context.Context, endpoint Endpoint, ids []string, lifetime mo.Option[time.Duration], lang locale.Locale) (BatchResult, error) {
	chunks := lo.Chunk(ids, c.batchSize)
	items := make([][]Resource, len(chunks))
	failures := make([]*APIError, len(chunks))

	var g errgroup.Group
	for i, chunk := range chunks {
		g.Go(func() error {
			res, err := c.Call(ctx, endpoint, strings.Join(chunk, ","), lifetime, lang)
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				failures[i] = apiErr
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "batch chunk %d/%d", i+1, len(chunks))
			}
			items[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{
		Items:  lo.Flatten(items),
		Errors: []APIError{},
	}
	for _, f := range failures {
		if f != nil {
			result.Errors = append(result.Errors, *f)
		}
	}
	return result, nil
}
