// Package analyzer runs the playlist analysis pipeline: playlist lookup,
// playlist items, batched video lookups and report assembly.
package analyzer

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/samber/mo"

	"github.com/osa030/playtime/internal/app/report"
	"github.com/osa030/playtime/internal/domain/locale"
	"github.com/osa030/playtime/internal/infra/youtube"
)

// Upstream is the YouTube Data API as used by the analyzer.
type Upstream interface {
	Call(ctx context.Context, endpoint youtube.Endpoint, id string, lifetime mo.Option[time.Duration], lang locale.Locale) ([]youtube.Resource, error)
	Batch(ctx context.Context, endpoint youtube.Endpoint, ids []string, lifetime mo.Option[time.Duration], lang locale.Locale) (youtube.BatchResult, error)
}

// Service analyzes playlists.
type Service struct {
	upstream Upstream
	policy   CachePolicy
	builder  *report.Builder
}

// NewService creates an analyzer service.
func NewService(upstream Upstream, policy CachePolicy, builder *report.Builder) *Service {
	return &Service{
		upstream: upstream,
		policy:   policy,
		builder:  builder,
	}
}

// Analyze builds the report for req.
//
// Upstream error envelopes are returned as *youtube.APIError, failed video
// batches as *BatchError. Anything else is unexpected.
func (s *Service) Analyze(ctx context.Context, req Request) (*report.Report, error) {
	logger := zerolog.Ctx(ctx).With().Str("playlist", req.PlaylistID).Str("locale", req.Locale.String()).Logger()

	// The playlist's age is not known yet, so this lookup is never cached.
	playlists, err := s.upstream.Call(ctx, youtube.Playlists, req.PlaylistID, mo.None[time.Duration](), req.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "playlist lookup")
	}

	var res youtube.Resource
	if len(playlists) > 0 {
		res = playlists[0]
	}
	pl := youtube.ToPlaylist(req.PlaylistID, res)

	lifetime := s.policy.Lifetime(pl.PublishedAt)
	logger.Debug().Dur("cache_lifetime", lifetime).Msg("playlist resolved")

	items, err := s.upstream.Call(ctx, youtube.PlaylistItems, req.PlaylistID, mo.Some(lifetime), req.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "playlist items lookup")
	}

	ids := youtube.VideoIDs(items)
	batch, err := s.upstream.Batch(ctx, youtube.Videos, ids, mo.Some(lifetime), req.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "video lookup")
	}
	if len(batch.Errors) > 0 {
		logger.Warn().Int("failed_batches", len(batch.Errors)).Msg("video lookup failed")
		return nil, &BatchError{Failures: batch.Errors}
	}

	videos := youtube.ToVideos(batch.Items)
	logger.Debug().Int("items", len(ids)).Int("videos", len(videos)).Msg("videos fetched")

	return s.builder.Build(pl, videos, req.Locale)
}
