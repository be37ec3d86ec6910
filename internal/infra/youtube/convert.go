package youtube

import (
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sosodev/duration"

	"github.com/osa030/playtime/internal/domain/playlist"
	"github.com/osa030/playtime/internal/domain/video"
)

// ToPlaylist converts a playlists resource to a domain Playlist.
func ToPlaylist(id string, r Resource) playlist.Playlist {
	p := playlist.Playlist{
		ID:          id,
		PublishedAt: mo.None[time.Time](),
		ItemCount:   mo.None[int](),
	}

	if s := r.Snippet; s != nil {
		p.Title = s.Title
		p.ChannelTitle = s.ChannelTitle
		if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			p.PublishedAt = mo.Some(t)
		}
	}
	if cd := r.ContentDetails; cd != nil && cd.ItemCount != nil {
		p.ItemCount = mo.Some(*cd.ItemCount)
	}

	return p
}

// ToVideos converts videos resources to domain Videos. Missing or unparsable
// durations become zero.
func ToVideos(resources []Resource) []video.Video {
	return lo.Map(resources, func(r Resource, _ int) video.Video {
		v := video.Video{ID: r.ID}
		if r.ContentDetails != nil {
			v.Duration = parseDuration(r.ContentDetails.Duration)
		}
		return v
	})
}

// VideoIDs returns the video ids referenced by playlistItems resources.
func VideoIDs(resources []Resource) []string {
	return lo.FilterMap(resources, func(r Resource, _ int) (string, bool) {
		if r.ContentDetails == nil || r.ContentDetails.VideoID == "" {
			return "", false
		}
		return r.ContentDetails.VideoID, true
	})
}

// parseDuration parses an ISO 8601 duration such as "PT1H2M3S" or "P1DT2H".
func parseDuration(iso string) time.Duration {
	if iso == "" {
		return 0
	}
	d, err := duration.Parse(iso)
	if err != nil {
		zlog.Debug().Msgf("ignoring unparsable duration %q: %v", iso, err)
		return 0
	}
	if td := d.ToTimeDuration(); td > 0 {
		return td
	}
	return 0
}
